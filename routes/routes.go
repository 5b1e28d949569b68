package routes

import (
	"backend/controllers"
	"backend/middlewares"
	"backend/services"

	"github.com/gin-gonic/gin"
)

// Deps carries the shared service instances the router hands to controllers.
type Deps struct {
	Logs   *services.NutritionLogService
	Goals  *services.DailyGoalService
	Hub    *services.RealtimeHub
	Push   *services.PushService
	Alerts *services.AlertBus
}

func SetupRouter(d Deps) *gin.Engine {
	r := gin.Default()

	nc := controllers.NewNutritionController(d.Logs)
	gc := controllers.NewDailyGoalController(d.Goals)
	rc := controllers.NewRealtimeController(d.Hub, d.Logs)
	dc := controllers.NewDeviceController(d.Push)
	ac := controllers.NewNotificationController(d.Alerts)

	// Food catalog lookups
	food := r.Group("/food")
	food.Use(middlewares.AuthMiddleware())
	{
		food.GET("/search", controllers.SearchFoods)
		food.POST("/recognize", controllers.RecognizeFood)
		food.POST("/photo", controllers.UploadFoodPhoto)
	}

	// Daily nutrition logs
	nutrition := r.Group("/nutrition")
	nutrition.Use(middlewares.AuthMiddleware())
	{
		nutrition.GET("/history", nc.GetHistory)
		nutrition.GET("/log/:date", nc.GetLog)
		nutrition.POST("/log/:date/entries", nc.AddEntry)
		nutrition.DELETE("/log/:date/entries/:id", nc.RemoveEntry)
	}

	// Goals and progress
	goals := r.Group("/goals")
	goals.Use(middlewares.AuthMiddleware())
	{
		goals.GET("", gc.GetGoals)
		goals.PUT("", gc.UpdateGoals)
	}

	// Devices and alerts
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.POST("/devices", dc.RegisterDevice)
		user.POST("/notifications/toggle", dc.ToggleNotifications)
		user.GET("/alerts", ac.ListAlerts)
	}

	// Live tracker socket
	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/nutrition", rc.TrackerWS)
	}

	return r
}
