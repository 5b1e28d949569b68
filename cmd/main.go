package main

import (
	"log"
	"os"

	"backend/config"
	"backend/logging"
	"backend/models"
	"backend/routes"
	"backend/services"
	"backend/utils"

	"go.uber.org/zap"
)

func main() {
	config.InitDB()
	utils.InitS3()

	logger, err := logging.NewLogger(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	repo := services.NewGormLogRepository(config.DB)
	logs := services.NewNutritionLogService(repo, logger)
	hub := services.NewRealtimeHub()

	push, err := services.NewPushService(config.DB)
	if err != nil {
		logger.Warn("push notifications disabled", zap.Error(err))
		push = nil
	}

	alerts := services.NewAlertBus(config.DB, hub, push)
	goals := services.NewDailyGoalService(config.DB, logs, alerts)

	// every durable write fans out fresh totals and re-checks the goal
	logs.SetNotify(func(l *models.NutritionLog) {
		hub.Broadcast(l.UserID, map[string]any{"kind": "log.updated", "log": l})
		goals.CheckLog(l)
	})

	r := routes.SetupRouter(routes.Deps{
		Logs:   logs,
		Goals:  goals,
		Hub:    hub,
		Push:   push,
		Alerts: alerts,
	})
	if err := r.Run(":8080"); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
