// controllers/daily_goal_controller.go
package controllers

import (
	"net/http"
	"time"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type DailyGoalController struct {
	Goals *services.DailyGoalService
}

func NewDailyGoalController(goals *services.DailyGoalService) *DailyGoalController {
	return &DailyGoalController{Goals: goals}
}

// GET /goals?date=2024-06-01  (date defaults to today)
func (gc *DailyGoalController) GetGoals(c *gin.Context) {
	uid := c.GetUint("userID")

	dateStr := c.Query("date")
	if dateStr == "" {
		dateStr = time.Now().Format(models.DateLayout)
	} else if _, err := time.Parse(models.DateLayout, dateStr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return
	}

	goal, progress, err := gc.Goals.GetGoalsAndProgress(c.Request.Context(), uid, dateStr)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": dateStr, "goals": goal, "progress": progress})
}

// PUT /goals
func (gc *DailyGoalController) UpdateGoals(c *gin.Context) {
	uid := c.GetUint("userID")

	var req struct {
		Calories float64 `json:"calories"`
		Protein  float64 `json:"protein"`
		Carbs    float64 `json:"carbs"`
		Fats     float64 `json:"fats"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := gc.Goals.UpsertGoals(c.Request.Context(), uid, req.Calories, req.Protein, req.Carbs, req.Fats); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
