// controllers/nutrition_controller.go
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"backend/models"
	"backend/services"

	"github.com/gin-gonic/gin"
)

type NutritionController struct {
	Logs *services.NutritionLogService
}

func NewNutritionController(logs *services.NutritionLogService) *NutritionController {
	return &NutritionController{Logs: logs}
}

type AddEntryRequest struct {
	Food   models.CatalogItem `json:"food" binding:"required"`
	Amount float64            `json:"amount_grams"`
}

func parseDateParam(c *gin.Context) (string, bool) {
	dateStr := c.Param("date")
	if _, err := time.Parse(models.DateLayout, dateStr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date format. Use YYYY-MM-DD"})
		return "", false
	}
	return dateStr, true
}

// GET /nutrition/log/:date
func (nc *NutritionController) GetLog(c *gin.Context) {
	uid := c.GetUint("userID")
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	// a gateway read failure still answers with an empty day; the client is
	// never blocked on load
	log, _ := nc.Logs.Load(c.Request.Context(), uid, date)
	c.JSON(http.StatusOK, log)
}

// POST /nutrition/log/:date/entries
func (nc *NutritionController) AddEntry(c *gin.Context) {
	uid := c.GetUint("userID")
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	var req AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry, err := services.NewLogEntry(req.Food, req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log, _ := nc.Logs.Load(c.Request.Context(), uid, date)
	if err := nc.Logs.AddEntry(c.Request.Context(), log, entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, log)
}

// DELETE /nutrition/log/:date/entries/:id
func (nc *NutritionController) RemoveEntry(c *gin.Context) {
	uid := c.GetUint("userID")
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	log, _ := nc.Logs.Load(c.Request.Context(), uid, date)
	if err := nc.Logs.RemoveEntry(c.Request.Context(), log, c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, log)
}

// GET /nutrition/history?days=7
func (nc *NutritionController) GetHistory(c *gin.Context) {
	uid := c.GetUint("userID")

	days := 7
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "days must be a positive integer"})
			return
		}
		days = n
	}

	logs, err := nc.Logs.History(c.Request.Context(), uid, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}
