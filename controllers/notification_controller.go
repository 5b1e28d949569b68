package controllers

import (
	"net/http"
	"strconv"

	"backend/services"

	"github.com/gin-gonic/gin"
)

type NotificationController struct {
	Alerts *services.AlertBus
}

func NewNotificationController(alerts *services.AlertBus) *NotificationController {
	return &NotificationController{Alerts: alerts}
}

// GET /user/alerts?limit=20
func (nc *NotificationController) ListAlerts(c *gin.Context) {
	uid := c.GetUint("userID")

	limit := 0
	if v := c.Query("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}

	alerts, err := nc.Alerts.Recent(uid, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, alerts)
}
