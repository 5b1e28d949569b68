package services

import (
	"fmt"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

// AlertBus persists an alert and fans it out over websocket and push. Hub and
// push may be nil (tests, or SNS not configured); the alert is still stored.
type AlertBus struct {
	db   *gorm.DB
	hub  *RealtimeHub
	push *PushService
}

func NewAlertBus(db *gorm.DB, hub *RealtimeHub, push *PushService) *AlertBus {
	return &AlertBus{db: db, hub: hub, push: push}
}

func (b *AlertBus) Emit(userID uint, typ, message string) {
	a := &models.Alert{UserID: userID, Type: typ, Message: message, CreatedAt: time.Now()}
	_ = b.db.Create(a).Error

	if b.hub != nil {
		b.hub.Broadcast(userID, map[string]any{
			"kind":  "alert.created",
			"alert": a,
		})
	}
	if b.push != nil {
		b.push.PushToUser(userID, "FitTrack", message, map[string]string{
			"type": typ, "alertId": fmt.Sprintf("%d", a.ID),
		})
	}
}

// Recent returns the user's newest alerts, capped at limit.
func (b *AlertBus) Recent(userID uint, limit int) ([]models.Alert, error) {
	if limit <= 0 {
		limit = 20
	}
	var alerts []models.Alert
	err := b.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}
