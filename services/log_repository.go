package services

import (
	"context"
	"errors"
	"time"

	"backend/models"

	"gorm.io/gorm"
)

// LogRepository is the persistence gateway for daily nutrition logs. Records
// are addressed by (userID, date) and always read and written whole; there is
// no delta update. Concurrent writers are last-write-wins.
type LogRepository interface {
	// Load returns the stored log, or nil when no record exists for the key.
	Load(ctx context.Context, userID uint, date string) (*models.NutritionLog, error)
	// Save replaces the whole stored record with the given one.
	Save(ctx context.Context, log *models.NutritionLog) error
	// Range returns all stored logs for the user with from <= date <= to,
	// newest first.
	Range(ctx context.Context, userID uint, from, to string) ([]models.NutritionLog, error)
}

// GormLogRepository stores logs as a parent row plus one row per entry.
type GormLogRepository struct {
	db *gorm.DB
}

func NewGormLogRepository(db *gorm.DB) *GormLogRepository {
	return &GormLogRepository{db: db}
}

func entryOrder(tx *gorm.DB) *gorm.DB {
	// insertion order is the canonical display order
	return tx.Order("log_entries.id ASC")
}

func (r *GormLogRepository) Load(ctx context.Context, userID uint, date string) (*models.NutritionLog, error) {
	var log models.NutritionLog
	err := r.db.WithContext(ctx).
		Preload("Entries", entryOrder).
		Where("doc_key = ?", models.LogDocKey(userID, date)).
		First(&log).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	return &log, nil
}

// Save upserts the parent row and recreates the entry rows from scratch, so
// the stored sequence always matches the in-memory one exactly.
func (r *GormLogRepository) Save(ctx context.Context, log *models.NutritionLog) error {
	log.DocKey = models.LogDocKey(log.UserID, log.Date)
	log.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.NutritionLog
		err := tx.Where("doc_key = ?", log.DocKey).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first write for this key
		case err != nil:
			return err
		default:
			log.ID = existing.ID
			if err := tx.Where("log_id = ?", existing.ID).Delete(&models.LogEntry{}).Error; err != nil {
				return err
			}
		}

		if log.ID == 0 {
			if err := tx.Omit("Entries").Create(log).Error; err != nil {
				return err
			}
		} else if err := tx.Omit("Entries").Save(log).Error; err != nil {
			return err
		}

		for i := range log.Entries {
			log.Entries[i].ID = 0
			log.Entries[i].LogID = log.ID
			if err := tx.Create(&log.Entries[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	return nil
}

func (r *GormLogRepository) Range(ctx context.Context, userID uint, from, to string) ([]models.NutritionLog, error) {
	var logs []models.NutritionLog
	err := r.db.WithContext(ctx).
		Preload("Entries", entryOrder).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, from, to).
		Order("date DESC").
		Find(&logs).Error
	if err != nil {
		return nil, &PersistenceError{Op: "range", Err: err}
	}
	return logs, nil
}
