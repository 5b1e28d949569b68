package services

import (
	"math"
	"time"

	"backend/models"

	"github.com/google/uuid"
)

// NewLogEntry scales a catalog item's per-100g macros to the requested amount
// of grams. Scaling is exact linear math with no rounding; display rounding
// is a presentation concern.
func NewLogEntry(item models.CatalogItem, amountGrams float64) (models.LogEntry, error) {
	if math.IsNaN(amountGrams) || math.IsInf(amountGrams, 0) || amountGrams <= 0 {
		return models.LogEntry{}, ErrInvalidAmount
	}

	factor := amountGrams / 100
	return models.LogEntry{
		EntryID:    uuid.NewString(),
		Name:       item.Name,
		Amount:     amountGrams,
		Calories:   item.Calories * factor,
		Protein:    item.Protein * factor,
		Carbs:      item.Carbs * factor,
		Fats:       item.Fats * factor,
		Unit:       "g",
		BrandOwner: item.BrandOwner,
		Source:     item.Source,
		AddedAt:    time.Now().UTC(),
	}, nil
}
