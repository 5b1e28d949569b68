package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used in document keys and routes.
const DateLayout = "2006-01-02"

// NutritionTotals is the element-wise sum over a log's entries. Derived state
// only: it is recomputed on every mutation and must never drift from the
// entries it was computed from.
type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

// LogEntry is one amount-scaled food in a day's log. Macro values are
// absolute for the logged amount, not per 100 g. Entries are immutable after
// creation; a correction is modeled as remove + re-add.
type LogEntry struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	LogID      uint      `gorm:"index" json:"-"`
	EntryID    string    `gorm:"type:varchar(64);index;not null" json:"id"`
	Name       string    `gorm:"not null" json:"name"`
	Amount     float64   `json:"amount"` // grams
	Calories   float64   `json:"calories"`
	Protein    float64   `json:"protein"`
	Carbs      float64   `json:"carbs"`
	Fats       float64   `json:"fats"`
	Unit       string    `gorm:"size:8" json:"unit"`
	BrandOwner string    `json:"brand_owner"`
	Source     string    `json:"source"`
	AddedAt    time.Time `json:"added_at"`
}

// NutritionLog is the full food log for one user on one calendar date, plus
// the cached totals snapshot. Row insertion order is the display order.
type NutritionLog struct {
	ID        uint            `gorm:"primaryKey" json:"-"`
	UserID    uint            `gorm:"index;not null" json:"user_id"`
	Date      string          `gorm:"type:varchar(10);not null" json:"date"`
	DocKey    string          `gorm:"type:varchar(32);uniqueIndex;not null" json:"-"`
	Entries   []LogEntry      `gorm:"foreignKey:LogID" json:"entries"`
	Totals    NutritionTotals `gorm:"embedded;embeddedPrefix:total_" json:"totals"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// LogDocKey builds the "{userId}_{date}" document key a log is stored under.
func LogDocKey(userID uint, date string) string {
	return fmt.Sprintf("%d_%s", userID, date)
}

// NewNutritionLog returns an empty log for the key: no entries, zero totals.
func NewNutritionLog(userID uint, date string) *NutritionLog {
	return &NutritionLog{
		UserID:  userID,
		Date:    date,
		DocKey:  LogDocKey(userID, date),
		Entries: []LogEntry{},
	}
}

// SumEntries recomputes totals from scratch over the given entries.
func SumEntries(entries []LogEntry) NutritionTotals {
	var t NutritionTotals
	for _, e := range entries {
		t.Calories += e.Calories
		t.Protein += e.Protein
		t.Carbs += e.Carbs
		t.Fats += e.Fats
	}
	return t
}

// Recalculate refreshes the cached totals from the current entries. Callers
// must invoke it after every structural change, before persisting.
func (l *NutritionLog) Recalculate() {
	l.Totals = SumEntries(l.Entries)
}
