package models

import "gorm.io/gorm"

// DailyGoal holds a user's daily macro-intake targets. A zero target means
// "no goal set" for that macro.
type DailyGoal struct {
	gorm.Model
	UserID   uint    `gorm:"index;not null"`
	Calories float64 // e.g. 2200 kcal
	Protein  float64 // e.g. 120 g
	Carbs    float64 // e.g. 275 g
	Fats     float64 // e.g. 70 g
}
