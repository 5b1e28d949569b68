package services

import (
	"context"
	"errors"
	"fmt"

	"backend/models"

	"gorm.io/gorm"
)

// DailyGoalService tracks per-user macro targets and scores a day's totals
// against them. Crossing the calorie target emits an alert through the bus.
type DailyGoalService struct {
	db     *gorm.DB
	logs   *NutritionLogService
	alerts *AlertBus
}

func NewDailyGoalService(db *gorm.DB, logs *NutritionLogService, alerts *AlertBus) *DailyGoalService {
	return &DailyGoalService{db: db, logs: logs, alerts: alerts}
}

// GetGoalsAndProgress loads the user's targets and the selected day's totals
// and returns consumed/goal/percent per macro. A user without a stored goal
// gets zero targets.
func (s *DailyGoalService) GetGoalsAndProgress(ctx context.Context, userID uint, date string) (*models.DailyGoal, map[string]any, error) {
	var goal models.DailyGoal
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, err
		}
		goal = models.DailyGoal{UserID: userID}
	}

	// a load failure presents as an empty day; progress is still computable
	log, _ := s.logs.Load(ctx, userID, date)
	totals := log.Totals

	pct := func(consumed, target float64) float64 {
		if target <= 0 {
			return 0
		}
		p := consumed / target
		if p > 1 {
			return 1
		}
		return p
	}

	progress := map[string]any{
		"calories": map[string]float64{"consumed": totals.Calories, "goal": goal.Calories, "percent": pct(totals.Calories, goal.Calories)},
		"protein":  map[string]float64{"consumed": totals.Protein, "goal": goal.Protein, "percent": pct(totals.Protein, goal.Protein)},
		"carbs":    map[string]float64{"consumed": totals.Carbs, "goal": goal.Carbs, "percent": pct(totals.Carbs, goal.Carbs)},
		"fats":     map[string]float64{"consumed": totals.Fats, "goal": goal.Fats, "percent": pct(totals.Fats, goal.Fats)},
	}

	return &goal, progress, nil
}

// UpsertGoals stores the user's targets, creating the row on first use.
func (s *DailyGoalService) UpsertGoals(ctx context.Context, userID uint, calories, protein, carbs, fats float64) error {
	var goal models.DailyGoal
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		goal = models.DailyGoal{
			UserID:   userID,
			Calories: calories,
			Protein:  protein,
			Carbs:    carbs,
			Fats:     fats,
		}
		return s.db.WithContext(ctx).Create(&goal).Error
	}
	if err != nil {
		return err
	}

	goal.Calories = calories
	goal.Protein = protein
	goal.Carbs = carbs
	goal.Fats = fats
	return s.db.WithContext(ctx).Save(&goal).Error
}

// CheckLog runs after a durable log write and emits a warning the moment the
// day's calories cross the user's target.
func (s *DailyGoalService) CheckLog(log *models.NutritionLog) {
	if s.alerts == nil {
		return
	}
	var goal models.DailyGoal
	if err := s.db.Where("user_id = ?", log.UserID).First(&goal).Error; err != nil {
		return
	}
	if goal.Calories > 0 && log.Totals.Calories > goal.Calories {
		s.alerts.Emit(log.UserID, "warning",
			fmt.Sprintf("Calorie goal exceeded for %s: %.0f of %.0f kcal", log.Date, log.Totals.Calories, goal.Calories))
	}
}
