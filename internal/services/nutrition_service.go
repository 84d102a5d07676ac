package services

import (
	"context"
	"errors"
	"math"

	"fittrack/internal/models"
	"fittrack/internal/observability"
	"fittrack/internal/repositories"
)

// Energy density used to turn macro percentages into grams.
const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0
)

// DefaultGoal is served to users who never set a goal.
func DefaultGoal(userID uint) models.GoalView {
	protein, carbs, fat := 30.0, 40.0, 30.0
	return models.GoalView{
		NutritionGoal: models.NutritionGoal{
			UserID:        userID,
			DailyCalories: 2200,
			ProteinPct:    &protein,
			CarbsPct:      &carbs,
			FatPct:        &fat,
			Active:        true,
		},
		IsDefault: true,
	}
}

// GoalInput is the request body for a new nutrition goal.
type GoalInput struct {
	DailyCalories int      `json:"dailyCalories" validate:"required,min=1,max=10000"`
	ProteinPct    *float64 `json:"proteinPct" validate:"omitempty,min=0,max=100"`
	CarbsPct      *float64 `json:"carbsPct" validate:"omitempty,min=0,max=100"`
	FatPct        *float64 `json:"fatPct" validate:"omitempty,min=0,max=100"`
	ProteinG      *float64 `json:"proteinG" validate:"omitempty,min=0"`
	CarbsG        *float64 `json:"carbsG" validate:"omitempty,min=0"`
	FatG          *float64 `json:"fatG" validate:"omitempty,min=0"`
}

// NutritionService sums logged food and compares it with the active goal.
type NutritionService struct {
	meals   repositories.MealRepository
	goals   repositories.GoalRepository
	events  EventPublisher
	metrics *observability.Metrics
}

// NewNutritionService creates a new NutritionService. events and metrics may be nil.
func NewNutritionService(meals repositories.MealRepository, goals repositories.GoalRepository, events EventPublisher, metrics *observability.Metrics) *NutritionService {
	return &NutritionService{meals: meals, goals: goals, events: events, metrics: metrics}
}

// SumMacros folds meal lines into totals. Each line counts its food's
// nutrients times ServingSize; a missing or zero serving size counts once.
func SumMacros(items []models.MealItemView) models.MacroTotals {
	var total models.MacroTotals
	for _, it := range items {
		servings := 1.0
		if it.ServingSize != nil && *it.ServingSize != 0 {
			servings = *it.ServingSize
		}
		total.Calories += value(it.Calories) * servings
		total.Protein += value(it.Protein) * servings
		total.Carbs += value(it.Carbs) * servings
		total.Fat += value(it.Fat) * servings
	}
	return total
}

func value(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// DailyMacros returns what the user consumed on date.
func (s *NutritionService) DailyMacros(ctx context.Context, userID uint, date string) (models.MacroTotals, error) {
	if err := requireDate(date, "Date is required"); err != nil {
		return models.MacroTotals{}, err
	}
	items, err := s.meals.ItemsForDay(ctx, userID, date)
	if err != nil {
		return models.MacroTotals{}, models.NewInternalError(err)
	}
	return SumMacros(items), nil
}

// ActiveGoal returns the user's active goal, or DefaultGoal when none is set.
func (s *NutritionService) ActiveGoal(ctx context.Context, userID uint) (models.GoalView, error) {
	goal, err := s.goals.GetActive(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return DefaultGoal(userID), nil
		}
		return models.GoalView{}, models.NewInternalError(err)
	}
	return models.GoalView{NutritionGoal: *goal}, nil
}

// SetGoal stores a new goal and makes it the only active one.
func (s *NutritionService) SetGoal(ctx context.Context, userID uint, input GoalInput) (*models.NutritionGoal, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.ProteinPct != nil && input.CarbsPct != nil && input.FatPct != nil {
		sum := *input.ProteinPct + *input.CarbsPct + *input.FatPct
		if math.Abs(sum-100) > 0.5 {
			return nil, models.NewValidationError("Validation failed", map[string]string{
				"macros": "proteinPct, carbsPct and fatPct must add up to 100",
			})
		}
	}

	goal := &models.NutritionGoal{
		UserID:        userID,
		DailyCalories: input.DailyCalories,
		ProteinPct:    input.ProteinPct,
		CarbsPct:      input.CarbsPct,
		FatPct:        input.FatPct,
		ProteinG:      input.ProteinG,
		CarbsG:        input.CarbsG,
		FatG:          input.FatG,
	}
	if err := s.goals.Activate(ctx, goal); err != nil {
		return nil, models.NewInternalError(err)
	}

	s.metrics.RecordGoalActivated()
	publish(ctx, s.events, EventNutritionGoalActivated, map[string]interface{}{
		"userId":        userID,
		"goalId":        goal.ID,
		"dailyCalories": goal.DailyCalories,
	})
	return goal, nil
}

// TargetGrams converts a goal into absolute targets. Explicit grams win;
// otherwise grams derive from the calorie share of each macro.
func TargetGrams(goal models.NutritionGoal) models.MacroTotals {
	kcal := float64(goal.DailyCalories)
	grams := func(explicit, pct *float64, kcalPerGram float64) float64 {
		if explicit != nil {
			return *explicit
		}
		if pct != nil {
			return round1(kcal * *pct / 100 / kcalPerGram)
		}
		return 0
	}
	return models.MacroTotals{
		Calories: kcal,
		Protein:  grams(goal.ProteinG, goal.ProteinPct, kcalPerGramProtein),
		Carbs:    grams(goal.CarbsG, goal.CarbsPct, kcalPerGramCarbs),
		Fat:      grams(goal.FatG, goal.FatPct, kcalPerGramFat),
	}
}

// Adherence is min(100, consumed/target*100) per field, and 0 for a zero target.
func Adherence(consumed, target models.MacroTotals) models.MacroTotals {
	pct := func(c, t float64) float64 {
		if t <= 0 {
			return 0
		}
		return round1(math.Min(100, c/t*100))
	}
	return models.MacroTotals{
		Calories: pct(consumed.Calories, target.Calories),
		Protein:  pct(consumed.Protein, target.Protein),
		Carbs:    pct(consumed.Carbs, target.Carbs),
		Fat:      pct(consumed.Fat, target.Fat),
	}
}

// DailySummary reports consumption, targets, what is left and adherence for date.
// Remaining goes negative once a target is exceeded.
func (s *NutritionService) DailySummary(ctx context.Context, userID uint, date string) (*models.DailySummary, error) {
	consumed, err := s.DailyMacros(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	goal, err := s.ActiveGoal(ctx, userID)
	if err != nil {
		return nil, err
	}

	target := TargetGrams(goal.NutritionGoal)
	return &models.DailySummary{
		Date:     date,
		Consumed: consumed,
		Target:   target,
		Remaining: models.MacroTotals{
			Calories: round1(target.Calories - consumed.Calories),
			Protein:  round1(target.Protein - consumed.Protein),
			Carbs:    round1(target.Carbs - consumed.Carbs),
			Fat:      round1(target.Fat - consumed.Fat),
		},
		Adherence: Adherence(consumed, target),
		Goal:      goal,
	}, nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
