package services

import (
	"context"
	"errors"
	"strings"

	"fittrack/internal/models"
	"fittrack/internal/observability"
	"fittrack/internal/repositories"
)

const (
	foodSearchLimit = 20
	foodListLimit   = 50
)

// FoodInput is the request body for a custom food item. Nutrients are per serving.
type FoodInput struct {
	Name        string   `json:"name" validate:"required,max=100"`
	Brand       *string  `json:"brand" validate:"omitempty,max=100"`
	Calories    *float64 `json:"calories" validate:"omitempty,min=0"`
	Protein     *float64 `json:"protein" validate:"omitempty,min=0"`
	Carbs       *float64 `json:"carbs" validate:"omitempty,min=0"`
	Fat         *float64 `json:"fat" validate:"omitempty,min=0"`
	Fiber       *float64 `json:"fiber" validate:"omitempty,min=0"`
	Sugar       *float64 `json:"sugar" validate:"omitempty,min=0"`
	ServingSize *float64 `json:"servingSize" validate:"omitempty,min=0"`
	ServingUnit *string  `json:"servingUnit" validate:"omitempty,max=50"`
	Barcode     *string  `json:"barcode" validate:"omitempty,max=100"`
}

// MealInput is the request body for a meal.
type MealInput struct {
	Name string  `json:"name" validate:"required,max=100"`
	Type string  `json:"type" validate:"required,oneof=breakfast lunch dinner snack"`
	Date string  `json:"date" validate:"required,isodate"`
	Time *string `json:"time" validate:"omitempty,max=20"`
}

// MealItemInput adds a food to a meal. ServingSize is the number of servings eaten.
type MealItemInput struct {
	FoodItemID               uint     `json:"foodItemId" validate:"required"`
	ServingSize              *float64 `json:"servingSize" validate:"omitempty,min=0"`
	ServingUnit              *string  `json:"servingUnit" validate:"omitempty,max=50"`
	CustomServingDescription *string  `json:"customServingDescription" validate:"omitempty,max=100"`
}

// MealService handles the food catalog and the meals users log.
type MealService struct {
	foods   repositories.FoodRepository
	meals   repositories.MealRepository
	metrics *observability.Metrics
}

// NewMealService creates a new MealService. metrics may be nil.
func NewMealService(foods repositories.FoodRepository, meals repositories.MealRepository, metrics *observability.Metrics) *MealService {
	return &MealService{foods: foods, meals: meals, metrics: metrics}
}

// SearchFoods matches food names case-insensitively.
func (s *MealService) SearchFoods(ctx context.Context, userID uint, query string) ([]models.FoodItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, models.NewValidationError("Search query is required", map[string]string{"query": "query is required"})
	}
	foods, err := s.foods.Search(ctx, userID, query, foodSearchLimit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return foods, nil
}

func (s *MealService) ListFoods(ctx context.Context, userID uint) ([]models.FoodItem, error) {
	foods, err := s.foods.ListVisible(ctx, userID, foodListLimit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return foods, nil
}

// FoodByBarcode prefers the user's own food over a global one with the same barcode.
func (s *MealService) FoodByBarcode(ctx context.Context, userID uint, barcode string) (*models.FoodItem, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, models.NewValidationError("Barcode is required", map[string]string{"barcode": "barcode is required"})
	}
	food, err := s.foods.GetByBarcode(ctx, barcode, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.NewNotFoundError("Food item not found")
		}
		return nil, models.NewInternalError(err)
	}
	return food, nil
}

// CreateFood stores a custom food visible only to its owner.
func (s *MealService) CreateFood(ctx context.Context, userID uint, input FoodInput) (*models.FoodItem, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	food := &models.FoodItem{
		Name:        input.Name,
		Brand:       input.Brand,
		Calories:    input.Calories,
		Protein:     input.Protein,
		Carbs:       input.Carbs,
		Fat:         input.Fat,
		Fiber:       input.Fiber,
		Sugar:       input.Sugar,
		ServingSize: input.ServingSize,
		ServingUnit: input.ServingUnit,
		Barcode:     input.Barcode,
		IsCustom:    true,
		UserID:      &userID,
	}
	if err := s.foods.Create(ctx, food); err != nil {
		return nil, models.NewInternalError(err)
	}
	return food, nil
}

// MealsByDate returns the user's meals on date with their items.
func (s *MealService) MealsByDate(ctx context.Context, userID uint, date string) ([]models.MealWithItems, error) {
	if err := requireDate(date, "Date is required"); err != nil {
		return nil, err
	}
	meals, err := s.meals.ListByDate(ctx, userID, date)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return meals, nil
}

func (s *MealService) MealsByDateAndType(ctx context.Context, userID uint, date, mealType string) ([]models.MealWithItems, error) {
	if !IsISODate(date) || !isMealType(mealType) {
		return nil, models.NewValidationError("Date and type are required", map[string]string{
			"date": "date must be a date in YYYY-MM-DD format",
			"type": "type must be one of: breakfast, lunch, dinner, snack",
		})
	}
	meals, err := s.meals.ListByDateAndType(ctx, userID, date, mealType)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return meals, nil
}

func isMealType(t string) bool {
	switch t {
	case models.MealBreakfast, models.MealLunch, models.MealDinner, models.MealSnack:
		return true
	}
	return false
}

func (s *MealService) CreateMeal(ctx context.Context, userID uint, input MealInput) (*models.MealWithItems, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	meal := &models.Meal{
		UserID: userID,
		Name:   input.Name,
		Type:   input.Type,
		Date:   input.Date,
		Time:   input.Time,
	}
	if err := s.meals.Create(ctx, meal); err != nil {
		return nil, models.NewInternalError(err)
	}
	return &models.MealWithItems{Meal: *meal, Items: []models.MealItemView{}}, nil
}

// AddMealItem logs a visible food into an owned meal and returns the line
// joined with the food's nutrients.
func (s *MealService) AddMealItem(ctx context.Context, userID, mealID uint, input MealItemInput) (*models.MealItemView, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.foods.GetVisible(ctx, input.FoodItemID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.NewNotFoundError("Food item not found")
		}
		return nil, models.NewInternalError(err)
	}

	item, err := s.meals.AddItem(ctx, &models.MealFoodItem{
		MealID:                   mealID,
		FoodItemID:               input.FoodItemID,
		ServingSize:              input.ServingSize,
		ServingUnit:              input.ServingUnit,
		CustomServingDescription: input.CustomServingDescription,
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	s.metrics.RecordMealItem()
	return item, nil
}
