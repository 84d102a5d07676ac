package repositories

import (
	"context"

	"fittrack/internal/models"
)

// FoodRepository reads and writes food items. Visibility means global foods
// plus the caller's own custom ones.
type FoodRepository interface {
	Search(ctx context.Context, userID uint, query string, limit int) ([]models.FoodItem, error)
	ListVisible(ctx context.Context, userID uint, limit int) ([]models.FoodItem, error)
	GetVisible(ctx context.Context, id, userID uint) (*models.FoodItem, error)
	GetByBarcode(ctx context.Context, barcode string, userID uint) (*models.FoodItem, error)
	Create(ctx context.Context, food *models.FoodItem) error
}

// MealRepository stores meals and their food lines.
type MealRepository interface {
	ListByDate(ctx context.Context, userID uint, date string) ([]models.MealWithItems, error)
	ListByDateAndType(ctx context.Context, userID uint, date, mealType string) ([]models.MealWithItems, error)
	Create(ctx context.Context, meal *models.Meal) error
	AddItem(ctx context.Context, item *models.MealFoodItem) (*models.MealItemView, error)
	// ItemsForDay returns every food line of the user's meals on date.
	ItemsForDay(ctx context.Context, userID uint, date string) ([]models.MealItemView, error)
}

// GoalRepository stores nutrition goals.
type GoalRepository interface {
	// GetActive returns the user's active goal or an error wrapping ErrNotFound.
	GetActive(ctx context.Context, userID uint) (*models.NutritionGoal, error)
	// Activate deactivates the user's current goals and inserts goal as the
	// active one, atomically.
	Activate(ctx context.Context, goal *models.NutritionGoal) error
}
