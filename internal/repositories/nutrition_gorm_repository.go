package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fittrack/internal/models"

	"gorm.io/gorm"
)

const visibleToUser = "(user_id IS NULL OR user_id = ?)"

// GORMFoodRepository is a GORM implementation of FoodRepository.
type GORMFoodRepository struct {
	db *gorm.DB
}

// NewGORMFoodRepository creates a new GORMFoodRepository.
func NewGORMFoodRepository(db *gorm.DB) *GORMFoodRepository {
	return &GORMFoodRepository{db: db}
}

// Search matches query case-insensitively anywhere in the food name.
func (r *GORMFoodRepository) Search(ctx context.Context, userID uint, query string, limit int) ([]models.FoodItem, error) {
	var foods []models.FoodItem
	pattern := "%" + strings.ToLower(query) + "%"
	err := r.db.WithContext(ctx).
		Where(visibleToUser, userID).
		Where("LOWER(name) LIKE ?", pattern).
		Order("name").
		Limit(limit).
		Find(&foods).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search food items: %w", err)
	}
	return foods, nil
}

func (r *GORMFoodRepository) ListVisible(ctx context.Context, userID uint, limit int) ([]models.FoodItem, error) {
	var foods []models.FoodItem
	if err := r.db.WithContext(ctx).Where(visibleToUser, userID).Order("name").Limit(limit).Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("failed to list food items: %w", err)
	}
	return foods, nil
}

func (r *GORMFoodRepository) GetVisible(ctx context.Context, id, userID uint) (*models.FoodItem, error) {
	var food models.FoodItem
	err := r.db.WithContext(ctx).Where("id = ?", id).Where(visibleToUser, userID).First(&food).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("food item %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get food item %d: %w", id, err)
	}
	return &food, nil
}

// GetByBarcode prefers the user's own entry over a global one.
func (r *GORMFoodRepository) GetByBarcode(ctx context.Context, barcode string, userID uint) (*models.FoodItem, error) {
	var food models.FoodItem
	err := r.db.WithContext(ctx).
		Where("barcode = ?", barcode).
		Where(visibleToUser, userID).
		Order("is_custom DESC, id").
		First(&food).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("food item with barcode %s: %w", barcode, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get food item by barcode %s: %w", barcode, err)
	}
	return &food, nil
}

func (r *GORMFoodRepository) Create(ctx context.Context, food *models.FoodItem) error {
	if err := r.db.WithContext(ctx).Create(food).Error; err != nil {
		return fmt.Errorf("failed to create food item: %w", err)
	}
	return nil
}

const mealItemColumns = "meal_food_items.id, meal_food_items.meal_id, meal_food_items.food_item_id, " +
	"meal_food_items.serving_size, meal_food_items.serving_unit, meal_food_items.custom_serving_description, " +
	"food_items.name, food_items.brand, food_items.calories, food_items.protein, food_items.carbs, food_items.fat"

// GORMMealRepository is a GORM implementation of MealRepository.
type GORMMealRepository struct {
	db *gorm.DB
}

// NewGORMMealRepository creates a new GORMMealRepository.
func NewGORMMealRepository(db *gorm.DB) *GORMMealRepository {
	return &GORMMealRepository{db: db}
}

func (r *GORMMealRepository) ListByDate(ctx context.Context, userID uint, date string) ([]models.MealWithItems, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("user_id = ? AND date = ?", userID, date))
}

func (r *GORMMealRepository) ListByDateAndType(ctx context.Context, userID uint, date, mealType string) ([]models.MealWithItems, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("user_id = ? AND date = ? AND type = ?", userID, date, mealType))
}

// list loads the meals matched by q and attaches their lines with a single extra query.
func (r *GORMMealRepository) list(ctx context.Context, q *gorm.DB) ([]models.MealWithItems, error) {
	var meals []models.Meal
	if err := q.Order("id").Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}

	result := make([]models.MealWithItems, len(meals))
	if len(meals) == 0 {
		return result, nil
	}

	ids := make([]uint, len(meals))
	for i, m := range meals {
		ids[i] = m.ID
	}

	var items []models.MealItemView
	err := r.itemQuery(ctx).Where("meal_food_items.meal_id IN ?", ids).Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load meal items: %w", err)
	}

	byMeal := make(map[uint][]models.MealItemView, len(meals))
	for _, it := range items {
		byMeal[it.MealID] = append(byMeal[it.MealID], it)
	}
	for i, m := range meals {
		lines := byMeal[m.ID]
		if lines == nil {
			lines = []models.MealItemView{}
		}
		result[i] = models.MealWithItems{Meal: m, Items: lines}
	}
	return result, nil
}

func (r *GORMMealRepository) itemQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("meal_food_items").
		Select(mealItemColumns).
		Joins("LEFT JOIN food_items ON food_items.id = meal_food_items.food_item_id").
		Order("meal_food_items.id")
}

func (r *GORMMealRepository) Create(ctx context.Context, meal *models.Meal) error {
	if err := r.db.WithContext(ctx).Create(meal).Error; err != nil {
		return fmt.Errorf("failed to create meal: %w", err)
	}
	return nil
}

// AddItem inserts the line and returns it joined with its food's nutrients.
func (r *GORMMealRepository) AddItem(ctx context.Context, item *models.MealFoodItem) (*models.MealItemView, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to add item to meal %d: %w", item.MealID, err)
	}

	var view models.MealItemView
	res := r.itemQuery(ctx).Where("meal_food_items.id = ?", item.ID).Scan(&view)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to load meal item %d: %w", item.ID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("meal item %d: %w", item.ID, ErrNotFound)
	}
	return &view, nil
}

func (r *GORMMealRepository) ItemsForDay(ctx context.Context, userID uint, date string) ([]models.MealItemView, error) {
	var items []models.MealItemView
	err := r.itemQuery(ctx).
		Joins("JOIN meals ON meals.id = meal_food_items.meal_id").
		Where("meals.user_id = ? AND meals.date = ?", userID, date).
		Scan(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load meal items for %s: %w", date, err)
	}
	return items, nil
}

// GORMGoalRepository is a GORM implementation of GoalRepository.
type GORMGoalRepository struct {
	db *gorm.DB
}

// NewGORMGoalRepository creates a new GORMGoalRepository.
func NewGORMGoalRepository(db *gorm.DB) *GORMGoalRepository {
	return &GORMGoalRepository{db: db}
}

func (r *GORMGoalRepository) GetActive(ctx context.Context, userID uint) (*models.NutritionGoal, error) {
	var goal models.NutritionGoal
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("created_at DESC, id DESC").
		First(&goal).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("active goal for user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get active goal for user %d: %w", userID, err)
	}
	return &goal, nil
}

func (r *GORMGoalRepository) Activate(ctx context.Context, goal *models.NutritionGoal) error {
	goal.Active = true
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.NutritionGoal{}).
			Where("user_id = ? AND active = ?", goal.UserID, true).
			Update("active", false).Error; err != nil {
			return err
		}
		return tx.Create(goal).Error
	})
	if err != nil {
		return fmt.Errorf("failed to activate nutrition goal: %w", err)
	}
	return nil
}
