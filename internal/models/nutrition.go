package models

import "time"

// Meal types accepted by the API.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// FoodItem is either global (UserID nil) or a user's custom food.
// Nutrients are per serving.
type FoodItem struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"type:varchar(100);index;not null"`
	Brand       *string   `json:"brand" gorm:"type:varchar(100)"`
	Calories    *float64  `json:"calories"`
	Protein     *float64  `json:"protein"`
	Carbs       *float64  `json:"carbs"`
	Fat         *float64  `json:"fat"`
	Fiber       *float64  `json:"fiber"`
	Sugar       *float64  `json:"sugar"`
	ServingSize *float64  `json:"servingSize"`
	ServingUnit *string   `json:"servingUnit" gorm:"type:varchar(50)"`
	Barcode     *string   `json:"barcode" gorm:"type:varchar(100);index"`
	IsCustom    bool      `json:"isCustom"`
	UserID      *uint     `json:"userId" gorm:"index"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Meal groups the food logged by a user at one sitting.
type Meal struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index:idx_meals_user_date;not null"`
	Name      string    `json:"name" gorm:"type:varchar(100);not null"`
	Type      string    `json:"type" gorm:"type:varchar(50)"`
	Date      string    `json:"date" gorm:"type:varchar(10);index:idx_meals_user_date;not null"`
	Time      *string   `json:"time" gorm:"type:varchar(20)"`
	CreatedAt time.Time `json:"createdAt"`
}

// MealFoodItem is one food line inside a meal. ServingSize is the number of
// servings eaten.
type MealFoodItem struct {
	ID                       uint      `json:"id" gorm:"primaryKey"`
	MealID                   uint      `json:"mealId" gorm:"index;not null"`
	FoodItemID               uint      `json:"foodItemId" gorm:"not null"`
	ServingSize              *float64  `json:"servingSize"`
	ServingUnit              *string   `json:"servingUnit" gorm:"type:varchar(50)"`
	CustomServingDescription *string   `json:"customServingDescription" gorm:"type:varchar(100)"`
	CreatedAt                time.Time `json:"createdAt"`
}

// MealItemView is a meal line joined with the nutrients of its food.
type MealItemView struct {
	ID                       uint     `json:"id"`
	MealID                   uint     `json:"mealId"`
	FoodItemID               uint     `json:"foodItemId"`
	ServingSize              *float64 `json:"servingSize"`
	ServingUnit              *string  `json:"servingUnit"`
	CustomServingDescription *string  `json:"customServingDescription"`
	Name                     *string  `json:"name"`
	Brand                    *string  `json:"brand"`
	Calories                 *float64 `json:"calories"`
	Protein                  *float64 `json:"protein"`
	Carbs                    *float64 `json:"carbs"`
	Fat                      *float64 `json:"fat"`
}

// MealWithItems is a meal plus its joined lines.
type MealWithItems struct {
	Meal
	Items []MealItemView `json:"items"`
}

// NutritionGoal is a daily calorie and macro target. At most one goal per
// user is active.
type NutritionGoal struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	UserID        uint      `json:"userId" gorm:"index;not null"`
	DailyCalories int       `json:"dailyCalories" gorm:"not null"`
	ProteinPct    *float64  `json:"proteinPct"`
	CarbsPct      *float64  `json:"carbsPct"`
	FatPct        *float64  `json:"fatPct"`
	ProteinG      *float64  `json:"proteinG"`
	CarbsG        *float64  `json:"carbsG"`
	FatG          *float64  `json:"fatG"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
}

// GoalView is the goal returned to clients. IsDefault marks the built-in
// fallback served when the user never set a goal.
type GoalView struct {
	NutritionGoal
	IsDefault bool `json:"isDefault"`
}

// MacroTotals holds summed calories and macros.
type MacroTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// DailySummary compares a day's intake with the active goal.
type DailySummary struct {
	Date      string      `json:"date"`
	Consumed  MacroTotals `json:"consumed"`
	Target    MacroTotals `json:"target"`
	Remaining MacroTotals `json:"remaining"`
	Adherence MacroTotals `json:"adherence"`
	Goal      GoalView    `json:"goal"`
}
