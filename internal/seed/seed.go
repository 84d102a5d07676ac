// Package seed fills the database with the global exercise and food catalog
// and, for development, a demo account with realistic history.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"fittrack/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type exerciseSeed struct {
	name, muscleGroup, instructions string
}

var catalogExercises = []exerciseSeed{
	{"Barbell Bench Press", "chest", "Lower the bar to mid chest, press back up until arms are straight."},
	{"Incline Dumbbell Press", "chest", "Press dumbbells up from shoulder level on a 30 degree bench."},
	{"Push-up", "chest", "Keep the body straight and lower the chest to just above the floor."},
	{"Barbell Back Squat", "legs", "Sit back and down until thighs are parallel, drive up through the heels."},
	{"Romanian Deadlift", "legs", "Hinge at the hips with a slight knee bend, keep the bar close to the legs."},
	{"Walking Lunge", "legs", "Step forward and lower the back knee towards the floor, alternate legs."},
	{"Pull-up", "back", "Pull the chin over the bar from a dead hang, lower under control."},
	{"Bent-over Barbell Row", "back", "Row the bar to the lower ribs with a flat back."},
	{"Lat Pulldown", "back", "Pull the bar to the upper chest, squeeze the shoulder blades together."},
	{"Overhead Press", "shoulders", "Press the bar from the front rack to overhead lockout."},
	{"Lateral Raise", "shoulders", "Raise dumbbells out to the side up to shoulder height."},
	{"Barbell Curl", "arms", "Curl the bar up without swinging the torso."},
	{"Triceps Pushdown", "arms", "Extend the elbows fully while keeping upper arms still."},
	{"Plank", "core", "Hold a straight line from head to heels on forearms and toes."},
	{"Hanging Leg Raise", "core", "Raise straight legs to hip height from a dead hang."},
}

type foodSeed struct {
	name                          string
	calories, protein, carbs, fat float64
	servingSize                   float64
	servingUnit                   string
	barcode                       string
}

var catalogFoods = []foodSeed{
	{"Chicken Breast", 165, 31, 0, 3.6, 100, "g", ""},
	{"Brown Rice, cooked", 112, 2.6, 23, 0.9, 100, "g", ""},
	{"Oats", 389, 16.9, 66, 6.9, 100, "g", "0030000010402"},
	{"Whole Egg", 78, 6.3, 0.6, 5.3, 1, "large", ""},
	{"Greek Yogurt, plain", 59, 10, 3.6, 0.4, 100, "g", "0894700010014"},
	{"Banana", 105, 1.3, 27, 0.4, 1, "medium", ""},
	{"Apple", 95, 0.5, 25, 0.3, 1, "medium", ""},
	{"Salmon Fillet", 208, 20, 0, 13, 100, "g", ""},
	{"Broccoli", 34, 2.8, 7, 0.4, 100, "g", ""},
	{"Almonds", 579, 21, 22, 50, 100, "g", ""},
	{"Whole Milk", 149, 7.7, 12, 8, 244, "ml", "0070852993041"},
	{"Peanut Butter", 188, 8, 6, 16, 32, "g", "0051500255162"},
	{"Sweet Potato", 86, 1.6, 20, 0.1, 100, "g", ""},
	{"Whey Protein", 120, 24, 3, 1.5, 30, "g", ""},
	{"Olive Oil", 119, 0, 0, 13.5, 1, "tbsp", ""},
}

// Result counts the rows a seeding run inserted.
type Result struct {
	Exercises int
	Foods     int
}

// Catalog inserts the global exercises and foods that are not present yet.
// Running it twice inserts nothing the second time.
func Catalog(ctx context.Context, db *gorm.DB) (Result, error) {
	var res Result
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, e := range catalogExercises {
			exercise := models.Exercise{
				Name:         e.name,
				MuscleGroup:  ptr(e.muscleGroup),
				Instructions: ptr(e.instructions),
			}
			created, err := createGlobal(tx, &models.Exercise{}, e.name, &exercise)
			if err != nil {
				return fmt.Errorf("failed to seed exercise %s: %w", e.name, err)
			}
			if created {
				res.Exercises++
			}
		}

		for _, f := range catalogFoods {
			food := models.FoodItem{
				Name:        f.name,
				Calories:    ptr(f.calories),
				Protein:     ptr(f.protein),
				Carbs:       ptr(f.carbs),
				Fat:         ptr(f.fat),
				ServingSize: ptr(f.servingSize),
				ServingUnit: ptr(f.servingUnit),
			}
			if f.barcode != "" {
				food.Barcode = ptr(f.barcode)
			}
			created, err := createGlobal(tx, &models.FoodItem{}, f.name, &food)
			if err != nil {
				return fmt.Errorf("failed to seed food %s: %w", f.name, err)
			}
			if created {
				res.Foods++
			}
		}
		return nil
	})
	return res, err
}

// createGlobal inserts row unless a global row of the same model and name exists.
func createGlobal(tx *gorm.DB, model interface{}, name string, row interface{}) (bool, error) {
	var count int64
	if err := tx.Model(model).Where("name = ? AND user_id IS NULL", name).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	return true, tx.Create(row).Error
}

// DemoOptions controls the generated demo account.
type DemoOptions struct {
	// Seed makes the generated data reproducible; 0 picks a random seed.
	Seed     int64
	Password string
	// HashCost is the bcrypt cost; 0 means bcrypt.DefaultCost.
	HashCost int
	// Days of measurement and meal history to generate.
	Days int
	// Today anchors the history; zero means time.Now().
	Today time.Time
}

// DemoAccount is the login of a generated demo user.
type DemoAccount struct {
	UserID   uint
	Username string
	Email    string
	Password string
}

// DemoUser creates a user with a complete profile, an active program and
// goal, and a few days of meals and body measurements. The catalog must be
// seeded first.
func DemoUser(ctx context.Context, db *gorm.DB, opts DemoOptions) (*DemoAccount, error) {
	if opts.Password == "" {
		opts.Password = "fittrack123"
	}
	if opts.HashCost == 0 {
		opts.HashCost = bcrypt.DefaultCost
	}
	if opts.Days <= 0 {
		opts.Days = 14
	}
	if opts.Today.IsZero() {
		opts.Today = time.Now()
	}
	faker := gofakeit.New(opts.Seed)

	hash, err := bcrypt.GenerateFromPassword([]byte(opts.Password), opts.HashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	weight := faker.Float64Range(55, 95)
	user := &models.User{
		Username:      fmt.Sprintf("%s%d", faker.Username(), faker.Number(100, 999)),
		Email:         faker.Email(),
		Password:      string(hash),
		FullName:      ptr(faker.Name()),
		Age:           ptr(faker.Number(20, 60)),
		Gender:        ptr(faker.Gender()),
		Height:        ptr(round1(faker.Float64Range(155, 195))),
		Weight:        ptr(round1(weight)),
		ActivityLevel: ptr(faker.RandomString([]string{"sedentary", "light", "moderate", "active"})),
		Goal:          ptr(faker.RandomString([]string{"lose_weight", "maintain", "build_muscle"})),
		Units:         "metric",
		Notifications: true,
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create demo user: %w", err)
		}
		if err := seedProgram(tx, user.ID); err != nil {
			return err
		}
		if err := seedGoal(tx, user.ID); err != nil {
			return err
		}
		return seedHistory(tx, faker, user.ID, weight, opts)
	})
	if err != nil {
		return nil, err
	}

	return &DemoAccount{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Password: opts.Password,
	}, nil
}

func seedProgram(tx *gorm.DB, userID uint) error {
	program := &models.WorkoutProgram{
		UserID:      userID,
		Name:        "Upper / Lower Split",
		Description: ptr("Four sessions a week alternating upper and lower body."),
		Frequency:   ptr(4),
		Level:       ptr("intermediate"),
		Active:      true,
	}
	if err := tx.Create(program).Error; err != nil {
		return fmt.Errorf("failed to create demo program: %w", err)
	}

	days := []struct {
		name      string
		dayOfWeek int
		groups    []string
	}{
		{"Upper A", 1, []string{"chest", "back"}},
		{"Lower A", 2, []string{"legs", "core"}},
		{"Upper B", 4, []string{"shoulders", "arms"}},
		{"Lower B", 5, []string{"legs"}},
	}
	for i, d := range days {
		day := &models.WorkoutDay{
			ProgramID:          program.ID,
			Name:               d.name,
			DayOfWeek:          ptr(d.dayOfWeek),
			TargetMuscleGroups: ptr(strings.Join(d.groups, ",")),
			Order:              i,
		}
		if err := tx.Create(day).Error; err != nil {
			return fmt.Errorf("failed to create demo day %s: %w", d.name, err)
		}

		var exercises []models.Exercise
		if err := tx.Where("user_id IS NULL AND muscle_group IN ?", d.groups).Order("id").Limit(4).Find(&exercises).Error; err != nil {
			return fmt.Errorf("failed to load catalog exercises: %w", err)
		}
		for j, e := range exercises {
			dayExercise := &models.WorkoutDayExercise{
				DayID:      day.ID,
				ExerciseID: e.ID,
				Sets:       ptr(3),
				Reps:       ptr("8-12"),
				RestTime:   ptr(90),
				Order:      j,
			}
			if err := tx.Create(dayExercise).Error; err != nil {
				return fmt.Errorf("failed to add exercise to %s: %w", d.name, err)
			}
		}
	}
	return nil
}

func seedGoal(tx *gorm.DB, userID uint) error {
	goal := &models.NutritionGoal{
		UserID:        userID,
		DailyCalories: 2400,
		ProteinPct:    ptr(30.0),
		CarbsPct:      ptr(45.0),
		FatPct:        ptr(25.0),
		Active:        true,
	}
	if err := tx.Create(goal).Error; err != nil {
		return fmt.Errorf("failed to create demo goal: %w", err)
	}
	return nil
}

func seedHistory(tx *gorm.DB, faker *gofakeit.Faker, userID uint, weight float64, opts DemoOptions) error {
	var foods []models.FoodItem
	if err := tx.Where("user_id IS NULL").Order("id").Find(&foods).Error; err != nil {
		return fmt.Errorf("failed to load catalog foods: %w", err)
	}

	mealTypes := []string{models.MealBreakfast, models.MealLunch, models.MealDinner}
	for i := opts.Days - 1; i >= 0; i-- {
		date := opts.Today.AddDate(0, 0, -i).Format("2006-01-02")

		weight += faker.Float64Range(-0.4, 0.3)
		measurement := &models.BodyMeasurement{
			UserID:  userID,
			Date:    date,
			Weight:  ptr(round1(weight)),
			BodyFat: ptr(round1(faker.Float64Range(12, 28))),
			Waist:   ptr(round1(faker.Float64Range(70, 95))),
		}
		if err := tx.Create(measurement).Error; err != nil {
			return fmt.Errorf("failed to create measurement for %s: %w", date, err)
		}

		if len(foods) == 0 {
			continue
		}
		for _, mealType := range mealTypes {
			meal := &models.Meal{UserID: userID, Name: mealType, Type: mealType, Date: date}
			if err := tx.Create(meal).Error; err != nil {
				return fmt.Errorf("failed to create meal for %s: %w", date, err)
			}
			for n := faker.Number(1, 3); n > 0; n-- {
				food := foods[faker.Number(0, len(foods)-1)]
				item := &models.MealFoodItem{
					MealID:      meal.ID,
					FoodItemID:  food.ID,
					ServingSize: ptr(float64(faker.Number(1, 4)) / 2),
				}
				if err := tx.Create(item).Error; err != nil {
					return fmt.Errorf("failed to add food to meal: %w", err)
				}
			}
		}
	}
	return nil
}

func ptr[T any](v T) *T {
	return &v
}

func round1(v float64) float64 {
	return float64(int64(v*10+0.5)) / 10
}
