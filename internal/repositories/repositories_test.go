package repositories_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"fittrack/internal/database"
	"fittrack/internal/models"
	"fittrack/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a private in-memory SQLite database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}

func f(v float64) *float64 { return &v }

func createUser(t *testing.T, repo *repositories.GORMUserRepository, name string) *models.User {
	t.Helper()
	u := &models.User{Username: name, Email: name + "@example.com", Password: "hash", Units: "metric", Notifications: true}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := repositories.NewGORMUserRepository(newTestDB(t))
	alice := createUser(t, repo, "alice")

	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	updated, err := repo.Update(ctx, alice.ID, map[string]interface{}{"full_name": "Alice A", "age": 30, "weight": 65.0})
	require.NoError(t, err)
	require.NotNil(t, updated.FullName)
	assert.Equal(t, "Alice A", *updated.FullName)
	assert.True(t, updated.ProfileComplete())

	_, err = repo.Update(ctx, 9999, map[string]interface{}{"age": 40})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	dup := &models.User{Username: "alice", Email: "other@example.com", Password: "hash", Units: "metric"}
	assert.Error(t, repo.Create(ctx, dup))
}

func TestGoalRepository_ActivateKeepsSingleActiveGoal(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := repositories.NewGORMUserRepository(db)
	goals := repositories.NewGORMGoalRepository(db)
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	_, err := goals.GetActive(ctx, alice.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	require.NoError(t, goals.Activate(ctx, &models.NutritionGoal{UserID: bob.ID, DailyCalories: 3000}))
	for _, kcal := range []int{1800, 2000, 2400} {
		require.NoError(t, goals.Activate(ctx, &models.NutritionGoal{UserID: alice.ID, DailyCalories: kcal}))
	}

	var active int64
	require.NoError(t, db.Model(&models.NutritionGoal{}).Where("user_id = ? AND active = ?", alice.ID, true).Count(&active).Error)
	assert.Equal(t, int64(1), active)

	current, err := goals.GetActive(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2400, current.DailyCalories)

	other, err := goals.GetActive(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, 3000, other.DailyCalories, "rotation must not touch other users")
}

func TestProgramRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	alice := createUser(t, repositories.NewGORMUserRepository(db), "alice")
	programs := repositories.NewGORMProgramRepository(db)
	exercises := repositories.NewGORMExerciseRepository(db)

	first := &models.WorkoutProgram{UserID: alice.ID, Name: "Strength", Active: true}
	require.NoError(t, programs.CreateProgram(ctx, first))
	second := &models.WorkoutProgram{UserID: alice.ID, Name: "Hypertrophy", Active: true}
	require.NoError(t, programs.CreateProgram(ctx, second))

	list, err := programs.ListPrograms(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.False(t, list[0].Active)
	assert.True(t, list[1].Active)

	require.NoError(t, programs.CreateDay(ctx, &models.WorkoutDay{ProgramID: second.ID, Name: "Pull", Order: 2}))
	push := &models.WorkoutDay{ProgramID: second.ID, Name: "Push", Order: 1}
	require.NoError(t, programs.CreateDay(ctx, push))

	days, err := programs.ListDays(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "Push", days[0].Name)

	bench := &models.Exercise{Name: "Bench Press", MuscleGroup: strPtr("chest")}
	require.NoError(t, exercises.Create(ctx, bench))
	require.NoError(t, programs.CreateDayExercise(ctx, &models.WorkoutDayExercise{DayID: push.ID, ExerciseID: bench.ID, Sets: intPtr(3), Order: 1}))

	details, err := programs.ListDayExercises(ctx, push.ID)
	require.NoError(t, err)
	require.Len(t, details, 1)
	require.NotNil(t, details[0].ExerciseName)
	assert.Equal(t, "Bench Press", *details[0].ExerciseName)
	assert.Equal(t, "chest", *details[0].MuscleGroup)
	assert.Equal(t, 1, details[0].Order)
}

func TestExerciseRepository_Visibility(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := repositories.NewGORMUserRepository(db)
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")
	repo := repositories.NewGORMExerciseRepository(db)

	require.NoError(t, repo.Create(ctx, &models.Exercise{Name: "Squat"}))
	secret := &models.Exercise{Name: "Bob's Curl", IsCustom: true, UserID: &bob.ID}
	require.NoError(t, repo.Create(ctx, secret))

	visible, err := repo.ListVisible(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "Squat", visible[0].Name)

	_, err = repo.GetVisible(ctx, secret.ID, alice.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	got, err := repo.GetVisible(ctx, secret.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bob's Curl", got.Name)
}

func TestSessionRepository_RecentSessions(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	alice := createUser(t, repositories.NewGORMUserRepository(db), "alice")
	programs := repositories.NewGORMProgramRepository(db)
	sessions := repositories.NewGORMSessionRepository(db)

	program := &models.WorkoutProgram{UserID: alice.ID, Name: "Strength"}
	require.NoError(t, programs.CreateProgram(ctx, program))
	day := &models.WorkoutDay{ProgramID: program.ID, Name: "Legs", Order: 1}
	require.NoError(t, programs.CreateDay(ctx, day))

	for i := 1; i <= 12; i++ {
		s := &models.WorkoutSession{UserID: alice.ID, Date: fmt.Sprintf("2024-01-%02d", i)}
		if i == 12 {
			s.ProgramID, s.DayID = &program.ID, &day.ID
		}
		require.NoError(t, sessions.CreateSession(ctx, s))
	}

	recent, err := sessions.RecentSessions(ctx, alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, recent, 10)
	assert.Equal(t, "2024-01-12", recent[0].Date)
	require.NotNil(t, recent[0].ProgramName)
	assert.Equal(t, "Strength", *recent[0].ProgramName)
	assert.Equal(t, "Legs", *recent[0].DayName)
	assert.Nil(t, recent[1].ProgramName)

	updated, err := sessions.UpdateSession(ctx, recent[0].ID, map[string]interface{}{"complete": true, "duration": 45})
	require.NoError(t, err)
	assert.True(t, updated.Complete)
	assert.Equal(t, 45, *updated.Duration)
}

func TestMealRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	alice := createUser(t, repositories.NewGORMUserRepository(db), "alice")
	foods := repositories.NewGORMFoodRepository(db)
	meals := repositories.NewGORMMealRepository(db)

	oats := &models.FoodItem{Name: "Oats", Calories: f(150), Protein: f(5), Carbs: f(27), Fat: f(3)}
	require.NoError(t, foods.Create(ctx, oats))

	breakfast := &models.Meal{UserID: alice.ID, Name: "Breakfast", Type: models.MealBreakfast, Date: "2024-03-01"}
	require.NoError(t, meals.Create(ctx, breakfast))
	dinner := &models.Meal{UserID: alice.ID, Name: "Dinner", Type: models.MealDinner, Date: "2024-03-01"}
	require.NoError(t, meals.Create(ctx, dinner))
	require.NoError(t, meals.Create(ctx, &models.Meal{UserID: alice.ID, Name: "Next day", Type: models.MealLunch, Date: "2024-03-02"}))

	view, err := meals.AddItem(ctx, &models.MealFoodItem{MealID: breakfast.ID, FoodItemID: oats.ID, ServingSize: f(2)})
	require.NoError(t, err)
	assert.Equal(t, "Oats", *view.Name)
	assert.Equal(t, 150.0, *view.Calories)
	assert.Equal(t, 2.0, *view.ServingSize)

	byDate, err := meals.ListByDate(ctx, alice.ID, "2024-03-01")
	require.NoError(t, err)
	require.Len(t, byDate, 2)
	assert.Len(t, byDate[0].Items, 1)
	assert.NotNil(t, byDate[1].Items)
	assert.Empty(t, byDate[1].Items)

	byType, err := meals.ListByDateAndType(ctx, alice.ID, "2024-03-01", models.MealDinner)
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, dinner.ID, byType[0].ID)

	items, err := meals.ItemsForDay(ctx, alice.ID, "2024-03-01")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	none, err := meals.ItemsForDay(ctx, alice.ID, "2024-03-02")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestFoodRepository_SearchAndBarcode(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := repositories.NewGORMUserRepository(db)
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")
	foods := repositories.NewGORMFoodRepository(db)

	code := "0123456789"
	require.NoError(t, foods.Create(ctx, &models.FoodItem{Name: "Greek Yogurt", Barcode: &code}))
	require.NoError(t, foods.Create(ctx, &models.FoodItem{Name: "Yogurt Bar", IsCustom: true, UserID: &bob.ID}))
	mine := &models.FoodItem{Name: "My yogurt", IsCustom: true, UserID: &alice.ID, Barcode: &code}
	require.NoError(t, foods.Create(ctx, mine))

	found, err := foods.Search(ctx, alice.ID, "YOGURT", 20)
	require.NoError(t, err)
	require.Len(t, found, 2)

	all, err := foods.ListVisible(ctx, alice.ID, 50)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byCode, err := foods.GetByBarcode(ctx, code, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, mine.ID, byCode.ID)

	byCode, err = foods.GetByBarcode(ctx, code, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, "Greek Yogurt", byCode.Name)

	_, err = foods.GetByBarcode(ctx, "missing", alice.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestProgressRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	alice := createUser(t, repositories.NewGORMUserRepository(db), "alice")
	repo := repositories.NewGORMProgressRepository(db)

	for _, d := range []string{"2024-01-05", "2024-01-01", "2024-01-10", "2024-01-20"} {
		require.NoError(t, repo.CreateMeasurement(ctx, &models.BodyMeasurement{UserID: alice.ID, Date: d, Weight: f(70)}))
	}

	recent, err := repo.RecentMeasurements(ctx, alice.ID, 10)
	require.NoError(t, err)
	require.Len(t, recent, 4)
	assert.Equal(t, "2024-01-20", recent[0].Date)

	ranged, err := repo.MeasurementsInRange(ctx, alice.ID, "2024-01-05", "2024-01-10")
	require.NoError(t, err)
	require.Len(t, ranged, 2)
	assert.Equal(t, "2024-01-05", ranged[0].Date)
	assert.Equal(t, "2024-01-10", ranged[1].Date)

	require.NoError(t, repo.CreatePhoto(ctx, &models.ProgressPhoto{UserID: alice.ID, Date: "2024-01-01", PhotoURL: "https://cdn/a.jpg"}))
	require.NoError(t, repo.CreatePhoto(ctx, &models.ProgressPhoto{UserID: alice.ID, Date: "2024-02-01", PhotoURL: "https://cdn/b.jpg"}))
	photos, err := repo.ListPhotos(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.Equal(t, "https://cdn/b.jpg", photos[0].PhotoURL)
}

func TestOwnershipRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := repositories.NewGORMUserRepository(db)
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")
	programs := repositories.NewGORMProgramRepository(db)
	meals := repositories.NewGORMMealRepository(db)
	sessions := repositories.NewGORMSessionRepository(db)
	owner := repositories.NewGORMOwnershipRepository(db)

	program := &models.WorkoutProgram{UserID: alice.ID, Name: "Mine"}
	require.NoError(t, programs.CreateProgram(ctx, program))
	day := &models.WorkoutDay{ProgramID: program.ID, Name: "Day 1", Order: 1}
	require.NoError(t, programs.CreateDay(ctx, day))
	meal := &models.Meal{UserID: alice.ID, Name: "Lunch", Type: models.MealLunch, Date: "2024-01-01"}
	require.NoError(t, meals.Create(ctx, meal))
	session := &models.WorkoutSession{UserID: alice.ID, Date: "2024-01-01"}
	require.NoError(t, sessions.CreateSession(ctx, session))

	cases := []struct {
		kind repositories.ResourceKind
		id   uint
	}{
		{repositories.KindProgram, program.ID},
		{repositories.KindDay, day.ID},
		{repositories.KindMeal, meal.ID},
		{repositories.KindSession, session.ID},
	}
	for _, tc := range cases {
		t.Run(string(tc.kind), func(t *testing.T) {
			ok, err := owner.Owns(ctx, tc.kind, tc.id, alice.ID)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = owner.Owns(ctx, tc.kind, tc.id, bob.ID)
			require.NoError(t, err)
			assert.False(t, ok)

			ok, err = owner.Owns(ctx, tc.kind, tc.id+1000, alice.ID)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}

	_, err := owner.Owns(ctx, repositories.ResourceKind("photo"), 1, alice.ID)
	assert.Error(t, err)
}

func TestUserRepository_DatabaseFailure(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))

	_, err = repositories.NewGORMUserRepository(db).GetByID(context.Background(), 1)
	require.Error(t, err)
	assert.NotErrorIs(t, err, repositories.ErrNotFound)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
