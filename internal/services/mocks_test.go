package services_test

import (
	"context"

	"fittrack/internal/models"
	"fittrack/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(user)
	if args.Error(0) == nil {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.User, error) {
	args := m.Called(id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockMealRepository is a mock implementation of repositories.MealRepository
type MockMealRepository struct {
	mock.Mock
}

func (m *MockMealRepository) ListByDate(ctx context.Context, userID uint, date string) ([]models.MealWithItems, error) {
	args := m.Called(userID, date)
	meals, _ := args.Get(0).([]models.MealWithItems)
	return meals, args.Error(1)
}

func (m *MockMealRepository) ListByDateAndType(ctx context.Context, userID uint, date, mealType string) ([]models.MealWithItems, error) {
	args := m.Called(userID, date, mealType)
	meals, _ := args.Get(0).([]models.MealWithItems)
	return meals, args.Error(1)
}

func (m *MockMealRepository) Create(ctx context.Context, meal *models.Meal) error {
	args := m.Called(meal)
	return args.Error(0)
}

func (m *MockMealRepository) AddItem(ctx context.Context, item *models.MealFoodItem) (*models.MealItemView, error) {
	args := m.Called(item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MealItemView), args.Error(1)
}

func (m *MockMealRepository) ItemsForDay(ctx context.Context, userID uint, date string) ([]models.MealItemView, error) {
	args := m.Called(userID, date)
	items, _ := args.Get(0).([]models.MealItemView)
	return items, args.Error(1)
}

// MockFoodRepository is a mock implementation of repositories.FoodRepository
type MockFoodRepository struct {
	mock.Mock
}

func (m *MockFoodRepository) Search(ctx context.Context, userID uint, query string, limit int) ([]models.FoodItem, error) {
	args := m.Called(userID, query, limit)
	foods, _ := args.Get(0).([]models.FoodItem)
	return foods, args.Error(1)
}

func (m *MockFoodRepository) ListVisible(ctx context.Context, userID uint, limit int) ([]models.FoodItem, error) {
	args := m.Called(userID, limit)
	foods, _ := args.Get(0).([]models.FoodItem)
	return foods, args.Error(1)
}

func (m *MockFoodRepository) GetVisible(ctx context.Context, id, userID uint) (*models.FoodItem, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodItem), args.Error(1)
}

func (m *MockFoodRepository) GetByBarcode(ctx context.Context, barcode string, userID uint) (*models.FoodItem, error) {
	args := m.Called(barcode, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FoodItem), args.Error(1)
}

func (m *MockFoodRepository) Create(ctx context.Context, food *models.FoodItem) error {
	args := m.Called(food)
	return args.Error(0)
}

// MockGoalRepository is a mock implementation of repositories.GoalRepository
type MockGoalRepository struct {
	mock.Mock
}

func (m *MockGoalRepository) GetActive(ctx context.Context, userID uint) (*models.NutritionGoal, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.NutritionGoal), args.Error(1)
}

func (m *MockGoalRepository) Activate(ctx context.Context, goal *models.NutritionGoal) error {
	args := m.Called(goal)
	if args.Error(0) == nil {
		goal.ID = 9
		goal.Active = true
	}
	return args.Error(0)
}

// MockExerciseRepository is a mock implementation of repositories.ExerciseRepository
type MockExerciseRepository struct {
	mock.Mock
}

func (m *MockExerciseRepository) ListVisible(ctx context.Context, userID uint) ([]models.Exercise, error) {
	args := m.Called(userID)
	exercises, _ := args.Get(0).([]models.Exercise)
	return exercises, args.Error(1)
}

func (m *MockExerciseRepository) GetVisible(ctx context.Context, id, userID uint) (*models.Exercise, error) {
	args := m.Called(id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	args := m.Called(exercise)
	return args.Error(0)
}

// MockProgramRepository is a mock implementation of repositories.ProgramRepository
type MockProgramRepository struct {
	mock.Mock
}

func (m *MockProgramRepository) ListPrograms(ctx context.Context, userID uint) ([]models.WorkoutProgram, error) {
	args := m.Called(userID)
	programs, _ := args.Get(0).([]models.WorkoutProgram)
	return programs, args.Error(1)
}

func (m *MockProgramRepository) CreateProgram(ctx context.Context, program *models.WorkoutProgram) error {
	return m.Called(program).Error(0)
}

func (m *MockProgramRepository) ListDays(ctx context.Context, programID uint) ([]models.WorkoutDay, error) {
	args := m.Called(programID)
	days, _ := args.Get(0).([]models.WorkoutDay)
	return days, args.Error(1)
}

func (m *MockProgramRepository) CreateDay(ctx context.Context, day *models.WorkoutDay) error {
	return m.Called(day).Error(0)
}

func (m *MockProgramRepository) ListDayExercises(ctx context.Context, dayID uint) ([]models.DayExerciseDetail, error) {
	args := m.Called(dayID)
	exercises, _ := args.Get(0).([]models.DayExerciseDetail)
	return exercises, args.Error(1)
}

func (m *MockProgramRepository) CreateDayExercise(ctx context.Context, dayExercise *models.WorkoutDayExercise) error {
	return m.Called(dayExercise).Error(0)
}

// MockSessionRepository is a mock implementation of repositories.SessionRepository
type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) CreateSession(ctx context.Context, session *models.WorkoutSession) error {
	args := m.Called(session)
	if args.Error(0) == nil {
		session.ID = 5
	}
	return args.Error(0)
}

func (m *MockSessionRepository) GetSession(ctx context.Context, id uint) (*models.WorkoutSession, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkoutSession), args.Error(1)
}

func (m *MockSessionRepository) UpdateSession(ctx context.Context, id uint, fields map[string]interface{}) (*models.WorkoutSession, error) {
	args := m.Called(id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WorkoutSession), args.Error(1)
}

func (m *MockSessionRepository) RecentSessions(ctx context.Context, userID uint, limit int) ([]models.SessionSummary, error) {
	args := m.Called(userID, limit)
	sessions, _ := args.Get(0).([]models.SessionSummary)
	return sessions, args.Error(1)
}

func (m *MockSessionRepository) CreateSetLog(ctx context.Context, log *models.WorkoutSetLog) error {
	return m.Called(log).Error(0)
}

// MockOwnershipRepository is a mock implementation of repositories.OwnershipRepository
type MockOwnershipRepository struct {
	mock.Mock
}

func (m *MockOwnershipRepository) Owns(ctx context.Context, kind repositories.ResourceKind, id, userID uint) (bool, error) {
	args := m.Called(kind, id, userID)
	return args.Bool(0), args.Error(1)
}

// MockProgressRepository is a mock implementation of repositories.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) RecentMeasurements(ctx context.Context, userID uint, limit int) ([]models.BodyMeasurement, error) {
	args := m.Called(userID, limit)
	measurements, _ := args.Get(0).([]models.BodyMeasurement)
	return measurements, args.Error(1)
}

func (m *MockProgressRepository) MeasurementsInRange(ctx context.Context, userID uint, start, end string) ([]models.BodyMeasurement, error) {
	args := m.Called(userID, start, end)
	measurements, _ := args.Get(0).([]models.BodyMeasurement)
	return measurements, args.Error(1)
}

func (m *MockProgressRepository) CreateMeasurement(ctx context.Context, measurement *models.BodyMeasurement) error {
	return m.Called(measurement).Error(0)
}

func (m *MockProgressRepository) ListPhotos(ctx context.Context, userID uint) ([]models.ProgressPhoto, error) {
	args := m.Called(userID)
	photos, _ := args.Get(0).([]models.ProgressPhoto)
	return photos, args.Error(1)
}

func (m *MockProgressRepository) CreatePhoto(ctx context.Context, photo *models.ProgressPhoto) error {
	return m.Called(photo).Error(0)
}

// MockPublisher records published events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	return m.Called(eventType, payload).Error(0)
}

// MockUploader is a mock implementation of services.PhotoUploader
type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, dataURI, prefix string) (string, error) {
	args := m.Called(dataURI, prefix)
	return args.String(0), args.Error(1)
}

func ptr[T any](v T) *T {
	return &v
}
