package repositories

import (
	"context"
	"errors"
	"fmt"

	"fittrack/internal/models"

	"gorm.io/gorm"
)

// GORMExerciseRepository is a GORM implementation of ExerciseRepository.
type GORMExerciseRepository struct {
	db *gorm.DB
}

// NewGORMExerciseRepository creates a new GORMExerciseRepository.
func NewGORMExerciseRepository(db *gorm.DB) *GORMExerciseRepository {
	return &GORMExerciseRepository{db: db}
}

func (r *GORMExerciseRepository) ListVisible(ctx context.Context, userID uint) ([]models.Exercise, error) {
	var exercises []models.Exercise
	if err := r.db.WithContext(ctx).
		Where("user_id IS NULL OR user_id = ?", userID).
		Order("name").
		Find(&exercises).Error; err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	return exercises, nil
}

func (r *GORMExerciseRepository) GetVisible(ctx context.Context, id, userID uint) (*models.Exercise, error) {
	var exercise models.Exercise
	err := r.db.WithContext(ctx).
		Where("id = ? AND (user_id IS NULL OR user_id = ?)", id, userID).
		First(&exercise).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("exercise %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get exercise %d: %w", id, err)
	}
	return &exercise, nil
}

func (r *GORMExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) error {
	if err := r.db.WithContext(ctx).Create(exercise).Error; err != nil {
		return fmt.Errorf("failed to create exercise: %w", err)
	}
	return nil
}

// GORMProgramRepository is a GORM implementation of ProgramRepository.
type GORMProgramRepository struct {
	db *gorm.DB
}

// NewGORMProgramRepository creates a new GORMProgramRepository.
func NewGORMProgramRepository(db *gorm.DB) *GORMProgramRepository {
	return &GORMProgramRepository{db: db}
}

func (r *GORMProgramRepository) ListPrograms(ctx context.Context, userID uint) ([]models.WorkoutProgram, error) {
	var programs []models.WorkoutProgram
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&programs).Error; err != nil {
		return nil, fmt.Errorf("failed to list programs for user %d: %w", userID, err)
	}
	return programs, nil
}

func (r *GORMProgramRepository) CreateProgram(ctx context.Context, program *models.WorkoutProgram) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if program.Active {
			if err := tx.Model(&models.WorkoutProgram{}).
				Where("user_id = ? AND active = ?", program.UserID, true).
				Update("active", false).Error; err != nil {
				return err
			}
		}
		return tx.Create(program).Error
	})
	if err != nil {
		return fmt.Errorf("failed to create program: %w", err)
	}
	return nil
}

func (r *GORMProgramRepository) ListDays(ctx context.Context, programID uint) ([]models.WorkoutDay, error) {
	var days []models.WorkoutDay
	if err := r.db.WithContext(ctx).
		Where("program_id = ?", programID).
		Order("sort_order, id").
		Find(&days).Error; err != nil {
		return nil, fmt.Errorf("failed to list days for program %d: %w", programID, err)
	}
	return days, nil
}

func (r *GORMProgramRepository) CreateDay(ctx context.Context, day *models.WorkoutDay) error {
	if err := r.db.WithContext(ctx).Create(day).Error; err != nil {
		return fmt.Errorf("failed to create workout day: %w", err)
	}
	return nil
}

func (r *GORMProgramRepository) ListDayExercises(ctx context.Context, dayID uint) ([]models.DayExerciseDetail, error) {
	var details []models.DayExerciseDetail
	err := r.db.WithContext(ctx).
		Table("workout_day_exercises").
		Select("workout_day_exercises.*, exercises.name AS exercise_name, exercises.muscle_group, exercises.image_url").
		Joins("LEFT JOIN exercises ON exercises.id = workout_day_exercises.exercise_id").
		Where("workout_day_exercises.day_id = ?", dayID).
		Order("workout_day_exercises.sort_order, workout_day_exercises.id").
		Scan(&details).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises for day %d: %w", dayID, err)
	}
	return details, nil
}

func (r *GORMProgramRepository) CreateDayExercise(ctx context.Context, dayExercise *models.WorkoutDayExercise) error {
	if err := r.db.WithContext(ctx).Create(dayExercise).Error; err != nil {
		return fmt.Errorf("failed to add exercise to day: %w", err)
	}
	return nil
}

// GORMSessionRepository is a GORM implementation of SessionRepository.
type GORMSessionRepository struct {
	db *gorm.DB
}

// NewGORMSessionRepository creates a new GORMSessionRepository.
func NewGORMSessionRepository(db *gorm.DB) *GORMSessionRepository {
	return &GORMSessionRepository{db: db}
}

func (r *GORMSessionRepository) CreateSession(ctx context.Context, session *models.WorkoutSession) error {
	if err := r.db.WithContext(ctx).Create(session).Error; err != nil {
		return fmt.Errorf("failed to create workout session: %w", err)
	}
	return nil
}

func (r *GORMSessionRepository) GetSession(ctx context.Context, id uint) (*models.WorkoutSession, error) {
	var session models.WorkoutSession
	if err := r.db.WithContext(ctx).First(&session, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("workout session %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get workout session %d: %w", id, err)
	}
	return &session, nil
}

func (r *GORMSessionRepository) UpdateSession(ctx context.Context, id uint, fields map[string]interface{}) (*models.WorkoutSession, error) {
	if len(fields) > 0 {
		if err := r.db.WithContext(ctx).Model(&models.WorkoutSession{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, fmt.Errorf("failed to update workout session %d: %w", id, err)
		}
	}
	return r.GetSession(ctx, id)
}

func (r *GORMSessionRepository) RecentSessions(ctx context.Context, userID uint, limit int) ([]models.SessionSummary, error) {
	var sessions []models.SessionSummary
	err := r.db.WithContext(ctx).
		Table("workout_sessions").
		Select("workout_sessions.*, workout_programs.name AS program_name, workout_days.name AS day_name").
		Joins("LEFT JOIN workout_programs ON workout_programs.id = workout_sessions.program_id").
		Joins("LEFT JOIN workout_days ON workout_days.id = workout_sessions.day_id").
		Where("workout_sessions.user_id = ?", userID).
		Order("workout_sessions.date DESC, workout_sessions.id DESC").
		Limit(limit).
		Scan(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list recent sessions for user %d: %w", userID, err)
	}
	return sessions, nil
}

func (r *GORMSessionRepository) CreateSetLog(ctx context.Context, log *models.WorkoutSetLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to log set: %w", err)
	}
	return nil
}
