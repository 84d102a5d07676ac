package repositories

import (
	"context"

	"fittrack/internal/models"
)

// ExerciseRepository reads the exercise catalog. Visibility means global
// exercises plus the caller's own custom ones.
type ExerciseRepository interface {
	ListVisible(ctx context.Context, userID uint) ([]models.Exercise, error)
	GetVisible(ctx context.Context, id, userID uint) (*models.Exercise, error)
	Create(ctx context.Context, exercise *models.Exercise) error
}

// ProgramRepository stores workout programs, their days and the exercises
// prescribed on each day.
type ProgramRepository interface {
	ListPrograms(ctx context.Context, userID uint) ([]models.WorkoutProgram, error)
	// CreateProgram inserts the program. An active program deactivates the
	// user's other programs in the same transaction.
	CreateProgram(ctx context.Context, program *models.WorkoutProgram) error
	ListDays(ctx context.Context, programID uint) ([]models.WorkoutDay, error)
	CreateDay(ctx context.Context, day *models.WorkoutDay) error
	ListDayExercises(ctx context.Context, dayID uint) ([]models.DayExerciseDetail, error)
	CreateDayExercise(ctx context.Context, dayExercise *models.WorkoutDayExercise) error
}

// SessionRepository stores performed workouts and their sets.
type SessionRepository interface {
	CreateSession(ctx context.Context, session *models.WorkoutSession) error
	GetSession(ctx context.Context, id uint) (*models.WorkoutSession, error)
	UpdateSession(ctx context.Context, id uint, fields map[string]interface{}) (*models.WorkoutSession, error)
	RecentSessions(ctx context.Context, userID uint, limit int) ([]models.SessionSummary, error)
	CreateSetLog(ctx context.Context, log *models.WorkoutSetLog) error
}
