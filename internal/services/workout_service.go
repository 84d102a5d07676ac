package services

import (
	"context"
	"errors"

	"fittrack/internal/models"
	"fittrack/internal/repositories"
)

const recentSessionsLimit = 10

// ExerciseInput is the request body for a custom exercise.
type ExerciseInput struct {
	Name         string  `json:"name" validate:"required,max=100"`
	Description  *string `json:"description"`
	MuscleGroup  *string `json:"muscleGroup" validate:"omitempty,max=50"`
	Instructions *string `json:"instructions"`
	ImageURL     *string `json:"imageUrl" validate:"omitempty,url"`
	VideoURL     *string `json:"videoUrl" validate:"omitempty,url"`
}

// ProgramInput is the request body for a workout program.
type ProgramInput struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description"`
	Frequency   *int    `json:"frequency" validate:"omitempty,min=1,max=7"`
	Level       *string `json:"level" validate:"omitempty,max=50"`
	Active      bool    `json:"active"`
}

// DayInput is the request body for a workout day.
type DayInput struct {
	Name               string  `json:"name" validate:"required,max=100"`
	DayOfWeek          *int    `json:"dayOfWeek" validate:"omitempty,min=0,max=6"`
	TargetMuscleGroups *string `json:"targetMuscleGroups"`
	Order              int     `json:"order" validate:"min=0"`
}

// DayExerciseInput prescribes an exercise on a day.
type DayExerciseInput struct {
	ExerciseID uint    `json:"exerciseId" validate:"required"`
	Sets       *int    `json:"sets" validate:"omitempty,min=1,max=100"`
	Reps       *string `json:"reps" validate:"omitempty,max=50"`
	Weight     *string `json:"weight" validate:"omitempty,max=50"`
	RestTime   *int    `json:"restTime" validate:"omitempty,min=0"`
	Order      int     `json:"order" validate:"min=0"`
}

// SessionInput is the request body for a new workout session.
type SessionInput struct {
	ProgramID *uint   `json:"programId"`
	DayID     *uint   `json:"dayId"`
	Date      string  `json:"date" validate:"required,isodate"`
	Duration  *int    `json:"duration" validate:"omitempty,min=0"`
	Complete  bool    `json:"complete"`
	Notes     *string `json:"notes"`
}

// SessionUpdateInput changes a session after it was started.
type SessionUpdateInput struct {
	Duration *int    `json:"duration" validate:"omitempty,min=0"`
	Complete *bool   `json:"complete"`
	Notes    *string `json:"notes"`
}

// SetLogInput records one performed set.
type SetLogInput struct {
	ExerciseID uint    `json:"exerciseId" validate:"required"`
	SetNumber  int     `json:"setNumber" validate:"required,min=1"`
	Reps       int     `json:"reps" validate:"min=0"`
	Weight     float64 `json:"weight" validate:"min=0"`
	Complete   bool    `json:"complete"`
}

// WorkoutService covers exercises, programs, days and workout sessions.
// Routes scoped to a program, day or session are ownership checked before
// they reach it.
type WorkoutService struct {
	exercises repositories.ExerciseRepository
	programs  repositories.ProgramRepository
	sessions  repositories.SessionRepository
	ownership repositories.OwnershipRepository
	events    EventPublisher
}

// NewWorkoutService creates a new WorkoutService. events may be nil.
func NewWorkoutService(
	exercises repositories.ExerciseRepository,
	programs repositories.ProgramRepository,
	sessions repositories.SessionRepository,
	ownership repositories.OwnershipRepository,
	events EventPublisher,
) *WorkoutService {
	return &WorkoutService{
		exercises: exercises,
		programs:  programs,
		sessions:  sessions,
		ownership: ownership,
		events:    events,
	}
}

func (s *WorkoutService) ListExercises(ctx context.Context, userID uint) ([]models.Exercise, error) {
	exercises, err := s.exercises.ListVisible(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return exercises, nil
}

// GetExercise returns a global exercise or one of the user's own.
func (s *WorkoutService) GetExercise(ctx context.Context, userID, id uint) (*models.Exercise, error) {
	exercise, err := s.exercises.GetVisible(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.NewNotFoundError("Exercise not found")
		}
		return nil, models.NewInternalError(err)
	}
	return exercise, nil
}

// CreateExercise stores a custom exercise visible only to its owner.
func (s *WorkoutService) CreateExercise(ctx context.Context, userID uint, input ExerciseInput) (*models.Exercise, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	exercise := &models.Exercise{
		Name:         input.Name,
		Description:  input.Description,
		MuscleGroup:  input.MuscleGroup,
		Instructions: input.Instructions,
		ImageURL:     input.ImageURL,
		VideoURL:     input.VideoURL,
		IsCustom:     true,
		UserID:       &userID,
	}
	if err := s.exercises.Create(ctx, exercise); err != nil {
		return nil, models.NewInternalError(err)
	}
	return exercise, nil
}

func (s *WorkoutService) ListPrograms(ctx context.Context, userID uint) ([]models.WorkoutProgram, error) {
	programs, err := s.programs.ListPrograms(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return programs, nil
}

// CreateProgram stores a program. An active program replaces the user's
// previously active one.
func (s *WorkoutService) CreateProgram(ctx context.Context, userID uint, input ProgramInput) (*models.WorkoutProgram, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	program := &models.WorkoutProgram{
		UserID:      userID,
		Name:        input.Name,
		Description: input.Description,
		Frequency:   input.Frequency,
		Level:       input.Level,
		Active:      input.Active,
	}
	if err := s.programs.CreateProgram(ctx, program); err != nil {
		return nil, models.NewInternalError(err)
	}
	return program, nil
}

func (s *WorkoutService) ListDays(ctx context.Context, programID uint) ([]models.WorkoutDay, error) {
	days, err := s.programs.ListDays(ctx, programID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return days, nil
}

func (s *WorkoutService) CreateDay(ctx context.Context, programID uint, input DayInput) (*models.WorkoutDay, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	day := &models.WorkoutDay{
		ProgramID:          programID,
		Name:               input.Name,
		DayOfWeek:          input.DayOfWeek,
		TargetMuscleGroups: input.TargetMuscleGroups,
		Order:              input.Order,
	}
	if err := s.programs.CreateDay(ctx, day); err != nil {
		return nil, models.NewInternalError(err)
	}
	return day, nil
}

func (s *WorkoutService) ListDayExercises(ctx context.Context, dayID uint) ([]models.DayExerciseDetail, error) {
	exercises, err := s.programs.ListDayExercises(ctx, dayID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return exercises, nil
}

// AddDayExercise prescribes a visible exercise on the day.
func (s *WorkoutService) AddDayExercise(ctx context.Context, userID, dayID uint, input DayExerciseInput) (*models.WorkoutDayExercise, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.GetExercise(ctx, userID, input.ExerciseID); err != nil {
		return nil, err
	}
	dayExercise := &models.WorkoutDayExercise{
		DayID:      dayID,
		ExerciseID: input.ExerciseID,
		Sets:       input.Sets,
		Reps:       input.Reps,
		Weight:     input.Weight,
		RestTime:   input.RestTime,
		Order:      input.Order,
	}
	if err := s.programs.CreateDayExercise(ctx, dayExercise); err != nil {
		return nil, models.NewInternalError(err)
	}
	return dayExercise, nil
}

// CreateSession starts a workout. Referenced programs and days must belong
// to the user.
func (s *WorkoutService) CreateSession(ctx context.Context, userID uint, input SessionInput) (*models.WorkoutSession, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if input.ProgramID != nil {
		if err := s.requireOwned(ctx, repositories.KindProgram, *input.ProgramID, userID, "Workout program not found"); err != nil {
			return nil, err
		}
	}
	if input.DayID != nil {
		if err := s.requireOwned(ctx, repositories.KindDay, *input.DayID, userID, "Workout day not found"); err != nil {
			return nil, err
		}
	}

	session := &models.WorkoutSession{
		UserID:    userID,
		ProgramID: input.ProgramID,
		DayID:     input.DayID,
		Date:      input.Date,
		Duration:  input.Duration,
		Complete:  input.Complete,
		Notes:     input.Notes,
	}
	if err := s.sessions.CreateSession(ctx, session); err != nil {
		return nil, models.NewInternalError(err)
	}
	if session.Complete {
		s.publishCompleted(ctx, session)
	}
	return session, nil
}

func (s *WorkoutService) requireOwned(ctx context.Context, kind repositories.ResourceKind, id, userID uint, message string) error {
	owned, err := s.ownership.Owns(ctx, kind, id, userID)
	if err != nil {
		return models.NewInternalError(err)
	}
	if !owned {
		return models.NewNotFoundError(message)
	}
	return nil
}

// RecentSessions returns the user's latest sessions, newest first.
func (s *WorkoutService) RecentSessions(ctx context.Context, userID uint) ([]models.SessionSummary, error) {
	sessions, err := s.sessions.RecentSessions(ctx, userID, recentSessionsLimit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return sessions, nil
}

// UpdateSession changes duration, notes or completion of a session.
func (s *WorkoutService) UpdateSession(ctx context.Context, sessionID uint, input SessionUpdateInput) (*models.WorkoutSession, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	current, err := s.sessions.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.NewNotFoundError("Workout session not found")
		}
		return nil, models.NewInternalError(err)
	}

	fields := make(map[string]interface{})
	if input.Duration != nil {
		fields["duration"] = *input.Duration
	}
	if input.Complete != nil {
		fields["complete"] = *input.Complete
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}
	if len(fields) == 0 {
		return current, nil
	}

	updated, err := s.sessions.UpdateSession(ctx, sessionID, fields)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !current.Complete && updated.Complete {
		s.publishCompleted(ctx, updated)
	}
	return updated, nil
}

func (s *WorkoutService) publishCompleted(ctx context.Context, session *models.WorkoutSession) {
	publish(ctx, s.events, EventWorkoutSessionCompleted, map[string]interface{}{
		"userId":    session.UserID,
		"sessionId": session.ID,
		"date":      session.Date,
		"duration":  session.Duration,
	})
}

// LogSet records a set inside a session.
func (s *WorkoutService) LogSet(ctx context.Context, userID, sessionID uint, input SetLogInput) (*models.WorkoutSetLog, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.GetExercise(ctx, userID, input.ExerciseID); err != nil {
		return nil, err
	}
	setLog := &models.WorkoutSetLog{
		SessionID:  sessionID,
		ExerciseID: input.ExerciseID,
		SetNumber:  input.SetNumber,
		Reps:       input.Reps,
		Weight:     input.Weight,
		Complete:   input.Complete,
	}
	if err := s.sessions.CreateSetLog(ctx, setLog); err != nil {
		return nil, models.NewInternalError(err)
	}
	return setLog, nil
}
