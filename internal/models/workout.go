package models

import "time"

// WorkoutProgram is a user's training plan. At most one program per user is active.
type WorkoutProgram struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"userId" gorm:"index;not null"`
	Name        string    `json:"name" gorm:"type:varchar(100);not null"`
	Description *string   `json:"description" gorm:"type:text"`
	Frequency   *int      `json:"frequency"`
	Level       *string   `json:"level" gorm:"type:varchar(50)"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WorkoutDay is one training day of a program.
type WorkoutDay struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	ProgramID          uint      `json:"programId" gorm:"index;not null"`
	Name               string    `json:"name" gorm:"type:varchar(100);not null"`
	DayOfWeek          *int      `json:"dayOfWeek"`
	TargetMuscleGroups *string   `json:"targetMuscleGroups" gorm:"type:text"`
	Order              int       `json:"order" gorm:"column:sort_order;not null"`
	CreatedAt          time.Time `json:"createdAt"`
}

// Exercise is either global (UserID nil) or a user's custom exercise.
type Exercise struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null"`
	Description  *string   `json:"description" gorm:"type:text"`
	MuscleGroup  *string   `json:"muscleGroup" gorm:"type:varchar(50)"`
	Instructions *string   `json:"instructions" gorm:"type:text"`
	ImageURL     *string   `json:"imageUrl" gorm:"column:image_url;type:text"`
	VideoURL     *string   `json:"videoUrl" gorm:"column:video_url;type:text"`
	IsCustom     bool      `json:"isCustom"`
	UserID       *uint     `json:"userId" gorm:"index"`
	CreatedAt    time.Time `json:"createdAt"`
}

// WorkoutDayExercise prescribes an exercise on a workout day.
type WorkoutDayExercise struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	DayID      uint      `json:"dayId" gorm:"index;not null"`
	ExerciseID uint      `json:"exerciseId" gorm:"not null"`
	Sets       *int      `json:"sets"`
	Reps       *string   `json:"reps" gorm:"type:varchar(50)"`
	Weight     *string   `json:"weight" gorm:"type:varchar(50)"`
	RestTime   *int      `json:"restTime"`
	Order      int       `json:"order" gorm:"column:sort_order;not null"`
	CreatedAt  time.Time `json:"createdAt"`
}

// DayExerciseDetail is a prescribed exercise joined with its exercise data.
type DayExerciseDetail struct {
	WorkoutDayExercise
	ExerciseName *string `json:"exerciseName"`
	MuscleGroup  *string `json:"muscleGroup"`
	ImageURL     *string `json:"imageUrl"`
}

// WorkoutSession records one performed workout.
type WorkoutSession struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId" gorm:"index;not null"`
	ProgramID *uint     `json:"programId"`
	DayID     *uint     `json:"dayId"`
	Date      string    `json:"date" gorm:"type:varchar(10);index;not null"`
	Duration  *int      `json:"duration"`
	Complete  bool      `json:"complete"`
	Notes     *string   `json:"notes" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionSummary is a session with its program and day names resolved.
type SessionSummary struct {
	WorkoutSession
	ProgramName *string `json:"programName"`
	DayName     *string `json:"dayName"`
}

// WorkoutSetLog is one performed set inside a session.
type WorkoutSetLog struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	SessionID  uint      `json:"sessionId" gorm:"index;not null"`
	ExerciseID uint      `json:"exerciseId" gorm:"not null"`
	SetNumber  int       `json:"setNumber" gorm:"not null"`
	Reps       int       `json:"reps" gorm:"not null"`
	Weight     float64   `json:"weight" gorm:"not null"`
	Complete   bool      `json:"complete"`
	CreatedAt  time.Time `json:"createdAt"`
}
