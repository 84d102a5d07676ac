package repositories

import (
	"context"
	"fmt"

	"fittrack/internal/models"

	"gorm.io/gorm"
)

// GORMProgressRepository is a GORM implementation of ProgressRepository.
type GORMProgressRepository struct {
	db *gorm.DB
}

// NewGORMProgressRepository creates a new GORMProgressRepository.
func NewGORMProgressRepository(db *gorm.DB) *GORMProgressRepository {
	return &GORMProgressRepository{db: db}
}

func (r *GORMProgressRepository) RecentMeasurements(ctx context.Context, userID uint, limit int) ([]models.BodyMeasurement, error) {
	var ms []models.BodyMeasurement
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(limit).
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent measurements: %w", err)
	}
	return ms, nil
}

func (r *GORMProgressRepository) MeasurementsInRange(ctx context.Context, userID uint, start, end string) ([]models.BodyMeasurement, error) {
	var ms []models.BodyMeasurement
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date <= ?", userID, start, end).
		Order("date, id").
		Find(&ms).Error; err != nil {
		return nil, fmt.Errorf("failed to list measurements between %s and %s: %w", start, end, err)
	}
	return ms, nil
}

func (r *GORMProgressRepository) CreateMeasurement(ctx context.Context, m *models.BodyMeasurement) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create body measurement: %w", err)
	}
	return nil
}

func (r *GORMProgressRepository) ListPhotos(ctx context.Context, userID uint) ([]models.ProgressPhoto, error) {
	var photos []models.ProgressPhoto
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("date DESC, id DESC").Find(&photos).Error; err != nil {
		return nil, fmt.Errorf("failed to list progress photos: %w", err)
	}
	return photos, nil
}

func (r *GORMProgressRepository) CreatePhoto(ctx context.Context, photo *models.ProgressPhoto) error {
	if err := r.db.WithContext(ctx).Create(photo).Error; err != nil {
		return fmt.Errorf("failed to create progress photo: %w", err)
	}
	return nil
}

// GORMOwnershipRepository is a GORM implementation of OwnershipRepository.
type GORMOwnershipRepository struct {
	db *gorm.DB
}

// NewGORMOwnershipRepository creates a new GORMOwnershipRepository.
func NewGORMOwnershipRepository(db *gorm.DB) *GORMOwnershipRepository {
	return &GORMOwnershipRepository{db: db}
}

// Owns counts rows matching id and owner. Days are owned through their program.
func (r *GORMOwnershipRepository) Owns(ctx context.Context, kind ResourceKind, id, userID uint) (bool, error) {
	q := r.db.WithContext(ctx)
	switch kind {
	case KindProgram:
		q = q.Model(&models.WorkoutProgram{}).Where("id = ? AND user_id = ?", id, userID)
	case KindDay:
		q = q.Table("workout_days").
			Joins("JOIN workout_programs ON workout_programs.id = workout_days.program_id").
			Where("workout_days.id = ? AND workout_programs.user_id = ?", id, userID)
	case KindMeal:
		q = q.Model(&models.Meal{}).Where("id = ? AND user_id = ?", id, userID)
	case KindSession:
		q = q.Model(&models.WorkoutSession{}).Where("id = ? AND user_id = ?", id, userID)
	default:
		return false, fmt.Errorf("unknown resource kind %q", kind)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check ownership of %s %d: %w", kind, id, err)
	}
	return count > 0, nil
}
