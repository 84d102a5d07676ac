package repositories

import (
	"context"

	"fittrack/internal/models"
)

// ProgressRepository stores body measurements and progress photos.
type ProgressRepository interface {
	RecentMeasurements(ctx context.Context, userID uint, limit int) ([]models.BodyMeasurement, error)
	// MeasurementsInRange returns measurements with start <= date <= end, oldest first.
	MeasurementsInRange(ctx context.Context, userID uint, start, end string) ([]models.BodyMeasurement, error)
	CreateMeasurement(ctx context.Context, m *models.BodyMeasurement) error
	ListPhotos(ctx context.Context, userID uint) ([]models.ProgressPhoto, error)
	CreatePhoto(ctx context.Context, photo *models.ProgressPhoto) error
}

// ResourceKind names an owned resource type checked by OwnershipRepository.
type ResourceKind string

const (
	KindProgram ResourceKind = "program"
	KindDay     ResourceKind = "day"
	KindMeal    ResourceKind = "meal"
	KindSession ResourceKind = "session"
)

// OwnershipRepository answers whether a resource belongs to a user, following
// the parent chain where the resource has no user column of its own.
type OwnershipRepository interface {
	Owns(ctx context.Context, kind ResourceKind, id, userID uint) (bool, error)
}
