package services

import (
	"context"
	"errors"
	"strings"

	"fittrack/internal/models"
	"fittrack/internal/repositories"
	"fittrack/pkg/objectstore"
)

const recentMeasurementsLimit = 10

// MeasurementInput is the request body for a body measurement.
type MeasurementInput struct {
	Date    string   `json:"date" validate:"required,isodate"`
	Weight  *float64 `json:"weight" validate:"omitempty,min=0,max=500"`
	BodyFat *float64 `json:"bodyFat" validate:"omitempty,min=0,max=100"`
	Chest   *float64 `json:"chest" validate:"omitempty,min=0"`
	Waist   *float64 `json:"waist" validate:"omitempty,min=0"`
	Hips    *float64 `json:"hips" validate:"omitempty,min=0"`
	Arms    *float64 `json:"arms" validate:"omitempty,min=0"`
	Thighs  *float64 `json:"thighs" validate:"omitempty,min=0"`
	Notes   *string  `json:"notes"`
}

// PhotoInput is the request body for a progress photo. Either PhotoURL or a
// base64 data URI in PhotoData is required.
type PhotoInput struct {
	Date      string  `json:"date" validate:"required,isodate"`
	PhotoURL  string  `json:"photoUrl" validate:"omitempty,max=2048"`
	PhotoData string  `json:"photoData"`
	Type      *string `json:"type" validate:"omitempty,oneof=front side back"`
}

// PhotoUploader stores an image given as a data URI and returns its public URL.
type PhotoUploader interface {
	Upload(ctx context.Context, dataURI, prefix string) (string, error)
}

// ProgressService records body measurements and progress photos.
type ProgressService struct {
	repo   repositories.ProgressRepository
	photos PhotoUploader
}

// NewProgressService creates a new ProgressService. Without an uploader only
// photo URLs are accepted.
func NewProgressService(repo repositories.ProgressRepository, photos PhotoUploader) *ProgressService {
	return &ProgressService{repo: repo, photos: photos}
}

func (s *ProgressService) RecentMeasurements(ctx context.Context, userID uint) ([]models.BodyMeasurement, error) {
	measurements, err := s.repo.RecentMeasurements(ctx, userID, recentMeasurementsLimit)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return measurements, nil
}

// MeasurementsInRange returns measurements between start and end inclusive, oldest first.
func (s *ProgressService) MeasurementsInRange(ctx context.Context, userID uint, start, end string) ([]models.BodyMeasurement, error) {
	if !IsISODate(start) || !IsISODate(end) {
		return nil, models.NewValidationError("Valid start and end dates are required", map[string]string{
			"startDate": "startDate must be a date in YYYY-MM-DD format",
			"endDate":   "endDate must be a date in YYYY-MM-DD format",
		})
	}
	// Same-width ISO dates order lexically.
	if start > end {
		return nil, models.NewValidationError("Valid start and end dates are required", map[string]string{
			"endDate": "endDate must not be before startDate",
		})
	}
	measurements, err := s.repo.MeasurementsInRange(ctx, userID, start, end)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return measurements, nil
}

func (s *ProgressService) CreateMeasurement(ctx context.Context, userID uint, input MeasurementInput) (*models.BodyMeasurement, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	m := &models.BodyMeasurement{
		UserID:  userID,
		Date:    input.Date,
		Weight:  input.Weight,
		BodyFat: input.BodyFat,
		Chest:   input.Chest,
		Waist:   input.Waist,
		Hips:    input.Hips,
		Arms:    input.Arms,
		Thighs:  input.Thighs,
		Notes:   input.Notes,
	}
	if err := s.repo.CreateMeasurement(ctx, m); err != nil {
		return nil, models.NewInternalError(err)
	}
	return m, nil
}

func (s *ProgressService) ListPhotos(ctx context.Context, userID uint) ([]models.ProgressPhoto, error) {
	photos, err := s.repo.ListPhotos(ctx, userID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return photos, nil
}

// CreatePhoto stores a photo reference, uploading PhotoData first when given.
func (s *ProgressService) CreatePhoto(ctx context.Context, userID uint, input PhotoInput) (*models.ProgressPhoto, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	url := strings.TrimSpace(input.PhotoURL)
	switch {
	case input.PhotoData != "":
		if s.photos == nil {
			return nil, models.NewValidationError("Validation failed", map[string]string{
				"photoData": "photo uploads are not enabled, send photoUrl instead",
			})
		}
		uploaded, err := s.photos.Upload(ctx, input.PhotoData, "progress-photos")
		if err != nil {
			if errors.Is(err, objectstore.ErrInvalidDataURI) {
				return nil, models.NewValidationError("Validation failed", map[string]string{
					"photoData": "photoData must be a base64 data URI",
				})
			}
			return nil, models.NewInternalError(err)
		}
		url = uploaded
	case url == "":
		return nil, models.NewValidationError("Validation failed", map[string]string{
			"photoUrl": "photoUrl or photoData is required",
		})
	}

	photo := &models.ProgressPhoto{
		UserID:   userID,
		Date:     input.Date,
		PhotoURL: url,
		Type:     input.Type,
	}
	if err := s.repo.CreatePhoto(ctx, photo); err != nil {
		return nil, models.NewInternalError(err)
	}
	return photo, nil
}
