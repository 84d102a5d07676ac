package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"fittrack/internal/models"
	"fittrack/internal/services"
	"fittrack/pkg/objectstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProgressService_MeasurementsInRange(t *testing.T) {
	repo := new(MockProgressRepository)
	repo.On("MeasurementsInRange", uint(1), "2024-03-01", "2024-03-31").Return([]models.BodyMeasurement{{Date: "2024-03-02"}}, nil).Once()
	service := services.NewProgressService(repo, nil)

	found, err := service.MeasurementsInRange(context.Background(), 1, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	for _, bad := range [][2]string{{"", "2024-03-31"}, {"2024-03-01", "tomorrow"}, {"2024-03-31", "2024-03-01"}} {
		_, err := service.MeasurementsInRange(context.Background(), 1, bad[0], bad[1])
		assert.Equal(t, "Valid start and end dates are required", models.AsAppError(err).Message, "range %v", bad)
	}
	repo.AssertExpectations(t)
}

func TestProgressService_CreateMeasurement(t *testing.T) {
	repo := new(MockProgressRepository)
	repo.On("CreateMeasurement", mock.MatchedBy(func(m *models.BodyMeasurement) bool {
		return m.UserID == 1 && *m.Weight == 72.4
	})).Return(nil).Once()
	service := services.NewProgressService(repo, nil)

	_, err := service.CreateMeasurement(context.Background(), 1, services.MeasurementInput{Date: "2024-03-01", Weight: ptr(72.4)})
	require.NoError(t, err)

	_, err = service.CreateMeasurement(context.Background(), 1, services.MeasurementInput{Date: "2024-03-01", BodyFat: ptr(120.0)})
	assert.True(t, models.IsCode(err, models.CodeValidation))
	repo.AssertExpectations(t)
}

func TestProgressService_CreatePhoto(t *testing.T) {
	ctx := context.Background()
	const dataURI = "data:image/png;base64,aGVsbG8="

	t.Run("url", func(t *testing.T) {
		repo := new(MockProgressRepository)
		repo.On("CreatePhoto", mock.MatchedBy(func(p *models.ProgressPhoto) bool {
			return p.PhotoURL == "https://cdn.example.com/a.jpg"
		})).Return(nil).Once()

		_, err := services.NewProgressService(repo, nil).CreatePhoto(ctx, 1, services.PhotoInput{Date: "2024-03-01", PhotoURL: "https://cdn.example.com/a.jpg"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("upload", func(t *testing.T) {
		repo := new(MockProgressRepository)
		uploader := new(MockUploader)
		uploader.On("Upload", dataURI, "progress-photos").Return("https://bucket/progress-photos/x.png", nil).Once()
		repo.On("CreatePhoto", mock.MatchedBy(func(p *models.ProgressPhoto) bool {
			return p.PhotoURL == "https://bucket/progress-photos/x.png" && *p.Type == "side"
		})).Return(nil).Once()

		photo, err := services.NewProgressService(repo, uploader).CreatePhoto(ctx, 1, services.PhotoInput{Date: "2024-03-01", PhotoData: dataURI, Type: ptr("side")})
		require.NoError(t, err)
		assert.Equal(t, "https://bucket/progress-photos/x.png", photo.PhotoURL)
		uploader.AssertExpectations(t)
		repo.AssertExpectations(t)
	})

	t.Run("bad data uri", func(t *testing.T) {
		uploader := new(MockUploader)
		uploader.On("Upload", "junk", "progress-photos").Return("", fmt.Errorf("decode: %w", objectstore.ErrInvalidDataURI)).Once()

		_, err := services.NewProgressService(new(MockProgressRepository), uploader).CreatePhoto(ctx, 1, services.PhotoInput{Date: "2024-03-01", PhotoData: "junk"})
		assert.True(t, models.IsCode(err, models.CodeValidation))
	})

	t.Run("upload failure", func(t *testing.T) {
		uploader := new(MockUploader)
		uploader.On("Upload", dataURI, "progress-photos").Return("", errors.New("s3 unavailable")).Once()

		_, err := services.NewProgressService(new(MockProgressRepository), uploader).CreatePhoto(ctx, 1, services.PhotoInput{Date: "2024-03-01", PhotoData: dataURI})
		assert.True(t, models.IsCode(err, models.CodeInternal))
	})

	t.Run("uploads disabled", func(t *testing.T) {
		_, err := services.NewProgressService(new(MockProgressRepository), nil).CreatePhoto(ctx, 1, services.PhotoInput{Date: "2024-03-01", PhotoData: dataURI})
		appErr := models.AsAppError(err)
		assert.Equal(t, models.CodeValidation, appErr.Code)
		assert.Contains(t, appErr.Fields, "photoData")
	})

	t.Run("nothing to store", func(t *testing.T) {
		_, err := services.NewProgressService(new(MockProgressRepository), nil).CreatePhoto(ctx, 1, services.PhotoInput{Date: "2024-03-01"})
		assert.Contains(t, models.AsAppError(err).Fields, "photoUrl")
	})
}
