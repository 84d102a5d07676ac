package services_test

import (
	"context"
	"testing"

	"fittrack/internal/models"
	"fittrack/internal/repositories"
	"fittrack/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestProfileService_Setup(t *testing.T) {
	ctx := context.Background()

	t.Run("complete profile", func(t *testing.T) {
		repo := new(MockUserRepository)
		complete := &models.User{ID: 1, FullName: ptr("Alice Doe"), Age: ptr(30), Weight: ptr(65.5)}
		repo.On("Update", uint(1), map[string]interface{}{
			"full_name": "Alice Doe",
			"age":       30,
			"weight":    65.5,
		}).Return(complete, nil).Once()

		user, err := services.NewProfileService(repo).Setup(ctx, 1, services.ProfileInput{
			FullName: ptr("  Alice Doe "),
			Age:      ptr(30),
			Weight:   ptr(65.5),
		})
		require.NoError(t, err)
		assert.True(t, user.ProfileComplete())
		repo.AssertExpectations(t)
	})

	t.Run("missing mandatory fields", func(t *testing.T) {
		repo := new(MockUserRepository)
		_, err := services.NewProfileService(repo).Setup(ctx, 1, services.ProfileInput{FullName: ptr(" ")})
		require.Error(t, err)
		appErr := models.AsAppError(err)
		assert.Equal(t, models.CodeValidation, appErr.Code)
		assert.Len(t, appErr.Fields, 3)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("range errors are reported with missing fields", func(t *testing.T) {
		repo := new(MockUserRepository)
		_, err := services.NewProfileService(repo).Setup(ctx, 1, services.ProfileInput{
			FullName: ptr("Alice Doe"),
			Age:      ptr(5),
		})
		appErr := models.AsAppError(err)
		assert.Equal(t, models.CodeValidation, appErr.Code)
		assert.Contains(t, appErr.Fields, "age")
		assert.Contains(t, appErr.Fields, "weight")
	})
}

func TestProfileService_Update(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	repo.On("Update", uint(1), map[string]interface{}{"units": "imperial", "notifications": false}).
		Return(&models.User{ID: 1, Units: "imperial"}, nil).Once()
	repo.On("Update", uint(2), mock.Anything).Return(nil, repositories.ErrNotFound).Once()
	service := services.NewProfileService(repo)

	user, err := service.Update(ctx, 1, services.ProfileInput{Units: ptr("imperial"), Notifications: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, "imperial", user.Units)

	_, err = service.Update(ctx, 2, services.ProfileInput{Goal: ptr("lose")})
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	_, err = service.Update(ctx, 1, services.ProfileInput{Units: ptr("cubits")})
	assert.True(t, models.IsCode(err, models.CodeValidation))
	repo.AssertExpectations(t)
}
