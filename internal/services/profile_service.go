package services

import (
	"context"
	"errors"
	"strings"

	"fittrack/internal/models"
	"fittrack/internal/repositories"
)

// ProfileInput carries onboarding and profile fields. Absent fields are left
// untouched; present ones are range checked.
type ProfileInput struct {
	FullName      *string  `json:"fullName" validate:"omitempty,min=2,max=255"`
	Age           *int     `json:"age" validate:"omitempty,min=13,max=120"`
	Gender        *string  `json:"gender" validate:"omitempty,max=50"`
	Height        *float64 `json:"height" validate:"omitempty,min=50,max=300"`
	Weight        *float64 `json:"weight" validate:"omitempty,min=30,max=300"`
	BodyFat       *float64 `json:"bodyFat" validate:"omitempty,min=0,max=100"`
	ActivityLevel *string  `json:"activityLevel" validate:"omitempty,max=50"`
	Goal          *string  `json:"goal" validate:"omitempty,max=50"`
	Units         *string  `json:"units" validate:"omitempty,oneof=metric imperial"`
	Notifications *bool    `json:"notifications"`
}

// columns maps the present fields onto user columns.
func (in ProfileInput) columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if in.FullName != nil {
		cols["full_name"] = strings.TrimSpace(*in.FullName)
	}
	if in.Age != nil {
		cols["age"] = *in.Age
	}
	if in.Gender != nil {
		cols["gender"] = *in.Gender
	}
	if in.Height != nil {
		cols["height"] = *in.Height
	}
	if in.Weight != nil {
		cols["weight"] = *in.Weight
	}
	if in.BodyFat != nil {
		cols["body_fat"] = *in.BodyFat
	}
	if in.ActivityLevel != nil {
		cols["activity_level"] = *in.ActivityLevel
	}
	if in.Goal != nil {
		cols["goal"] = *in.Goal
	}
	if in.Units != nil {
		cols["units"] = *in.Units
	}
	if in.Notifications != nil {
		cols["notifications"] = *in.Notifications
	}
	return cols
}

// ProfileService validates and persists profile fields.
type ProfileService struct {
	userRepo repositories.UserRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(userRepo repositories.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// Setup completes onboarding. Full name, age and weight are mandatory so the
// profile is complete afterwards.
func (s *ProfileService) Setup(ctx context.Context, userID uint, input ProfileInput) (*models.User, error) {
	missing := make(map[string]string)
	if input.FullName == nil || strings.TrimSpace(*input.FullName) == "" {
		missing["fullName"] = "fullName is required"
	}
	if input.Age == nil {
		missing["age"] = "age is required"
	}
	if input.Weight == nil {
		missing["weight"] = "weight is required"
	}
	if err := validateInput(input); err != nil {
		if appErr := models.AsAppError(err); appErr.Code == models.CodeValidation {
			for k, v := range missing {
				appErr.Fields[k] = v
			}
		}
		return nil, err
	}
	if len(missing) > 0 {
		return nil, models.NewValidationError("Validation failed", missing)
	}
	return s.apply(ctx, userID, input)
}

// Update merges any subset of profile fields into the user.
func (s *ProfileService) Update(ctx context.Context, userID uint, input ProfileInput) (*models.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}
	return s.apply(ctx, userID, input)
}

func (s *ProfileService) apply(ctx context.Context, userID uint, input ProfileInput) (*models.User, error) {
	user, err := s.userRepo.Update(ctx, userID, input.columns())
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}
