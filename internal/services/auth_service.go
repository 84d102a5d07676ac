package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fittrack/internal/models"
	"fittrack/internal/observability"
	"fittrack/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "Invalid username or password"

// RegisterInput is the request body for registration.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	// bcrypt ignores bytes past 72, so longer passwords are rejected.
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginInput is the request body for login.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AuthService handles business logic for registration and authentication.
// Session handling stays in the HTTP layer.
type AuthService struct {
	userRepo repositories.UserRepository
	events   EventPublisher
	metrics  *observability.Metrics
	hashCost int
}

// NewAuthService creates a new AuthService. events and metrics may be nil.
func NewAuthService(userRepo repositories.UserRepository, events EventPublisher, metrics *observability.Metrics) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		events:   events,
		metrics:  metrics,
		hashCost: bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost. Tests lower it to bcrypt.MinCost.
func (s *AuthService) WithHashCost(cost int) *AuthService {
	s.hashCost = cost
	return s
}

// Register validates input, rejects taken usernames and emails, and stores
// the new user with a hashed password.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	if err := s.ensureFree(ctx, input.Username, input.Email); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		return nil, models.NewInternalError(fmt.Errorf("failed to hash password: %w", err))
	}

	user := &models.User{
		Username:      input.Username,
		Email:         input.Email,
		Password:      string(hashedPassword),
		Units:         "metric",
		Notifications: true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent registration.
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, models.NewConflictError("Username or email is already registered")
		}
		return nil, models.NewInternalError(err)
	}

	s.metrics.RecordRegistration()
	publish(ctx, s.events, EventUserRegistered, map[string]interface{}{
		"userId":   user.ID,
		"username": user.Username,
	})
	slog.InfoContext(ctx, "user registered", slog.Uint64("user_id", uint64(user.ID)))
	return user, nil
}

func (s *AuthService) ensureFree(ctx context.Context, username, email string) error {
	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return models.NewConflictError("Username is already taken")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return models.NewInternalError(err)
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return models.NewConflictError("Email is already registered")
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return models.NewInternalError(err)
	}
	return nil
}

// Login checks the credentials. Unknown users and wrong passwords produce
// the same error.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.metrics.RecordLoginFailure()
			return nil, models.NewUnauthorizedError(invalidCredentials)
		}
		return nil, models.NewInternalError(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		s.metrics.RecordLoginFailure()
		return nil, models.NewUnauthorizedError(invalidCredentials)
	}
	return user, nil
}

// CurrentUser resolves the user bound to a session.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}
