package repositories

import (
	"context"
	"errors"

	"fittrack/internal/models"
)

var (
	// ErrNotFound is wrapped by every repository lookup that matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is wrapped when an insert violates a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uint) (*models.User, error)
	// Update applies the given column values and returns the reloaded user.
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.User, error)
}
