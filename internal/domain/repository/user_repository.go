package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-credential-service/internal/domain/entity"
)

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned by Create when the normalized email already exists.
	ErrDuplicateEmail = errors.New("duplicate email")
)

// UserRepository defines the persistence operations for users.
// Create must be atomic with respect to email uniqueness.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
