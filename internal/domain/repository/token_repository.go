package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-credential-service/internal/domain/entity"
)

// ErrTokenExpired is returned by Insert for a token whose ExpiresAt has passed.
var ErrTokenExpired = errors.New("token already expired")

// TokenRepository stores issued bearer tokens.
// Get returns ErrNotFound for unknown and expired tokens alike.
type TokenRepository interface {
	Insert(ctx context.Context, t entity.Token) error
	Get(ctx context.Context, value string) (*entity.Token, error)
}
