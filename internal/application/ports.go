package application

import (
	"context"

	"github.com/oksasatya/go-credential-service/internal/domain/entity"
)

// PasswordHasher hashes passwords one-way with a per-hash salt.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) bool
}

// JobPublisher enqueues a JSON job, e.g. on RabbitMQ.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// UserIndexer makes registered users searchable.
type UserIndexer interface {
	IndexUser(ctx context.Context, u *entity.User) error
}

// UserSearcher runs free-text user searches.
type UserSearcher interface {
	SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error)
}

// CredentialVerifier is the part of the credential store the token issuer depends on.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*entity.User, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
