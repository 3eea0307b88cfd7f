package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/go-credential-service/internal/domain/entity"
	"github.com/oksasatya/go-credential-service/internal/domain/repository"
)

type TokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]entity.Token
	now    func() time.Time
}

func NewTokenRepository() *TokenRepository {
	return &TokenRepository{tokens: make(map[string]entity.Token), now: time.Now}
}

func (r *TokenRepository) Insert(ctx context.Context, t entity.Token) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.Expired(r.now()) {
		return repository.ErrTokenExpired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[t.Value] = t
	return nil
}

func (r *TokenRepository) Get(ctx context.Context, value string) (*entity.Token, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	t, ok := r.tokens[value]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	if t.Expired(r.now()) {
		r.mu.Lock()
		delete(r.tokens, value)
		r.mu.Unlock()
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

var _ repository.TokenRepository = (*TokenRepository)(nil)
