package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-credential-service/internal/domain/entity"
	"github.com/oksasatya/go-credential-service/internal/domain/repository"
)

func tokenKey(value string) string {
	return "auth:token:" + value
}

// TokenRepository stores each token as a hash that Redis expires at ExpiresAt.
type TokenRepository struct {
	rdb *goredis.Client
}

func NewTokenRepository(rdb *goredis.Client) *TokenRepository {
	return &TokenRepository{rdb: rdb}
}

func (r *TokenRepository) Insert(ctx context.Context, t entity.Token) error {
	if !t.ExpiresAt.IsZero() && !t.ExpiresAt.After(time.Now()) {
		return repository.ErrTokenExpired
	}
	key := tokenKey(t.Value)
	fields := map[string]any{
		"user_id":   t.UserID,
		"issued_at": t.IssuedAt.UTC().Format(time.RFC3339Nano),
	}
	if !t.ExpiresAt.IsZero() {
		fields["expires_at"] = t.ExpiresAt.UTC().Format(time.RFC3339Nano)
	}

	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key, fields)
	if !t.ExpiresAt.IsZero() {
		pipe.ExpireAt(ctx, key, t.ExpiresAt)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

func (r *TokenRepository) Get(ctx context.Context, value string) (*entity.Token, error) {
	data, err := r.rdb.HGetAll(ctx, tokenKey(value)).Result()
	if err != nil {
		return nil, fmt.Errorf("load token: %w", err)
	}
	if len(data) == 0 || data["user_id"] == "" {
		return nil, repository.ErrNotFound
	}
	t := &entity.Token{Value: value, UserID: data["user_id"]}
	if v := data["issued_at"]; v != "" {
		t.IssuedAt, _ = time.Parse(time.RFC3339Nano, v)
	}
	if v := data["expires_at"]; v != "" {
		t.ExpiresAt, _ = time.Parse(time.RFC3339Nano, v)
	}
	return t, nil
}

var _ repository.TokenRepository = (*TokenRepository)(nil)
