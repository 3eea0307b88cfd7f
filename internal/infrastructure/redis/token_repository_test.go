package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-credential-service/internal/domain/entity"
	"github.com/oksasatya/go-credential-service/internal/domain/repository"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *TokenRepository) {
	t.Helper()
	s := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return s, NewTokenRepository(rdb)
}

func TestTokenRepository_InsertAndGet(t *testing.T) {
	s, r := setupRedis(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	tok := entity.Token{Value: "abc", UserID: "user-1", IssuedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, r.Insert(ctx, tok))

	assert.True(t, s.Exists("auth:token:abc"))
	assert.Equal(t, "user-1", s.HGet("auth:token:abc", "user_id"))
	ttl := s.TTL("auth:token:abc")
	assert.True(t, ttl > 59*time.Minute && ttl <= time.Hour, "ttl %v", ttl)

	got, err := r.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.True(t, got.IssuedAt.Equal(now))
	assert.True(t, got.ExpiresAt.Equal(now.Add(time.Hour)))
}

func TestTokenRepository_GetMissing(t *testing.T) {
	_, r := setupRedis(t)
	_, err := r.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTokenRepository_ExpiresWithTTL(t *testing.T) {
	s, r := setupRedis(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, r.Insert(ctx, entity.Token{Value: "short", UserID: "u", IssuedAt: now, ExpiresAt: now.Add(time.Minute)}))
	s.FastForward(2 * time.Minute)

	_, err := r.Get(ctx, "short")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTokenRepository_RejectsExpiredInsert(t *testing.T) {
	s, r := setupRedis(t)
	past := time.Now().Add(-time.Minute)

	err := r.Insert(context.Background(), entity.Token{Value: "old", UserID: "u", ExpiresAt: past})
	assert.ErrorIs(t, err, repository.ErrTokenExpired)
	assert.False(t, s.Exists("auth:token:old"))
}

func TestTokenRepository_RedisDown(t *testing.T) {
	s, r := setupRedis(t)
	s.Close()

	err := r.Insert(context.Background(), entity.Token{Value: "x", UserID: "u", ExpiresAt: time.Now().Add(time.Hour)})
	require.Error(t, err)

	_, err = r.Get(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
}
