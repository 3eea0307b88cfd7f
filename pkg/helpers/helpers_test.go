package helpers

import (
	"bytes"
	"context"
	"encoding/base64"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("testPassword")
	require.NoError(t, err)
	assert.NotEqual(t, "testPassword", hash)
	assert.True(t, h.Compare(hash, "testPassword"))
	assert.False(t, h.Compare(hash, "wrong_password"))
	assert.False(t, h.Compare("not-a-hash", "testPassword"))
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)
	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestNewBcryptHasher_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptHasher(99).Cost)
	assert.Equal(t, 12, NewBcryptHasher(12).Cost)
}

func TestGenToken(t *testing.T) {
	a, err := GenToken(32)
	require.NoError(t, err)
	b, err := GenToken(32)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	raw, err := base64.RawURLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestNewLogger_FormatByEnv(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "svc", "production")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)
	assert.Contains(t, buf.String(), `"app":"svc"`)

	dev := newLogger(&buf, "svc", "development")
	assert.Equal(t, logrus.DebugLevel, dev.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, dev.Formatter)
}

func TestLogHelpers_NilLoggerIsNoop(t *testing.T) {
	assert.NotPanics(t, func() {
		LogError(nil, "x", assert.AnError, nil)
		LogInfo(nil, "x", nil)
	})
}

func TestPingRedis(t *testing.T) {
	s := miniredis.RunT(t)
	rdb := NewRedisClient(s.Addr(), "", 0)
	defer func() { _ = rdb.Close() }()

	require.NoError(t, PingRedis(context.Background(), rdb))

	s.Close()
	assert.Error(t, PingRedis(context.Background(), rdb))
}

func TestRabbitPublisher_NilIsClosed(t *testing.T) {
	var p *RabbitPublisher
	assert.ErrorIs(t, p.PublishJSON(context.Background(), map[string]string{}), errPublisherClosed)
	assert.NotPanics(t, p.Close)
}
