package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-credential-service/internal/domain/entity"
	repo "github.com/oksasatya/go-credential-service/internal/domain/repository"
	"github.com/oksasatya/go-credential-service/pkg/helpers"
)

const (
	DefaultTokenTTL   = 24 * time.Hour
	DefaultTokenBytes = 32
)

// TokenIssuer exchanges verified credentials for opaque bearer tokens.
type TokenIssuer struct {
	Credentials  CredentialVerifier
	Tokens       repo.TokenRepository
	Logger       *logrus.Logger
	TTL          time.Duration
	TokenBytes   int
	StoreTimeout time.Duration

	now func() time.Time
}

func NewTokenIssuer(creds CredentialVerifier, tokens repo.TokenRepository, logger *logrus.Logger, ttl time.Duration, tokenBytes int, timeout time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	if tokenBytes < 16 {
		tokenBytes = DefaultTokenBytes
	}
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return &TokenIssuer{
		Credentials:  creds,
		Tokens:       tokens,
		Logger:       logger,
		TTL:          ttl,
		TokenBytes:   tokenBytes,
		StoreTimeout: timeout,
		now:          time.Now,
	}
}

// IssueToken verifies email/password and mints a fresh token for the user.
func (t *TokenIssuer) IssueToken(ctx context.Context, email, password string) (*entity.Token, error) {
	if strings.TrimSpace(email) == "" {
		return nil, invalid("email", ErrEmailRequired)
	}
	if password == "" {
		return nil, invalid("password", ErrPasswordRequired)
	}

	u, err := t.Credentials.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}

	value, err := helpers.GenToken(t.TokenBytes)
	if err != nil {
		return nil, err
	}
	now := t.now().UTC()
	tok := entity.Token{
		Value:     value,
		UserID:    u.ID,
		IssuedAt:  now,
		ExpiresAt: now.Add(t.TTL),
	}

	c, cancel := context.WithTimeout(ctx, t.StoreTimeout)
	defer cancel()
	if err := t.Tokens.Insert(c, tok); err != nil {
		if t.Logger != nil {
			t.Logger.WithError(err).WithField("user_id", u.ID).Error("store token failed")
		}
		return nil, unavailable(err)
	}
	if t.Logger != nil {
		t.Logger.WithField("user_id", u.ID).Info("token issued")
	}
	return &tok, nil
}

// Authenticate resolves a presented token to its user.
func (t *TokenIssuer) Authenticate(ctx context.Context, value string) (*entity.User, error) {
	if value == "" {
		return nil, ErrInvalidCredentials
	}
	c, cancel := context.WithTimeout(ctx, t.StoreTimeout)
	defer cancel()
	tok, err := t.Tokens.Get(c, value)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, unavailable(err)
	}
	if tok.Expired(t.now()) {
		return nil, ErrInvalidCredentials
	}
	return t.Credentials.GetByID(ctx, tok.UserID)
}
