package application

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-credential-service/internal/domain/entity"
	repo "github.com/oksasatya/go-credential-service/internal/domain/repository"
	"github.com/oksasatya/go-credential-service/pkg/mailer"
)

const (
	DefaultPasswordMinLength = 5
	DefaultStoreTimeout      = 3 * time.Second

	// bcrypt ignores input past 72 bytes; reject instead of silently truncating.
	maxPasswordBytes = 72
)

var validate = validator.New()

// CredentialStore owns user records: registration with a password policy and
// credential verification.
type CredentialStore struct {
	Users             repo.UserRepository
	Hasher            PasswordHasher
	Logger            *logrus.Logger
	PasswordMinLength int
	StoreTimeout      time.Duration

	// Optional side effects after a successful registration.
	Indexer   UserIndexer
	Publisher JobPublisher
	AppName   string

	dummyOnce sync.Once
	dummyHash string
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

func NewCredentialStore(users repo.UserRepository, hasher PasswordHasher, logger *logrus.Logger, minLen int, timeout time.Duration) *CredentialStore {
	if minLen <= 0 {
		minLen = DefaultPasswordMinLength
	}
	if timeout <= 0 {
		timeout = DefaultStoreTimeout
	}
	return &CredentialStore{
		Users:             users,
		Hasher:            hasher,
		Logger:            logger,
		PasswordMinLength: minLen,
		StoreTimeout:      timeout,
	}
}

// NormalizeEmail trims and lower-cases an address for storage and comparison.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *CredentialStore) storeCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.StoreTimeout)
}

func (s *CredentialStore) validateRegistration(email, password string) error {
	if email == "" {
		return invalid("email", ErrEmailRequired)
	}
	if err := validate.Var(email, "email"); err != nil {
		return invalid("email", ErrEmailInvalid)
	}
	if password == "" {
		return invalid("password", ErrPasswordRequired)
	}
	if len([]rune(password)) < s.PasswordMinLength {
		return invalid("password", ErrPasswordTooShort)
	}
	if len(password) > maxPasswordBytes {
		return invalid("password", ErrPasswordTooLong)
	}
	return nil
}

// Register validates input, hashes the password and creates the user.
// Nothing is stored when validation fails; a duplicate email surfaces as a
// ValidationError even when it loses a race inside the repository.
func (s *CredentialStore) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	email := NormalizeEmail(in.Email)
	if err := s.validateRegistration(email, in.Password); err != nil {
		return nil, err
	}
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		Email:        email,
		PasswordHash: hash,
		Name:         strings.TrimSpace(in.Name),
	}

	c, cancel := s.storeCtx(ctx)
	defer cancel()
	if err := s.Users.Create(c, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return nil, invalid("email", ErrEmailTaken)
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", email).Error("create user failed")
		}
		return nil, unavailable(err)
	}
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email}).Info("user registered")
	}

	s.afterRegister(ctx, u)
	return u, nil
}

func (s *CredentialStore) afterRegister(ctx context.Context, u *entity.User) {
	if s.Indexer != nil {
		if err := s.Indexer.IndexUser(ctx, u); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("index user failed")
		}
	}
	if s.Publisher != nil {
		c, cancel := s.storeCtx(ctx)
		defer cancel()
		job := mailer.NewWelcomeJob(u.Email, u.Name, s.AppName)
		if err := s.Publisher.PublishJSON(c, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
		}
	}
}

// Verify checks an email/password pair. Unknown users and wrong passwords
// yield the same ErrInvalidCredentials, and both pay for one hash comparison.
func (s *CredentialStore) Verify(ctx context.Context, email, password string) (*entity.User, error) {
	email = NormalizeEmail(email)

	c, cancel := s.storeCtx(ctx)
	defer cancel()
	u, err := s.Users.GetByEmail(c, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.Hasher.Compare(s.dummy(), password)
			return nil, ErrInvalidCredentials
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Error("lookup user failed")
		}
		return nil, unavailable(err)
	}
	if !s.Hasher.Compare(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetByID loads a user for an already authenticated caller.
func (s *CredentialStore) GetByID(ctx context.Context, id string) (*entity.User, error) {
	c, cancel := s.storeCtx(ctx)
	defer cancel()
	u, err := s.Users.GetByID(c, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, unavailable(err)
	}
	return u, nil
}

func (s *CredentialStore) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.Hash("credential-store-placeholder")
	})
	return s.dummyHash
}

var _ CredentialVerifier = (*CredentialStore)(nil)
