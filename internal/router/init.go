package router

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-credential-service/config"
	"github.com/oksasatya/go-credential-service/internal/application"
	"github.com/oksasatya/go-credential-service/internal/container"
	repo "github.com/oksasatya/go-credential-service/internal/domain/repository"
	"github.com/oksasatya/go-credential-service/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-credential-service/internal/infrastructure/postgres"
	redisinfra "github.com/oksasatya/go-credential-service/internal/infrastructure/redis"
	"github.com/oksasatya/go-credential-service/internal/infrastructure/search"
	handlers "github.com/oksasatya/go-credential-service/internal/interface/http"
	"github.com/oksasatya/go-credential-service/internal/router/modules"
	"github.com/oksasatya/go-credential-service/pkg/helpers"
)

type UserModuleDeps struct {
	Users       repo.UserRepository
	Tokens      repo.TokenRepository
	Credentials *application.CredentialStore
	Issuer      *application.TokenIssuer
	Handler     *handlers.UserHandler
}

func buildRepositories(cfg *config.Config) (repo.UserRepository, repo.TokenRepository, error) {
	switch cfg.StoreDriver {
	case config.DriverMemory:
		return memory.NewUserRepository(), memory.NewTokenRepository(), nil
	case config.DriverPostgres:
		pool := container.GetPGPool()
		if pool == nil {
			return nil, nil, errors.New("postgres store selected but no pool is configured")
		}
		var tokens repo.TokenRepository = memory.NewTokenRepository()
		if rdb := container.GetRedis(); rdb != nil {
			tokens = redisinfra.NewTokenRepository(rdb)
		}
		return pginfra.NewUserRepository(pool), tokens, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// BuildUserDeps assembles the credential store, token issuer and handler from
// explicit repositories.
func BuildUserDeps(cfg *config.Config, logger *logrus.Logger, users repo.UserRepository, tokens repo.TokenRepository) UserModuleDeps {
	creds := application.NewCredentialStore(
		users,
		helpers.NewBcryptHasher(cfg.BcryptCost),
		logger,
		cfg.PasswordMinLength,
		cfg.StoreTimeout,
	)
	creds.AppName = cfg.AppName

	var searcher application.UserSearcher
	if es := container.GetES(); es != nil {
		idx := search.NewUserIndex(es, cfg.ESUsersIndex, logger)
		creds.Indexer = idx
		searcher = idx
	}
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		creds.Publisher = pub
	}

	issuer := application.NewTokenIssuer(creds, tokens, logger, cfg.TokenTTL, cfg.TokenBytes, cfg.StoreTimeout)
	handler := handlers.NewUserHandler(creds, issuer, searcher, logger)

	return UserModuleDeps{
		Users:       users,
		Tokens:      tokens,
		Credentials: creds,
		Issuer:      issuer,
		Handler:     handler,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) (UserModuleDeps, error) {
	cfg := container.GetConfig()
	users, tokens, err := buildRepositories(cfg)
	if err != nil {
		return UserModuleDeps{}, err
	}
	deps := BuildUserDeps(cfg, container.GetLogger(), users, tokens)

	r.Add(modules.NewUserModule(deps.Handler, deps.Issuer))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
	return deps, nil
}
