package main

import (
	"context"
	"errors"
	"flag"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-credential-service/config"
	"github.com/oksasatya/go-credential-service/internal/application"
	pginfra "github.com/oksasatya/go-credential-service/internal/infrastructure/postgres"
	"github.com/oksasatya/go-credential-service/pkg/helpers"
)

func main() {
	email := flag.String("email", "demo@example.com", "seed user email")
	password := flag.String("password", "password123", "seed user password")
	name := flag.String("name", "demoUser", "seed user display name")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 2, AppName: cfg.AppName + "-seed"})
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	store := application.NewCredentialStore(
		pginfra.NewUserRepository(pool),
		helpers.NewBcryptHasher(cfg.BcryptCost),
		logger,
		cfg.PasswordMinLength,
		cfg.StoreTimeout,
	)

	u, err := store.Register(ctx, application.RegisterInput{Email: *email, Password: *password, Name: *name})
	switch {
	case errors.Is(err, application.ErrEmailTaken):
		logger.WithField("email", application.NormalizeEmail(*email)).Info("seed user already exists")
	case err != nil:
		logger.Fatalf("failed to seed user: %v", err)
	default:
		logger.WithField("user_id", u.ID).WithField("email", u.Email).Info("seeded user")
	}
}
