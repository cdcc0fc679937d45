package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/hsong/blogd/internal/config"
	"github.com/hsong/blogd/internal/platform/postgres"
	"github.com/hsong/blogd/internal/service"
	"github.com/hsong/blogd/internal/service/auth"
	"github.com/hsong/blogd/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore store.UserStore
	postStore store.PostStore

	// Service interfaces
	tokenService   auth.TokenService
	accountService service.AccountService
	postService    service.PostService
}

// newApplication creates a new application instance with all dependencies
// initialized. Core dependencies like configuration, logger, and database
// connection must be established before application initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.tokenService, err = auth.NewTokenService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token service: %w", err)
	}
	logger.Info("token service initialized",
		slog.Int("token_lifetime_hours", cfg.Auth.TokenLifetimeHours))

	app.userStore = postgres.NewUserStore(db, logger)
	app.postStore = postgres.NewPostStore(db, logger)

	app.accountService = service.NewAccountService(
		app.userStore,
		auth.NewBcryptHasher(cfg.Auth.BcryptCost),
		auth.NewBcryptVerifier(),
		logger,
	)

	app.postService = service.NewPostService(app.postStore, logger)

	return app, nil
}

// tokenLifetime returns the configured session duration.
func (app *application) tokenLifetime() time.Duration {
	return time.Duration(app.config.Auth.TokenLifetimeHours) * time.Hour
}

// cleanup releases resources that are not tied to the database handle, which
// main closes itself.
func (app *application) cleanup() {
	app.logger.Info("application cleanup complete")
}
