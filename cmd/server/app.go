package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/hatembr/identity-api/internal/config"
	"github.com/hatembr/identity-api/internal/platform/postgres"
	"github.com/hatembr/identity-api/internal/service"
	"github.com/hatembr/identity-api/internal/service/auth"
	"github.com/hatembr/identity-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore       store.UserStore
	credentialStore store.CredentialStore
	addressStore    store.AddressStore
	tokenStore      store.VerificationTokenStore

	// Service interfaces
	passwordHasher auth.PasswordHasher
	jwtService     auth.JWTService
	userService    service.UserService
	credService    service.CredentialService
	addressService service.AddressService
	tokenService   service.VerificationTokenService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
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

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenLifetimeMinutes)*time.Minute,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Initialize password hasher
	app.passwordHasher = auth.NewBcryptHasher()

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.credentialStore = postgres.NewPostgresCredentialStore(db, logger)
	app.addressStore = postgres.NewPostgresAddressStore(db, logger)
	app.tokenStore = postgres.NewPostgresTokenStore(db, logger)

	// Initialize services
	app.userService = service.NewUserService(
		app.userStore,
		app.credentialStore,
		app.passwordHasher,
		db,
		logger,
	)
	app.credService = service.NewCredentialService(
		app.credentialStore,
		app.userStore,
		app.tokenStore,
		app.passwordHasher,
		db,
		logger,
	)
	app.addressService = service.NewAddressService(
		app.addressStore,
		app.userStore,
		db,
		logger,
	)
	app.tokenService = service.NewVerificationTokenService(
		app.tokenStore,
		app.credentialStore,
		db,
		logger,
	)

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
