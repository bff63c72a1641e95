package factory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/gamestore/internal/config"
	"github.com/mcoot/gamestore/internal/dependencies/clock"
	"github.com/mcoot/gamestore/internal/dependencies/random"
	"github.com/mcoot/gamestore/internal/seed"
	"github.com/mcoot/gamestore/internal/services/auth"
	"github.com/mcoot/gamestore/internal/services/credential"
	"github.com/mcoot/gamestore/internal/services/storefront"
	"github.com/mcoot/gamestore/internal/storage"
	"github.com/mcoot/gamestore/internal/storage/memory"
	redisstorage "github.com/mcoot/gamestore/internal/storage/redis"
	"github.com/mcoot/gamestore/internal/storage/sqlstore"
)

// App contains all wired application components
type App struct {
	// Storage. Store is what services read through (possibly cached);
	// Backend is the primary store underneath.
	Store   storage.Store
	Backend storage.Backend

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Credentials *credential.Service
	Storefront  *storefront.Service
	AuthService *auth.Service

	cache  *redisstorage.CatalogCache
	logger *slog.Logger
	closer func() error
}

// Config holds configuration for the application factory
type Config struct {
	// Store selects the backend. A zero value means the memory store.
	Store config.StoreConfig
	// Redis enables the catalog cache when its URL is set
	Redis config.RedisConfig
	// Auth holds session and hashing settings. Zero values use defaults.
	Auth config.AuthConfig
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(ctx context.Context, cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	backend, closeBackend, err := openBackend(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}

	var (
		store storage.Store = backend
		cache *redisstorage.CatalogCache
	)
	if cfg.Redis.Enabled() {
		cache, err = redisstorage.New(backend, redisstorage.Config{
			URL:          cfg.Redis.URL,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			CatalogTTL:   cfg.Redis.CatalogTTL,
		}, logger)
		if err != nil {
			_ = closeBackend()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		store = cache
	}

	app := newWithDependencies(store, backend, clock.New(), random.New(), cfg.Auth, logger)
	app.cache = cache
	app.closer = func() error {
		var errs []error
		if cache != nil {
			errs = append(errs, cache.Close())
		}
		errs = append(errs, closeBackend())
		return errors.Join(errs...)
	}
	return app, nil
}

func openBackend(ctx context.Context, cfg config.StoreConfig) (storage.Backend, func() error, error) {
	switch cfg.Driver {
	case "", config.DriverMemory:
		return memory.New(), func() error { return nil }, nil
	case config.DriverSQLite, config.DriverSQLite3, config.DriverPgx:
		store, err := sqlstore.Open(ctx, sqlstore.Config{
			Driver:          cfg.Driver,
			DSN:             cfg.ConnString(),
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: cfg.ConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("invalid store driver %q", cfg.Driver)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Store, backend storage.Backend, clk clock.Clock, rnd random.Random, authCfg config.AuthConfig, logger *slog.Logger) *App {
	creds := credential.New(credential.Config{Cost: authCfg.BcryptCost})
	front := storefront.New(store, creds, clk, logger)
	authService := auth.New(front, rnd, clk, auth.Config{SessionDuration: authCfg.SessionDuration})

	return &App{
		Store:       store,
		Backend:     backend,
		Clock:       clk,
		Random:      rnd,
		Credentials: creds,
		Storefront:  front,
		AuthService: authService,
		logger:      logger,
		closer:      func() error { return nil },
	}
}

// Seed loads the sample catalog if the backend has no games, then drops any
// cached catalog reads.
func (a *App) Seed(ctx context.Context) (seed.Result, bool, error) {
	res, loaded, err := seed.LoadIfEmpty(ctx, a.Backend)
	if err != nil {
		return res, false, err
	}
	if loaded && a.cache != nil {
		if err := a.cache.Invalidate(ctx); err != nil {
			a.logger.WarnContext(ctx, "could not invalidate catalog cache", "error", err)
		}
	}
	if loaded {
		a.logger.InfoContext(ctx, "seeded sample catalog", "games", res.Games)
	}
	return res, loaded, nil
}

// Close releases the store and cache connections
func (a *App) Close() error {
	return a.closer()
}
