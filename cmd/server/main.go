package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mcoot/gamestore/internal/api"
	"github.com/mcoot/gamestore/internal/config"
	"github.com/mcoot/gamestore/internal/factory"
	"github.com/mcoot/gamestore/internal/middleware"
	"github.com/mcoot/gamestore/internal/web"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run starts the server and blocks until it stops. It returns the process
// exit code so deferred cleanup always runs before exiting.
func run(args []string) int {
	if len(args) > 0 && (args[0] == "-h" || args[0] == "--help") {
		usage, err := config.Usage()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Println(usage)
		return 0
	}

	// Load configuration from GAMESTORE_CONFIG (optional YAML), .env and the environment
	cfg, err := config.Load(os.Getenv("GAMESTORE_CONFIG"))
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	// Set up logging with JSON output
	logger := cfg.Log.NewLogger(os.Stdout)
	slog.SetDefault(logger)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Create application factory
	app, err := factory.New(ctx, factory.Config{
		Store:  cfg.Store,
		Redis:  cfg.Redis,
		Auth:   cfg.Auth,
		Logger: logger,
	})
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("error closing store", slog.String("error", err.Error()))
		}
	}()

	if cfg.Store.Seed {
		if _, _, err := app.Seed(ctx); err != nil {
			logger.Error("failed to seed catalog", slog.String("error", err.Error()))
			return 1
		}
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:      logger,
		Storefront:  app.Storefront,
		AuthService: app.AuthService,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	// Create web router
	webRouter := web.NewRouter(web.RouterConfig{
		Logger:          logger,
		Storefront:      app.Storefront,
		AuthService:     app.AuthService,
		SessionDuration: cfg.Auth.SessionDuration,
	})

	// Combine routers. Each router recovers its own panics; the outer
	// recovery covers the CORS wrapper and the mux itself.
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	mux.Handle("/", webRouter)
	handler := middleware.Recovery(logger, nil)(mux)

	// Create server
	server := api.NewServer(handler, api.ServerConfig{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: api.DefaultServerConfig().ShutdownTimeout,
	}, logger)

	// Expired sessions are swept in the background
	go app.AuthService.RunCleanup(ctx, 10*time.Minute)

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			return 1
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			return 1
		}
	}

	logger.Info("server stopped")
	return 0
}
