package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/mcoot/gamestore/internal/api/handler"
	"github.com/mcoot/gamestore/internal/api/middleware"
	"github.com/mcoot/gamestore/internal/api/response"
	"github.com/mcoot/gamestore/internal/services/auth"
	"github.com/mcoot/gamestore/internal/services/storefront"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger      *slog.Logger
	Storefront  *storefront.Service
	AuthService *auth.Service
	// CORSOrigins enables cross-origin requests from the listed origins.
	// Empty disables CORS handling.
	CORSOrigins []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()
	mount(r, cfg)

	if len(cfg.CORSOrigins) == 0 {
		return r
	}
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})
	return c.Handler(r)
}

// mount registers the /api/v1 routes on an existing router
func mount(r *mux.Router, cfg RouterConfig) {
	// Create handlers
	accountHandler := handler.NewAccountHandler(cfg.Storefront, cfg.AuthService)
	catalogHandler := handler.NewCatalogHandler(cfg.Storefront)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Account routes (no auth required for registering/logging in)
	api.HandleFunc("/accounts/register", accountHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/accounts/login", accountHandler.Login).Methods(http.MethodPost)

	// Protected account routes
	accounts := api.PathPrefix("/accounts").Subrouter()
	accounts.Use(authMiddleware)
	accounts.HandleFunc("/me", accountHandler.GetMe).Methods(http.MethodGet)
	accounts.HandleFunc("/logout", accountHandler.Logout).Methods(http.MethodPost)

	// Catalog routes are public
	api.HandleFunc("/games", catalogHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", catalogHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/publishers/{id}/games", catalogHandler.ByPublisher).Methods(http.MethodGet)
	api.HandleFunc("/developers/{id}/games", catalogHandler.ByDeveloper).Methods(http.MethodGet)

	// Purchasing and the library require auth
	protected := api.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/games/{id}/purchase", catalogHandler.Purchase).Methods(http.MethodPost)
	protected.HandleFunc("/library", catalogHandler.Library).Methods(http.MethodGet)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler(cfg.Storefront)).Methods(http.MethodGet)
}

func healthHandler(sf *storefront.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, http.StatusOK, response.Health{
			Status: "ok",
			Games:  len(sf.ListGames(r.Context())),
		})
	}
}
