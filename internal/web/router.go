package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/mcoot/gamestore/internal/services/auth"
	"github.com/mcoot/gamestore/internal/services/storefront"
	"github.com/mcoot/gamestore/internal/web/handler"
	"github.com/mcoot/gamestore/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger      *slog.Logger
	Storefront  *storefront.Service
	AuthService *auth.Service
	// SessionDuration sets the session cookie lifetime
	SessionDuration time.Duration
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	mount(r, cfg)
	return r
}

// mount registers the web pages on an existing router
func mount(r *mux.Router, cfg RouterConfig) {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = auth.DefaultConfig().SessionDuration
	}

	// Create middleware
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)

	// Create handlers
	homeHandler := handler.NewHomeHandler()
	authHandler := handler.NewAuthHandler(cfg.Storefront, cfg.AuthService, cfg.SessionDuration)
	catalogHandler := handler.NewCatalogHandler(cfg.Storefront)

	// Public routes (optional auth for showing the user in nav)
	public := r.NewRoute().Subrouter()
	public.Use(recoveryMiddleware)
	public.Use(loggingMiddleware)
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.LoginPage).Methods(http.MethodGet)
	public.HandleFunc("/login", authHandler.Login).Methods(http.MethodPost)
	public.HandleFunc("/signup", authHandler.SignupPage).Methods(http.MethodGet)
	public.HandleFunc("/signup", authHandler.Signup).Methods(http.MethodPost)
	public.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)

	// The catalog is only shown to logged in users
	protected := r.NewRoute().Subrouter()
	protected.Use(recoveryMiddleware)
	protected.Use(loggingMiddleware)
	protected.Use(flashMiddleware)
	protected.Use(authMiddleware)
	protected.HandleFunc("/games", catalogHandler.Games).Methods(http.MethodGet)
	protected.HandleFunc("/games/{id}/purchase", catalogHandler.PurchasePage).Methods(http.MethodGet)
	protected.HandleFunc("/games/{id}/purchase", catalogHandler.Purchase).Methods(http.MethodPost)
	protected.HandleFunc("/library", catalogHandler.Library).Methods(http.MethodGet)
	protected.HandleFunc("/publishers/{id}", catalogHandler.Publisher).Methods(http.MethodGet)
	protected.HandleFunc("/developers/{id}", catalogHandler.Developer).Methods(http.MethodGet)
}
