// Package storefront is the data access layer of the store: accounts,
// catalog reads and purchases. Every error it returns is either one of the
// model sentinels, a *model.ValidationError or a *model.StoreError; the
// cause of a StoreError is logged here and never shown to users.
package storefront

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mcoot/gamestore/internal/dependencies/clock"
	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/services/credential"
	"github.com/mcoot/gamestore/internal/storage"
)

// User-facing outcome messages
const (
	MsgRegistered = "User created successfully! Please log in."
	MsgLoggedIn   = "Login successful!"
	MsgPurchased  = "Game purchased successfully!"

	msgRegisterRequired = "Username, email, and password are required."
	msgLoginRequired    = "Email and password cannot be empty."
	msgBadDOB           = "Date of birth must be in YYYY-MM-DD format."
	msgBadGameID        = "A game must be selected."
	msgBadUserID        = "You must be logged in."
)

// Service implements the storefront operations on top of a Store
type Service struct {
	store  storage.Store
	creds  *credential.Service
	clock  clock.Clock
	logger *slog.Logger
}

// New creates a storefront service
func New(store storage.Store, creds *credential.Service, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		store:  store,
		creds:  creds,
		clock:  clock,
		logger: logger,
	}
}

// RegisterInput is the signup form. DOB is optional.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	DOB      string
}

// Register creates an account. It does not log the user in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (model.UserID, error) {
	username := strings.TrimSpace(in.Username)
	email := normalizeEmail(in.Email)
	switch {
	case username == "":
		return 0, model.NewValidationError("username", msgRegisterRequired)
	case email == "":
		return 0, model.NewValidationError("email", msgRegisterRequired)
	case in.Password == "":
		return 0, model.NewValidationError("password", msgRegisterRequired)
	}

	var dob *time.Time
	if raw := strings.TrimSpace(in.DOB); raw != "" {
		parsed, err := time.Parse(model.DateLayout, raw)
		if err != nil {
			return 0, model.NewValidationError("dob", msgBadDOB)
		}
		dob = &parsed
	}

	hash, err := s.creds.Hash(in.Password)
	if errors.Is(err, credential.ErrPasswordTooLong) {
		return 0, model.NewValidationError("password", "Password is too long.")
	}
	if err != nil {
		return 0, s.storeError(ctx, "register", err)
	}

	id, err := s.store.CreateUser(ctx, &model.User{
		Name:         username,
		Email:        email,
		PasswordHash: hash,
		DOB:          dob,
	})
	if errors.Is(err, model.ErrDuplicateEmail) {
		return 0, model.ErrDuplicateEmail
	}
	if err != nil {
		return 0, s.storeError(ctx, "register", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", id)
	return id, nil
}

// normalizeEmail makes addresses compare case-insensitively, so A@x.com and
// a@x.com are one account.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Login checks credentials. An unknown email and a wrong password produce
// the same ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, password string) (model.SessionUser, error) {
	email = normalizeEmail(email)
	if email == "" {
		return model.SessionUser{}, model.NewValidationError("email", msgLoginRequired)
	}
	if password == "" {
		return model.SessionUser{}, model.NewValidationError("password", msgLoginRequired)
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.SessionUser{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.SessionUser{}, s.storeError(ctx, "login", err)
	}

	if !s.creds.Verify(password, user.PasswordHash) {
		return model.SessionUser{}, model.ErrInvalidCredentials
	}
	return user.SessionUser(), nil
}

// ListGames returns the whole catalog ordered by name. A store failure is
// logged and yields an empty list.
func (s *Service) ListGames(ctx context.Context) []model.GameSummary {
	games, err := s.store.ListGames(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "could not fetch games", "error", err)
		return []model.GameSummary{}
	}
	return games
}

// GetGameDetails returns the joined detail of a game. ok is false when the
// game does not exist or the store failed; failures are logged.
func (s *Service) GetGameDetails(ctx context.Context, id model.GameID) (*model.GameDetail, bool) {
	if id <= 0 {
		return nil, false
	}
	detail, err := s.store.GetGameDetail(ctx, id)
	if errors.Is(err, model.ErrGameNotFound) {
		return nil, false
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "could not fetch game details", "game_id", id, "error", err)
		return nil, false
	}
	return detail, true
}

// Purchase adds a game to the user's library, stamped with the current time
func (s *Service) Purchase(ctx context.Context, userID model.UserID, gameID model.GameID) error {
	if userID <= 0 {
		return model.NewValidationError("user", msgBadUserID)
	}
	if gameID <= 0 {
		return model.NewValidationError("game", msgBadGameID)
	}

	err := s.store.AddLibraryEntry(ctx, model.LibraryEntry{
		UserID:      userID,
		GameID:      gameID,
		PurchasedAt: s.clock.Now(),
	})
	switch {
	case err == nil:
		s.logger.InfoContext(ctx, "game purchased", "user_id", userID, "game_id", gameID)
		return nil
	case errors.Is(err, model.ErrAlreadyOwned),
		errors.Is(err, model.ErrGameNotFound),
		errors.Is(err, model.ErrUserNotFound):
		return err
	default:
		return s.storeError(ctx, "purchase", err)
	}
}

// Library lists the games a user owns, ordered by name
func (s *Service) Library(ctx context.Context, userID model.UserID) ([]model.LibraryItem, error) {
	if userID <= 0 {
		return nil, model.NewValidationError("user", msgBadUserID)
	}
	items, err := s.store.ListLibrary(ctx, userID)
	if err != nil {
		return nil, s.storeError(ctx, "library", err)
	}
	return items, nil
}

// GamesByPublisher lists a publisher's games, ordered by name
func (s *Service) GamesByPublisher(ctx context.Context, id model.PublisherID) ([]model.GameSummary, error) {
	games, err := s.store.ListGamesByPublisher(ctx, id)
	if err != nil {
		return nil, s.storeError(ctx, "games by publisher", err)
	}
	return games, nil
}

// GamesByDeveloper lists a developer's games, ordered by name
func (s *Service) GamesByDeveloper(ctx context.Context, id model.DeveloperID) ([]model.GameSummary, error) {
	games, err := s.store.ListGamesByDeveloper(ctx, id)
	if err != nil {
		return nil, s.storeError(ctx, "games by developer", err)
	}
	return games, nil
}

// SearchGames matches query against game names, ignoring case. An empty
// query lists the whole catalog.
func (s *Service) SearchGames(ctx context.Context, query string) ([]model.GameSummary, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListGames(ctx), nil
	}
	games, err := s.store.SearchGames(ctx, query)
	if err != nil {
		return nil, s.storeError(ctx, "search games", err)
	}
	return games, nil
}

func (s *Service) storeError(ctx context.Context, op string, err error) error {
	s.logger.ErrorContext(ctx, "store operation failed", "op", op, "error", err)
	return model.NewStoreError(op, err)
}
