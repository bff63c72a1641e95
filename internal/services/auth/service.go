// Package auth keeps the login sessions of the web and API surfaces.
// Credentials are checked by the storefront; this package only maps opaque
// tokens to the identity that logged in.
package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/mcoot/gamestore/internal/dependencies/clock"
	"github.com/mcoot/gamestore/internal/dependencies/random"
	"github.com/mcoot/gamestore/internal/model"
)

// Errors
var (
	ErrInvalidSession = errors.New("invalid or expired session")
)

const tokenPrefix = "sess_"

// Authenticator checks an email and password pair
type Authenticator interface {
	Login(ctx context.Context, email, password string) (model.SessionUser, error)
}

// Session represents an authenticated session
type Session struct {
	Token     string
	User      model.SessionUser
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles session management
type Service struct {
	authenticator Authenticator
	random        random.Random
	clock         clock.Clock

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new auth Service
func New(authenticator Authenticator, random random.Random, clock clock.Clock, cfg Config) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		authenticator:   authenticator,
		random:          random,
		clock:           clock,
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
	}
}

// Login authenticates a user and creates a session. Errors from the
// authenticator are returned unchanged.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.authenticator.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.createSession(user), nil
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// CurrentUser returns the identity behind a session token
func (s *Service) CurrentUser(token string) (model.SessionUser, error) {
	session, err := s.ValidateSession(token)
	if err != nil {
		return model.SessionUser{}, err
	}
	return session.User, nil
}

func (s *Service) createSession(user model.SessionUser) *Session {
	now := s.clock.Now()
	session := &Session{
		Token:     s.random.Token(tokenPrefix),
		User:      user,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[session.Token] = session
	s.mu.Unlock()

	return session
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
		}
	}
}

// RunCleanup calls CleanExpiredSessions every interval until ctx is done
func (s *Service) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.CleanExpiredSessions()
		}
	}
}
