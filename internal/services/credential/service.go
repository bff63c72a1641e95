// Package credential hashes and verifies account passwords with bcrypt.
package credential

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned for passwords bcrypt cannot hash without
// truncating them.
var ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

// Config holds configuration for the credential service
type Config struct {
	// Cost is the bcrypt work factor
	Cost int
}

// DefaultConfig returns default credential configuration
func DefaultConfig() Config {
	return Config{Cost: bcrypt.DefaultCost}
}

// Service hashes passwords and checks them against stored hashes
type Service struct {
	cost int
}

// New creates a credential service. An out of range cost falls back to
// bcrypt.DefaultCost.
func New(cfg Config) *Service {
	cost := cfg.Cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{cost: cost}
}

// Hash returns a salted bcrypt hash of password. Hashing the same password
// twice yields different hashes.
func (s *Service) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrPasswordTooLong
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether password matches hash. A malformed hash never
// matches.
func (s *Service) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
