package random

import (
	"crypto/rand"
	"encoding/base64"
)

// tokenBytes is the entropy of a generated token
const tokenBytes = 32

// Random produces unguessable tokens and can be mocked for testing
type Random interface {
	// Token returns a new random token starting with prefix
	Token(prefix string) string
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Token returns prefix followed by 32 random bytes, URL-safe base64 encoded
func (r *CryptoRandom) Token(prefix string) string {
	b := make([]byte, tokenBytes)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}
