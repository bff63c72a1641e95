package mocks

import (
	"strconv"
	"sync"

	"github.com/mcoot/gamestore/internal/dependencies/random"
)

// MockRandom is a mock implementation of Random for testing
type MockRandom struct {
	mu sync.Mutex

	// TokenResults is a queue of results to return from Token
	TokenResults []string
	tokenIndex   int

	// generated counts tokens handed out after the queue ran dry
	generated int
}

// Ensure MockRandom implements Random
var _ random.Random = (*MockRandom)(nil)

// NewMockRandom creates a new MockRandom
func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Token returns the next queued result. Once the queue is empty it returns
// prefix followed by an increasing counter, so tokens stay unique.
func (r *MockRandom) Token(prefix string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.tokenIndex < len(r.TokenResults) {
		result := r.TokenResults[r.tokenIndex]
		r.tokenIndex++
		return result
	}
	r.generated++
	return prefix + strconv.Itoa(r.generated)
}

// QueueToken adds values to the Token result queue
func (r *MockRandom) QueueToken(values ...string) {
	r.mu.Lock()
	r.TokenResults = append(r.TokenResults, values...)
	r.mu.Unlock()
}

// Reset clears all queued results
func (r *MockRandom) Reset() {
	r.mu.Lock()
	r.TokenResults = nil
	r.tokenIndex = 0
	r.generated = 0
	r.mu.Unlock()
}
