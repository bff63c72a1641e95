package factory

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/gamestore/internal/config"
	"github.com/mcoot/gamestore/internal/dependencies/mocks"
	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/storage/memory"
	"github.com/mcoot/gamestore/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Memory is the backend, for seeding and inspection
	Memory *memory.Storage

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App on a memory store with mocked dependencies and
// the cheapest bcrypt cost
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, store, mockClock, mockRandom, config.AuthConfig{
		SessionDuration: 24 * time.Hour,
		BcryptCost:      bcrypt.MinCost,
	}, testutil.NopLogger())

	return &TestApp{
		App:        app,
		Memory:     store,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// AddGame writes a game with an optional publisher and developer name
func (t *TestApp) AddGame(name string, price float64, publisher, developer string) model.GameID {
	ctx := context.Background()
	game := &model.Game{Name: name, Price: price, Description: name + " description", AgeRating: "E"}
	if publisher != "" {
		id, _ := t.Memory.SavePublisher(ctx, &model.Publisher{Name: publisher})
		game.PublisherID = &id
	}
	if developer != "" {
		id, _ := t.Memory.SaveDeveloper(ctx, &model.Developer{Studio: developer})
		game.DeveloperID = &id
	}
	id, _ := t.Memory.SaveGame(ctx, game)
	return id
}
