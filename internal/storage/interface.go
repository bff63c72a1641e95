package storage

import (
	"context"

	"github.com/mcoot/gamestore/internal/model"
)

// Store defines the interface for data persistence
type Store interface {
	// User operations
	CreateUser(ctx context.Context, user *model.User) (model.UserID, error)
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// Catalog operations
	ListGames(ctx context.Context) ([]model.GameSummary, error)
	GetGameDetail(ctx context.Context, id model.GameID) (*model.GameDetail, error)
	ListGamesByPublisher(ctx context.Context, id model.PublisherID) ([]model.GameSummary, error)
	ListGamesByDeveloper(ctx context.Context, id model.DeveloperID) ([]model.GameSummary, error)
	SearchGames(ctx context.Context, query string) ([]model.GameSummary, error)

	// Library operations
	AddLibraryEntry(ctx context.Context, entry model.LibraryEntry) error
	ListLibrary(ctx context.Context, userID model.UserID) ([]model.LibraryItem, error)
}

// CatalogWriter loads catalog rows. The storefront never writes the catalog;
// this is used by seeding and tests.
type CatalogWriter interface {
	SavePublisher(ctx context.Context, p *model.Publisher) (model.PublisherID, error)
	SaveDeveloper(ctx context.Context, d *model.Developer) (model.DeveloperID, error)
	SaveGame(ctx context.Context, g *model.Game) (model.GameID, error)
}

// Backend is a primary store: it serves the storefront and accepts catalog
// writes. Caches wrap a Backend but are not one.
type Backend interface {
	Store
	CatalogWriter
}
