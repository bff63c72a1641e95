package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// It enforces the same uniqueness rules as the SQL schema.
type Storage struct {
	mu sync.RWMutex

	users      map[model.UserID]*model.User
	emailIndex map[string]model.UserID
	publishers map[model.PublisherID]*model.Publisher
	developers map[model.DeveloperID]*model.Developer
	games      map[model.GameID]*model.Game
	library    map[libraryKey]model.LibraryEntry

	nextUserID      model.UserID
	nextPublisherID model.PublisherID
	nextDeveloperID model.DeveloperID
	nextGameID      model.GameID
}

type libraryKey struct {
	userID model.UserID
	gameID model.GameID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		users:      make(map[model.UserID]*model.User),
		emailIndex: make(map[string]model.UserID),
		publishers: make(map[model.PublisherID]*model.Publisher),
		developers: make(map[model.DeveloperID]*model.Developer),
		games:      make(map[model.GameID]*model.Game),
		library:    make(map[libraryKey]model.LibraryEntry),
	}
}

// Ensure Storage implements the interfaces
var (
	_ storage.Store         = (*Storage)(nil)
	_ storage.CatalogWriter = (*Storage)(nil)
)

// User operations

func (s *Storage) CreateUser(ctx context.Context, user *model.User) (model.UserID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.emailIndex[user.Email]; taken {
		return 0, model.ErrDuplicateEmail
	}
	s.nextUserID++
	stored := *user
	stored.ID = s.nextUserID
	s.users[stored.ID] = &stored
	s.emailIndex[stored.Email] = stored.ID
	return stored.ID, nil
}

func (s *Storage) GetUser(ctx context.Context, id model.UserID) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailIndex[email]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	u := *s.users[id]
	return &u, nil
}

// Catalog operations

func (s *Storage) ListGames(ctx context.Context) ([]model.GameSummary, error) {
	return s.filterGames(func(*model.Game) bool { return true }), nil
}

func (s *Storage) GetGameDetail(ctx context.Context, id model.GameID) (*model.GameDetail, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}

	detail := &model.GameDetail{
		ID:          game.ID,
		Name:        game.Name,
		Description: game.Description,
		ReleaseDate: game.ReleaseDate,
		Price:       game.Price,
		AgeRating:   game.AgeRating,
		PublisherID: game.PublisherID,
		DeveloperID: game.DeveloperID,
	}
	// Left join: a dangling reference simply leaves the name absent
	if game.PublisherID != nil {
		if p, ok := s.publishers[*game.PublisherID]; ok {
			name := p.Name
			detail.PublisherName = &name
		}
	}
	if game.DeveloperID != nil {
		if d, ok := s.developers[*game.DeveloperID]; ok {
			studio := d.Studio
			detail.DeveloperName = &studio
		}
	}
	return detail, nil
}

func (s *Storage) ListGamesByPublisher(ctx context.Context, id model.PublisherID) ([]model.GameSummary, error) {
	return s.filterGames(func(g *model.Game) bool {
		return g.PublisherID != nil && *g.PublisherID == id
	}), nil
}

func (s *Storage) ListGamesByDeveloper(ctx context.Context, id model.DeveloperID) ([]model.GameSummary, error) {
	return s.filterGames(func(g *model.Game) bool {
		return g.DeveloperID != nil && *g.DeveloperID == id
	}), nil
}

func (s *Storage) SearchGames(ctx context.Context, query string) ([]model.GameSummary, error) {
	needle := strings.ToLower(query)
	return s.filterGames(func(g *model.Game) bool {
		return strings.Contains(strings.ToLower(g.Name), needle)
	}), nil
}

// filterGames returns matching games ordered by name, then id
func (s *Storage) filterGames(keep func(*model.Game) bool) []model.GameSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.GameSummary, 0, len(s.games))
	for _, g := range s.games {
		if keep(g) {
			result = append(result, g.Summary())
		}
	}
	slices.SortFunc(result, compareSummaries)
	return result
}

func compareSummaries(a, b model.GameSummary) int {
	if c := cmp.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Library operations

func (s *Storage) AddLibraryEntry(ctx context.Context, entry model.LibraryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[entry.UserID]; !ok {
		return model.ErrUserNotFound
	}
	if _, ok := s.games[entry.GameID]; !ok {
		return model.ErrGameNotFound
	}
	key := libraryKey{userID: entry.UserID, gameID: entry.GameID}
	if _, owned := s.library[key]; owned {
		return model.ErrAlreadyOwned
	}
	s.library[key] = entry
	return nil
}

func (s *Storage) ListLibrary(ctx context.Context, userID model.UserID) ([]model.LibraryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var items []model.LibraryItem
	for key, entry := range s.library {
		if key.userID != userID {
			continue
		}
		items = append(items, model.LibraryItem{
			Game:        s.games[key.gameID].Summary(),
			PurchasedAt: entry.PurchasedAt,
		})
	}
	slices.SortFunc(items, func(a, b model.LibraryItem) int {
		return compareSummaries(a.Game, b.Game)
	})
	return items, nil
}

// Catalog writes. IDs are always assigned by the store.

func (s *Storage) SavePublisher(ctx context.Context, p *model.Publisher) (model.PublisherID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *p
	s.nextPublisherID++
	stored.ID = s.nextPublisherID
	s.publishers[stored.ID] = &stored
	return stored.ID, nil
}

func (s *Storage) SaveDeveloper(ctx context.Context, d *model.Developer) (model.DeveloperID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *d
	s.nextDeveloperID++
	stored.ID = s.nextDeveloperID
	s.developers[stored.ID] = &stored
	return stored.ID, nil
}

func (s *Storage) SaveGame(ctx context.Context, g *model.Game) (model.GameID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *g
	s.nextGameID++
	stored.ID = s.nextGameID
	s.games[stored.ID] = &stored
	return stored.ID, nil
}
