package response

import (
	"time"

	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/services/auth"
)

// User represents the logged in user in API responses
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// UserFromModel converts a model.SessionUser to a response User
func UserFromModel(u model.SessionUser) User {
	return User{ID: int64(u.ID), Name: u.Name}
}

// AuthResponse is the response for the login endpoint
type AuthResponse struct {
	User         User      `json:"user"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		User:         UserFromModel(s.User),
		SessionToken: s.Token,
		ExpiresAt:    s.ExpiresAt,
	}
}

// RegisterResponse is the response after creating an account
type RegisterResponse struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

// Message is a plain confirmation
type Message struct {
	Message string `json:"message"`
}

// GameSummary represents a catalog entry
type GameSummary struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// GameSummaryFromModel converts model.GameSummary
func GameSummaryFromModel(g model.GameSummary) GameSummary {
	return GameSummary{ID: int64(g.ID), Name: g.Name, Price: g.Price}
}

// GameList is a list of catalog entries
type GameList struct {
	Games []GameSummary `json:"games"`
}

// GameListFromModel converts a slice of model.GameSummary
func GameListFromModel(games []model.GameSummary) GameList {
	list := GameList{Games: make([]GameSummary, len(games))}
	for i, g := range games {
		list.Games[i] = GameSummaryFromModel(g)
	}
	return list
}

// Ref names a publisher or developer
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GameDetail represents a game with its publisher and developer.
// Absent fields are null.
type GameDetail struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ReleaseDate *string `json:"release_date"`
	Price       float64 `json:"price"`
	AgeRating   string  `json:"age_rating"`
	Publisher   *Ref    `json:"publisher"`
	Developer   *Ref    `json:"developer"`
}

// GameDetailFromModel converts model.GameDetail
func GameDetailFromModel(d *model.GameDetail) GameDetail {
	resp := GameDetail{
		ID:          int64(d.ID),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		AgeRating:   d.AgeRating,
	}
	if d.ReleaseDate != nil {
		released := d.ReleaseDate.Format(model.DateLayout)
		resp.ReleaseDate = &released
	}
	if d.PublisherID != nil && d.PublisherName != nil {
		resp.Publisher = &Ref{ID: int64(*d.PublisherID), Name: *d.PublisherName}
	}
	if d.DeveloperID != nil && d.DeveloperName != nil {
		resp.Developer = &Ref{ID: int64(*d.DeveloperID), Name: *d.DeveloperName}
	}
	return resp
}

// LibraryItem is an owned game
type LibraryItem struct {
	Game        GameSummary `json:"game"`
	PurchasedAt time.Time   `json:"purchased_at"`
}

// Library lists owned games
type Library struct {
	Items []LibraryItem `json:"items"`
}

// LibraryFromModel converts a slice of model.LibraryItem
func LibraryFromModel(items []model.LibraryItem) Library {
	lib := Library{Items: make([]LibraryItem, len(items))}
	for i, item := range items {
		lib.Items[i] = LibraryItem{Game: GameSummaryFromModel(item.Game), PurchasedAt: item.PurchasedAt}
	}
	return lib
}

// PurchaseResponse confirms a purchase
type PurchaseResponse struct {
	GameID  int64  `json:"game_id"`
	Message string `json:"message"`
}

// Health reports service status
type Health struct {
	Status string `json:"status"`
	Games  int    `json:"games"`
}
