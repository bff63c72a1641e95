package model

import "time"

// LibraryEntry grants a user ownership of a purchased game.
// At most one entry exists per (UserID, GameID).
type LibraryEntry struct {
	UserID      UserID
	GameID      GameID
	PurchasedAt time.Time
}

// LibraryItem is an owned game as shown in a user's library
type LibraryItem struct {
	Game        GameSummary
	PurchasedAt time.Time
}
