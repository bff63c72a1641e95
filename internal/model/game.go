package model

import "time"

// GameID uniquely identifies a game in the catalog
type GameID int64

// PublisherID uniquely identifies a publisher
type PublisherID int64

// DeveloperID uniquely identifies a developer studio
type DeveloperID int64

// Publisher publishes games
type Publisher struct {
	ID   PublisherID
	Name string
}

// Developer is the studio that made a game
type Developer struct {
	ID     DeveloperID
	Studio string
}

// Game is a catalog row. Catalog data is read-only for the storefront itself;
// it is only written by seeding.
type Game struct {
	ID          GameID
	Name        string
	Description string
	ReleaseDate *time.Time
	Price       float64
	AgeRating   string
	PublisherID *PublisherID
	DeveloperID *DeveloperID
}

// GameSummary is the list view of a game
type GameSummary struct {
	ID    GameID
	Name  string
	Price float64
}

// Summary returns the list view of this game
func (g *Game) Summary() GameSummary {
	return GameSummary{ID: g.ID, Name: g.Name, Price: g.Price}
}

// GameDetail is a game joined with its publisher and developer names.
// Either name may be absent.
type GameDetail struct {
	ID            GameID
	Name          string
	Description   string
	ReleaseDate   *time.Time
	Price         float64
	AgeRating     string
	PublisherID   *PublisherID
	PublisherName *string
	DeveloperID   *DeveloperID
	DeveloperName *string
}

// NotAvailable is shown in place of a missing publisher or developer
const NotAvailable = "N/A"

// PublisherOrNA returns the publisher name or "N/A"
func (d *GameDetail) PublisherOrNA() string {
	if d.PublisherName == nil || *d.PublisherName == "" {
		return NotAvailable
	}
	return *d.PublisherName
}

// DeveloperOrNA returns the developer name or "N/A"
func (d *GameDetail) DeveloperOrNA() string {
	if d.DeveloperName == nil || *d.DeveloperName == "" {
		return NotAvailable
	}
	return *d.DeveloperName
}

// ReleaseDateOrNA formats the release date as YYYY-MM-DD or returns "N/A"
func (d *GameDetail) ReleaseDateOrNA() string {
	if d.ReleaseDate == nil {
		return NotAvailable
	}
	return d.ReleaseDate.Format(DateLayout)
}

// DateLayout is the calendar date format used for release dates and birthdays
const DateLayout = "2006-01-02"
