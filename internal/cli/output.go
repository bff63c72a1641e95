package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
	} else {
		_, _ = fmt.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case RegisterResult:
		_, _ = fmt.Fprintf(o.w, "%s (user %d)\n", v.Message, v.UserID)
	case GameList:
		o.printGameList(v)
	case GameDetail:
		o.printGameDetail(v)
	case PurchaseResult:
		_, _ = fmt.Fprintln(o.w, v.Message)
	case Library:
		o.printLibrary(v)
	case HealthResult:
		_, _ = fmt.Fprintf(o.w, "Status: %s\nGames: %d\n", v.Status, v.Games)
	case SeedResult:
		o.printSeedResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// AuthResult combines user and token
type AuthResult struct {
	User         User      `json:"user"`
	SessionToken string    `json:"session_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// RegisterResult response type
type RegisterResult struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

// GameSummary response type
type GameSummary struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// GameList response type
type GameList struct {
	Games []GameSummary `json:"games"`
}

// Ref names a publisher or developer
type Ref struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GameDetail response type
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

// PurchaseResult response type
type PurchaseResult struct {
	GameID  int64  `json:"game_id"`
	Message string `json:"message"`
}

// LibraryItem response type
type LibraryItem struct {
	Game        GameSummary `json:"game"`
	PurchasedAt time.Time   `json:"purchased_at"`
}

// Library response type
type Library struct {
	Items []LibraryItem `json:"items"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
	Games  int    `json:"games"`
}

// SeedResult reports what the seed command wrote
type SeedResult struct {
	Loaded     bool `json:"loaded"`
	Publishers int  `json:"publishers"`
	Developers int  `json:"developers"`
	Games      int  `json:"games"`
}

func (o *Output) printUser(u User) {
	_, _ = fmt.Fprintf(o.w, "User: %s (%d)\n", u.Name, u.ID)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	_, _ = fmt.Fprintf(o.w, "Token: %s\n", a.SessionToken)
	_, _ = fmt.Fprintf(o.w, "Expires: %s\n", a.ExpiresAt.Format(time.RFC3339))
}

func (o *Output) printGameList(l GameList) {
	if len(l.Games) == 0 {
		_, _ = fmt.Fprintln(o.w, "No games found.")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tPRICE")
	for _, g := range l.Games {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", g.ID, g.Name, formatPrice(g.Price))
	}
	_ = tw.Flush()
}

func (o *Output) printGameDetail(d GameDetail) {
	_, _ = fmt.Fprintf(o.w, "%s (%d)\n", d.Name, d.ID)
	if d.Description != "" {
		_, _ = fmt.Fprintf(o.w, "%s\n", d.Description)
	}
	_, _ = fmt.Fprintf(o.w, "Release date: %s\n", orNA(d.ReleaseDate))
	_, _ = fmt.Fprintf(o.w, "Price: %s\n", formatPrice(d.Price))
	_, _ = fmt.Fprintf(o.w, "Age rating: %s\n", d.AgeRating)
	_, _ = fmt.Fprintf(o.w, "Publisher: %s\n", refName(d.Publisher))
	_, _ = fmt.Fprintf(o.w, "Developer: %s\n", refName(d.Developer))
}

func (o *Output) printLibrary(l Library) {
	if len(l.Items) == 0 {
		_, _ = fmt.Fprintln(o.w, "You do not own any games yet.")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tPURCHASED")
	for _, item := range l.Items {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\n", item.Game.ID, item.Game.Name, item.PurchasedAt.Format("2006-01-02"))
	}
	_ = tw.Flush()
}

func (o *Output) printSeedResult(r SeedResult) {
	if !r.Loaded {
		_, _ = fmt.Fprintln(o.w, "Catalog already has games; nothing loaded.")
		return
	}
	_, _ = fmt.Fprintf(o.w, "Loaded %d games, %d publishers, %d developers.\n", r.Games, r.Publishers, r.Developers)
}

func formatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}

func orNA(s *string) string {
	if s == nil || *s == "" {
		return "N/A"
	}
	return *s
}

func refName(r *Ref) string {
	if r == nil {
		return "N/A"
	}
	return orNA(&r.Name)
}
