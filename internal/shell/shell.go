// Package shell is the interactive terminal client. It owns one
// navigator.Controller, so one user is logged in per process.
package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/navigator"
	"github.com/mcoot/gamestore/internal/services/storefront"
)

// Storefront is what the views need from the data access layer
type Storefront interface {
	Register(ctx context.Context, in storefront.RegisterInput) (model.UserID, error)
	Login(ctx context.Context, email, password string) (model.SessionUser, error)
	ListGames(ctx context.Context) []model.GameSummary
	GetGameDetails(ctx context.Context, id model.GameID) (*model.GameDetail, bool)
	Purchase(ctx context.Context, userID model.UserID, gameID model.GameID) error
	Library(ctx context.Context, userID model.UserID) ([]model.LibraryItem, error)
	SearchGames(ctx context.Context, query string) ([]model.GameSummary, error)
}

// Terminal reads commands line by line and writes output
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewTerminal wraps the given input and output
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewScanner(in), out: out}
}

// prompt writes label and returns the next input line, trimmed.
// It returns io.EOF once input is exhausted.
func (t *Terminal) prompt(label string) (string, error) {
	_, _ = fmt.Fprint(t.out, label)
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(t.in.Text()), nil
}

// confirm asks a yes/no question. Only an explicit yes counts.
func (t *Terminal) confirm(question string) (bool, error) {
	answer, err := t.prompt(question + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (t *Terminal) println(a ...any) {
	_, _ = fmt.Fprintln(t.out, a...)
}

func (t *Terminal) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(t.out, format, a...)
}

// Views builds the view table for a terminal session
func Views(store Storefront, term *Terminal) navigator.Table {
	return navigator.Table{
		navigator.ViewLogin:   &LoginView{store: store, term: term},
		navigator.ViewSignup:  &SignupView{store: store, term: term},
		navigator.ViewCatalog: &CatalogView{store: store, term: term},
	}
}

// Run starts an interactive session on in and out and returns when the user
// quits or input ends.
func Run(ctx context.Context, store Storefront, in io.Reader, out io.Writer) error {
	term := NewTerminal(in, out)
	controller, err := navigator.New(Views(store, term))
	if err != nil {
		return err
	}
	term.println("Welcome to the Game Store.")
	if err := controller.Run(ctx); err != nil {
		return err
	}
	term.println("Goodbye.")
	return nil
}

func formatPrice(price float64) string {
	return fmt.Sprintf("$%.2f", price)
}
