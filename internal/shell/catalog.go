package shell

import (
	"context"
	"strconv"
	"strings"

	"github.com/mcoot/gamestore/internal/model"
	"github.com/mcoot/gamestore/internal/navigator"
	"github.com/mcoot/gamestore/internal/services/storefront"
)

const catalogHelp = `Commands:
  list            show all games
  show N          show details of game N from the list
  buy [N]         purchase the selected game, or game N
  search TEXT     find games by name
  library         show the games you own
  logout          log out
  quit            exit`

// CatalogView lists games, shows details and purchases. The last listing is
// kept between commands so "show N" refers to what the user saw.
type CatalogView struct {
	store Storefront
	term  *Terminal

	games    []model.GameSummary
	selected *model.GameDetail
}

func (v *CatalogView) Run(ctx context.Context, c *navigator.Controller) (navigator.ViewID, error) {
	user, ok := c.CurrentUser()
	if !ok {
		return navigator.ViewLogin, nil
	}

	v.term.println()
	v.term.printf("== Game Store == logged in as %s (type \"help\" for commands)\n", user.Name)
	v.selected = nil
	v.showList(v.store.ListGames(ctx))

	for {
		line, err := v.term.prompt("store> ")
		if err != nil {
			return navigator.ViewCatalog, err
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch strings.ToLower(cmd) {
		case "":
		case "help", "?":
			v.term.println(catalogHelp)
		case "list", "ls":
			v.showList(v.store.ListGames(ctx))
		case "show":
			v.show(ctx, arg)
		case "buy":
			if arg != "" && !v.show(ctx, arg) {
				continue
			}
			if err := v.buy(ctx, user); err != nil {
				return navigator.ViewCatalog, err
			}
		case "search":
			games, err := v.store.SearchGames(ctx, arg)
			if err != nil {
				v.term.println("Search failed:", model.UserMessage(err))
				continue
			}
			v.showList(games)
		case "library":
			v.showLibrary(ctx, user)
		case "logout":
			c.Logout()
			v.term.println("Logged out.")
			return navigator.ViewLogin, nil
		case "quit", "exit":
			return navigator.ViewCatalog, navigator.ErrQuit
		default:
			v.term.printf("Unknown command %q, type \"help\".\n", cmd)
		}
	}
}

func (v *CatalogView) showList(games []model.GameSummary) {
	v.games = games
	if len(games) == 0 {
		v.term.println("No games found.")
		return
	}
	for i, g := range games {
		v.term.printf("%3d. %-40s %10s\n", i+1, g.Name, formatPrice(g.Price))
	}
}

// show selects the game at list position arg and prints its details
func (v *CatalogView) show(ctx context.Context, arg string) bool {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(v.games) {
		v.term.printf("Pick a game number between 1 and %d.\n", len(v.games))
		return false
	}

	detail, ok := v.store.GetGameDetails(ctx, v.games[n-1].ID)
	if !ok {
		v.selected = nil
		v.term.println("Could not fetch game details.")
		return false
	}
	v.selected = detail

	v.term.println()
	v.term.println(detail.Name)
	v.term.printf("  Price:       %s\n", formatPrice(detail.Price))
	v.term.printf("  Released:    %s\n", detail.ReleaseDateOrNA())
	v.term.printf("  Age rating:  %s\n", orNA(detail.AgeRating))
	v.term.printf("  Publisher:   %s\n", detail.PublisherOrNA())
	v.term.printf("  Developer:   %s\n", detail.DeveloperOrNA())
	if detail.Description != "" {
		v.term.println()
		v.term.println("  " + detail.Description)
	}
	return true
}

func (v *CatalogView) buy(ctx context.Context, user model.SessionUser) error {
	if v.selected == nil {
		v.term.println("Please select a game to purchase.")
		return nil
	}
	yes, err := v.term.confirm("Do you want to purchase " + v.selected.Name + "?")
	if err != nil {
		return err
	}
	if !yes {
		v.term.println("Purchase cancelled.")
		return nil
	}
	if err := v.store.Purchase(ctx, user.ID, v.selected.ID); err != nil {
		v.term.println("Purchase failed:", model.UserMessage(err))
		return nil
	}
	v.term.println(storefront.MsgPurchased)
	return nil
}

func (v *CatalogView) showLibrary(ctx context.Context, user model.SessionUser) {
	items, err := v.store.Library(ctx, user.ID)
	if err != nil {
		v.term.println("Could not fetch your library:", model.UserMessage(err))
		return
	}
	if len(items) == 0 {
		v.term.println("You do not own any games yet.")
		return
	}
	for _, item := range items {
		v.term.printf("  %-40s purchased %s\n", item.Game.Name, item.PurchasedAt.Format(model.DateLayout))
	}
}

func orNA(s string) string {
	if s == "" {
		return model.NotAvailable
	}
	return s
}
