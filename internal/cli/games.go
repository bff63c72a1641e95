package cli

import (
	"bufio"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Browse and buy games",
	}

	cmd.AddCommand(newGamesListCmd())
	cmd.AddCommand(newGamesShowCmd())
	cmd.AddCommand(newGamesSearchCmd())
	cmd.AddCommand(newGamesBuyCmd())

	return cmd
}

func newGamesListCmd() *cobra.Command {
	var publisher, developer int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/games"
			switch {
			case publisher > 0 && developer > 0:
				return fmt.Errorf("--publisher and --developer are mutually exclusive")
			case publisher > 0:
				path = fmt.Sprintf("/api/v1/publishers/%d/games", publisher)
			case developer > 0:
				path = fmt.Sprintf("/api/v1/developers/%d/games", developer)
			}

			var result GameList
			if err := client.Get(path, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().Int64Var(&publisher, "publisher", 0, "Only games from this publisher id")
	cmd.Flags().Int64Var(&developer, "developer", 0, "Only games from this developer id")

	return cmd
}

func newGamesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show game details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			var result GameDetail
			if err := client.Get(fmt.Sprintf("/api/v1/games/%d", id), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newGamesSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Search games by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{"q": {strings.Join(args, " ")}}

			var result GameList
			if err := client.Get("/api/v1/games?"+query.Encode(), &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func newGamesBuyCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "buy <id>",
		Short: "Buy a game (asks for confirmation)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseGameID(args[0])
			if err != nil {
				return err
			}

			if !yes {
				var game GameDetail
				if err := client.Get(fmt.Sprintf("/api/v1/games/%d", id), &game); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Buy %s for %s? [y/N]: ", game.Name, formatPrice(game.Price))
				answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
					output(cmd).PrintMessage("Purchase cancelled.")
					return nil
				}
			}

			var result PurchaseResult
			if err := client.Post(fmt.Sprintf("/api/v1/games/%d/purchase", id), nil, &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newLibraryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "library",
		Short: "List the games you own",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Library

			if err := client.Get("/api/v1/library", &result); err != nil {
				return err
			}

			output(cmd).Print(result)
			return nil
		},
	}
}

func parseGameID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid game id %q", s)
	}
	return id, nil
}
