package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/gamestore/internal/config"
	"github.com/mcoot/gamestore/internal/factory"
	"github.com/mcoot/gamestore/internal/shell"
)

// openLocal builds the application from server configuration, logging to
// the command's stderr
func openLocal(cmd *cobra.Command, configPath string) (*factory.App, *config.Config, error) {
	serverCfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	app, err := factory.New(cmd.Context(), factory.Config{
		Store:  serverCfg.Store,
		Redis:  serverCfg.Redis,
		Auth:   serverCfg.Auth,
		Logger: serverCfg.Log.NewLogger(cmd.ErrOrStderr()),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	return app, serverCfg, nil
}

func newShellCmd() *cobra.Command {
	var configPath string
	var seedCatalog bool

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Run the interactive store against the configured database",
		Long: `shell opens the store configured by --config and the GAMESTORE_*
environment variables and starts the interactive terminal client.
It does not talk to a server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, serverCfg, err := openLocal(cmd, configPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if seedCatalog || serverCfg.Store.Seed {
				if _, _, err := app.Seed(cmd.Context()); err != nil {
					return fmt.Errorf("seed catalog: %w", err)
				}
			}

			return shell.Run(cmd.Context(), app.Storefront, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	cmd.Flags().BoolVar(&seedCatalog, "seed", false, "Load the sample catalog if the store is empty")

	return cmd
}

func newSeedCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the sample catalog into an empty store",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := openLocal(cmd, configPath)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			res, loaded, err := app.Seed(cmd.Context())
			if err != nil {
				return fmt.Errorf("seed catalog: %w", err)
			}

			output(cmd).Print(SeedResult{
				Loaded:     loaded,
				Publishers: res.Publishers,
				Developers: res.Developers,
				Games:      res.Games,
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	return cmd
}
