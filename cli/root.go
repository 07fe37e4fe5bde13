package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"player-registry/config"
)

var (
	cfg    *config.Config
	logger *slog.Logger
)

// NewRootCmd creates the playerd command tree. Running it without a
// subcommand starts the server.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "playerd",
		Short: "Player profile registry",
		Long: `playerd serves the player registry REST API and runs its maintenance tasks.

Configuration is read from the environment (and a .env file when present).`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			cfg = loaded
			logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: cfg.SlogLevel(),
			}))
			slog.SetDefault(logger)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newRelevelCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
