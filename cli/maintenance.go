package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"player-registry/services"
	"player-registry/storage/sqlstore"
	"player-registry/utils"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the player table in Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.DatabaseURL == "" {
				return fmt.Errorf("DATABASE_URL environment variable not set")
			}
			store, err := sqlstore.Open(cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer closeStore(store)

			if err := store.Migrate(); err != nil {
				return err
			}
			logger.Info("migration complete")
			return nil
		},
	}
}

func newRelevelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "relevel",
		Short: "Recompute level and untilNextLevel for every stored player",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			fixed, err := services.NewPlayerService(store, logger).Relevel(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "corrected %d player(s)\n", fixed)
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var label string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Upload a JSON snapshot of all players to the R2 bucket",
		RunE: func(cmd *cobra.Command, args []string) error {
			uploader, err := utils.NewSnapshotUploader(cmd.Context(), cfg.ObjectStore)
			if err != nil {
				return err
			}

			store, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer closeStore(store)

			players, err := services.NewPlayerService(store, logger).Snapshot(cmd.Context())
			if err != nil {
				return err
			}

			key, err := uploader.Upload(cmd.Context(), label, players)
			if err != nil {
				return err
			}
			logger.Info("snapshot uploaded",
				slog.String("bucket", cfg.ObjectStore.Bucket),
				slog.String("key", key),
				slog.Int("players", len(players)),
			)
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}

	cmd.Flags().StringVar(&label, "label", "players", "Label used in the snapshot object name")
	return cmd
}
