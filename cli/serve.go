package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"player-registry/handlers"
	"player-registry/services"
	"player-registry/workers"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore(store)

	playerService := services.NewPlayerService(store, logger)

	if cfg.RelevelInterval > 0 {
		reconciler := workers.NewLevelReconciler(playerService, cfg.RelevelInterval, logger)
		if err := reconciler.Start(ctx); err != nil {
			return err
		}
		defer reconciler.Stop()
	}

	app := handlers.NewApp(handlers.AppConfig{
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		Players:        handlers.NewPlayerHandler(playerService, logger, cfg.DefaultPageSize),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(addr)
	}()

	logger.Info("server started",
		slog.String("addr", addr),
		slog.String("store", cfg.StoreBackend),
		slog.Any("allowed_origins", cfg.AllowedOrigins),
	)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
