// The serve command: attach the store and run the HTTP API until
// interrupted.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/en-arthur/initflow-be/internal/auth"
	"github.com/en-arthur/initflow-be/internal/server"
	"github.com/en-arthur/initflow-be/internal/sqlite"
)

var flagListenAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long:  `Open the store and serve the HTTP API until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig()
		if err != nil {
			return err
		}
		if flagListenAddr != "" {
			cfg.listenAddr = flagListenAddr
		}
		if cfg.jwtSecret == "" {
			return fmt.Errorf("jwt_secret must be set in config.yaml before serving")
		}

		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		slog.SetDefault(logger)

		issuer, err := auth.NewIssuer(cfg.jwtSecret, cfg.tokenTTL)
		if err != nil {
			return err
		}

		store := sqlite.NewStore()
		if err := store.Attach(cfg.store); err != nil {
			return fmt.Errorf("attaching store: %w", err)
		}
		defer store.Detach()
		logger.Info("store attached", "data_dir", cfg.store.DataDir)

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(store, issuer, logger).Run(ctx, cfg.listenAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagListenAddr, "listen", "", "listen address (default from config.yaml, \":8000\")")
}
