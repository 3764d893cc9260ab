package main

import (
	"context"
	"fmt"
	"os"

	"customers-api/internal/config"
	"customers-api/internal/db"
	"customers-api/internal/logging"
	"customers-api/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the customers schema",
	}
	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withPool(cmd.Context(), migrate.Apply)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back every migration",
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withPool(cmd.Context(), migrate.Rollback)
			},
		},
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func withPool(ctx context.Context, step func(context.Context, *pgxpool.Pool, *logrus.Logger) error) error {
	cfg := config.FromEnv()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	pool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBConnectTimeout, logger)
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer pool.Close()

	return step(ctx, pool, logger)
}
