package main

import (
	"context"
	"fmt"
	"time"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/postgres"
	"github.com/api-sage/intl-payments-portal/src/internal/config"
	"github.com/api-sage/intl-payments-portal/src/internal/logger"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.StorageDriver != config.StorageDriverPostgres {
				return fmt.Errorf("migrate requires STORAGE_DRIVER=%s", config.StorageDriverPostgres)
			}
			if dir != "" {
				cfg.MigrationsDir = dir
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			db, err := postgres.Open(ctx, cfg.DatabaseDSN, postgres.DefaultPoolConfig)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			applied, err := postgres.RunMigrations(ctx, db, cfg.MigrationsDir)
			if err != nil {
				return fmt.Errorf("run migrations: %w", err)
			}

			logger.Info("migrations completed successfully", logger.Fields{"applied": applied})
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "migrations directory (defaults to MIGRATIONS_DIR)")
	return cmd
}
