package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/intl-payments-portal/src/internal/config"
	"github.com/api-sage/intl-payments-portal/src/internal/logger"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long: `Start the HTTP API.

Examples:
  intl-payments-portal serve
  STORAGE_DRIVER=memory intl-payments-portal serve
  intl-payments-portal serve --skip-migrations`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, !skipMigrations)
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on startup")
	return cmd
}

func runServe(ctx context.Context, cfg config.Config, migrate bool) error {
	store, err := openStorage(ctx, cfg, migrate)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	dispatcher, closeDispatcher, err := newDispatcher(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closeDispatcher() }()

	authService := newAuthService(cfg, store.customers)
	if cfg.SeedEmployeeAccount != "" && cfg.SeedEmployeePassword != "" {
		if _, _, err := authService.EnsureEmployee(ctx, models.RegisterRequest{
			FullName:      defaultEmployeeName,
			IDNumber:      defaultEmployeeIDNumber,
			AccountNumber: cfg.SeedEmployeeAccount,
			Password:      cfg.SeedEmployeePassword,
		}); err != nil {
			return err
		}
	}

	handler, err := newHandler(ctx, cfg, store, authService, dispatcher)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("http server listening", logger.Fields{"addr": cfg.HTTPAddr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("http server shutting down", nil)
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("http server stopped", err, nil)
		return err
	}
	logger.Info("http server stopped", nil)
	return nil
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	logger.Configure(cfg.LogLevel, cfg.LogPretty)
	return cfg, nil
}
