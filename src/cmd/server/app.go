package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/controller"
	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/router"
	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/memory"
	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/postgres"
	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/intl-payments-portal/src/internal/adapter/swift"
	"github.com/api-sage/intl-payments-portal/src/internal/config"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/api-sage/intl-payments-portal/src/internal/logger"
	"github.com/api-sage/intl-payments-portal/src/internal/security"
	"github.com/api-sage/intl-payments-portal/src/internal/usecase/services"
)

// storage is the persistence backend selected by STORAGE_DRIVER.
type storage struct {
	customers repo_interfaces.CustomerRepository
	payments  repo_interfaces.PaymentRepository
	tx        repo_interfaces.Transactor
	db        *sql.DB
}

func (s storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func openStorage(ctx context.Context, cfg config.Config, migrate bool) (storage, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		store := memory.NewStore()
		logger.Info("storage memory store ready", nil)
		return storage{customers: store.Customers(), payments: store.Payments(), tx: store}, nil
	}

	db, err := postgres.Open(ctx, cfg.DatabaseDSN, postgres.DefaultPoolConfig)
	if err != nil {
		return storage{}, err
	}

	if migrate {
		applied, err := postgres.RunMigrations(ctx, db, cfg.MigrationsDir)
		if err != nil {
			_ = db.Close()
			return storage{}, fmt.Errorf("run migrations: %w", err)
		}
		logger.Info("storage migrations applied", logger.Fields{"applied": applied})
	}

	return storage{
		customers: postgres.NewCustomerRepository(db),
		payments:  postgres.NewPaymentRepository(db),
		tx:        postgres.NewTransactor(db),
		db:        db,
	}, nil
}

func newAuthService(cfg config.Config, customers repo_interfaces.CustomerRepository) *services.AuthService {
	return services.NewAuthService(
		customers,
		security.NewBcryptHasher(cfg.BcryptCost),
		security.NewJWTIssuer(cfg.JWTSecret),
		cfg.TokenTTL,
		cfg.StoreTimeout,
	)
}

// newDispatcher publishes to Kafka when brokers are configured and logs the
// instruction otherwise. The returned close func is never nil.
func newDispatcher(cfg config.Config) (domain.PaymentDispatcher, func() error, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("swift dispatcher using log output", nil)
		return swift.LogDispatcher{}, func() error { return nil }, nil
	}

	dispatcher, err := swift.DialKafka(cfg.KafkaBrokers, cfg.SwiftTopic)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("swift dispatcher connected", logger.Fields{
		"brokers": cfg.KafkaBrokers,
		"topic":   cfg.SwiftTopic,
	})
	return dispatcher, dispatcher.Close, nil
}

func newHandler(ctx context.Context, cfg config.Config, store storage, authService *services.AuthService, dispatcher domain.PaymentDispatcher) (http.Handler, error) {
	rateRepo := memory.NewRateRepository()
	converter, err := services.LoadCurrencyConverter(ctx, rateRepo)
	if err != nil {
		return nil, fmt.Errorf("load rates: %w", err)
	}

	accountService := services.NewAccountService(store.customers, cfg.StoreTimeout)
	paymentService := services.NewPaymentService(store.customers, store.payments, store.tx, converter, cfg.StoreTimeout)
	reviewService := services.NewReviewService(store.payments, store.tx, dispatcher, cfg.StoreTimeout)
	rateService := services.NewRateService(rateRepo, converter)

	return router.New(
		controller.NewAuthController(authService),
		controller.NewAccountController(accountService),
		controller.NewPaymentController(paymentService, reviewService),
		controller.NewRateController(rateService),
		middleware.BearerAuth(authService),
	), nil
}
