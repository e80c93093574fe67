package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/memory"
	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/api-sage/intl-payments-portal/src/internal/usecase/services"
	"github.com/shopspring/decimal"
)

const testTimeout = 2 * time.Second

func testConverter(t *testing.T) *services.CurrencyConverter {
	t.Helper()
	converter, err := services.LoadCurrencyConverter(context.Background(), memory.NewRateRepository())
	if err != nil {
		t.Fatalf("load converter: %v", err)
	}
	return converter
}

func seedCustomer(t *testing.T, store *memory.Store, id string, role domain.Role) domain.Principal {
	t.Helper()
	customer, err := store.Customers().Create(context.Background(), domain.Customer{
		ID:            id,
		FullName:      "Jane Doe",
		IDNumber:      "1" + id,
		AccountNumber: "2" + id,
		Balance:       domain.DefaultOpeningBalance,
		Role:          role,
		PasswordHash:  "hash",
	})
	if err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return domain.Principal{SubjectID: customer.ID, Role: customer.Role, Name: customer.FullName}
}

func balanceOf(t *testing.T, store *memory.Store, id string) decimal.Decimal {
	t.Helper()
	customer, err := store.Customers().GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	return customer.Balance
}

func expectKind(t *testing.T, err error, kind commons.ErrorKind) {
	t.Helper()
	if got := commons.KindOf(err); got != kind {
		t.Fatalf("expected %s, got %q (%v)", kind, got, err)
	}
}

type paymentRepoStub struct {
	repo_interfaces.PaymentRepository
	createFn func(ctx context.Context, payment domain.Payment) (domain.Payment, error)
}

func (s paymentRepoStub) Create(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	if s.createFn != nil {
		return s.createFn(ctx, payment)
	}
	return s.PaymentRepository.Create(ctx, payment)
}

// ledgerFailingTx runs the real memory transaction but swaps in a payment
// repository whose writes fail.
type ledgerFailingTx struct {
	store *memory.Store
	err   error
}

func (tx ledgerFailingTx) WithinTransaction(ctx context.Context, fn repo_interfaces.TxFunc) error {
	return tx.store.WithinTransaction(ctx, func(ctx context.Context, customers repo_interfaces.CustomerRepository, payments repo_interfaces.PaymentRepository) error {
		return fn(ctx, customers, paymentRepoStub{
			PaymentRepository: payments,
			createFn: func(context.Context, domain.Payment) (domain.Payment, error) {
				return domain.Payment{}, tx.err
			},
		})
	})
}

type dispatcherStub struct {
	dispatchFn func(ctx context.Context, payment domain.Payment) error
}

func (s dispatcherStub) Dispatch(ctx context.Context, payment domain.Payment) error {
	if s.dispatchFn != nil {
		return s.dispatchFn(ctx, payment)
	}
	return nil
}

// finishesWithin fails the test when fn is still running after limit.
func finishesWithin(t *testing.T, limit time.Duration, fn func()) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		defer close(done)
		fn()
	}()
	select {
	case <-done:
	case <-time.After(limit):
		t.Fatalf("still running after %s", limit)
	}
}
