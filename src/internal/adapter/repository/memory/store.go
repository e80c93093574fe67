package memory

import (
	"context"
	"time"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
)

var _ repo_interfaces.Transactor = (*Store)(nil)

type state struct {
	customers    map[string]domain.Customer
	payments     map[string]domain.Payment
	paymentOrder []string
}

func newState() *state {
	return &state{
		customers: make(map[string]domain.Customer),
		payments:  make(map[string]domain.Payment),
	}
}

func (s *state) clone() *state {
	out := &state{
		customers:    make(map[string]domain.Customer, len(s.customers)),
		payments:     make(map[string]domain.Payment, len(s.payments)),
		paymentOrder: append([]string(nil), s.paymentOrder...),
	}
	for k, v := range s.customers {
		out.customers[k] = v
	}
	for k, v := range s.payments {
		out.payments[k] = v
	}
	return out
}

// Store keeps customers and payments in process memory. Every operation,
// including a whole transaction, runs with exclusive access to the data, so
// transactions are fully serialised.
type Store struct {
	sem   chan struct{}
	state *state
	now   func() time.Time
}

type Option func(*Store)

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		sem:   make(chan struct{}, 1),
		state: newState(),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Customers() *CustomerRepository {
	return &CustomerRepository{store: s}
}

func (s *Store) Payments() *PaymentRepository {
	return &PaymentRepository{store: s}
}

func (s *Store) acquire(ctx context.Context) error {
	select {
	case s.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return commons.Storage("Store unavailable", ctx.Err())
	}
}

func (s *Store) release() {
	<-s.sem
}

// WithinTransaction runs fn against a private copy of the data and publishes
// the copy only when fn succeeds.
func (s *Store) WithinTransaction(ctx context.Context, fn repo_interfaces.TxFunc) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	working := s.state.clone()
	tx := &tables{st: working, now: s.now}
	if err := fn(ctx, &txCustomerRepository{t: tx}, &txPaymentRepository{t: tx}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return commons.Storage("Transaction aborted", err)
	}

	s.state = working
	return nil
}

func (s *Store) view(ctx context.Context, fn func(t *tables) error) error {
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()
	return fn(&tables{st: s.state, now: s.now})
}
