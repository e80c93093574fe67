package memory

import (
	"context"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
)

var _ repo_interfaces.PaymentRepository = (*PaymentRepository)(nil)
var _ repo_interfaces.PaymentRepository = (*txPaymentRepository)(nil)

type PaymentRepository struct {
	store *Store
}

func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	var created domain.Payment
	err := r.store.view(ctx, func(t *tables) error {
		var err error
		created, err = t.createPayment(payment)
		return err
	})
	return created, err
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (domain.Payment, error) {
	var payment domain.Payment
	err := r.store.view(ctx, func(t *tables) error {
		var err error
		payment, err = t.paymentByID(id)
		return err
	})
	return payment, err
}

func (r *PaymentRepository) GetByIDForUpdate(ctx context.Context, id string) (domain.Payment, error) {
	return r.GetByID(ctx, id)
}

func (r *PaymentRepository) UpdateState(ctx context.Context, id string, verified bool, submitted bool) (domain.Payment, error) {
	var payment domain.Payment
	err := r.store.view(ctx, func(t *tables) error {
		var err error
		payment, err = t.updatePaymentState(id, verified, submitted)
		return err
	})
	return payment, err
}

func (r *PaymentRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.store.view(ctx, func(t *tables) error {
		payments = t.paymentsWhere(true, ownedBy(customerID))
		return nil
	})
	return payments, err
}

func (r *PaymentRepository) ListUnverified(ctx context.Context) ([]domain.Payment, error) {
	var payments []domain.Payment
	err := r.store.view(ctx, func(t *tables) error {
		payments = t.paymentsWhere(false, unverified)
		return nil
	})
	return payments, err
}

type txPaymentRepository struct {
	t *tables
}

func (r *txPaymentRepository) Create(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Payment{}, err
	}
	return r.t.createPayment(payment)
}

func (r *txPaymentRepository) GetByID(ctx context.Context, id string) (domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Payment{}, err
	}
	return r.t.paymentByID(id)
}

func (r *txPaymentRepository) GetByIDForUpdate(ctx context.Context, id string) (domain.Payment, error) {
	return r.GetByID(ctx, id)
}

func (r *txPaymentRepository) UpdateState(ctx context.Context, id string, verified bool, submitted bool) (domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Payment{}, err
	}
	return r.t.updatePaymentState(id, verified, submitted)
}

func (r *txPaymentRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.paymentsWhere(true, ownedBy(customerID)), nil
}

func (r *txPaymentRepository) ListUnverified(ctx context.Context) ([]domain.Payment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.t.paymentsWhere(false, unverified), nil
}

func ownedBy(customerID string) func(domain.Payment) bool {
	return func(p domain.Payment) bool {
		return p.CustomerID == customerID
	}
}

func unverified(p domain.Payment) bool {
	return !p.Verified
}
