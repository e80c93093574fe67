package repo_interfaces

import (
	"context"

	"github.com/api-sage/intl-payments-portal/src/internal/domain"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment domain.Payment) (domain.Payment, error)
	GetByID(ctx context.Context, id string) (domain.Payment, error)
	GetByIDForUpdate(ctx context.Context, id string) (domain.Payment, error)
	// UpdateState never clears a flag that is already set.
	UpdateState(ctx context.Context, id string, verified bool, submitted bool) (domain.Payment, error)
	ListByCustomer(ctx context.Context, customerID string) ([]domain.Payment, error)
	ListUnverified(ctx context.Context) ([]domain.Payment, error)
}
