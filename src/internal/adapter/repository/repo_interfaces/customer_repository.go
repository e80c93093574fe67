package repo_interfaces

import (
	"context"

	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/shopspring/decimal"
)

type CustomerRepository interface {
	Create(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	GetByID(ctx context.Context, id string) (domain.Customer, error)
	// GetByIDForUpdate reads the customer and holds it exclusively until the
	// surrounding transaction ends.
	GetByIDForUpdate(ctx context.Context, id string) (domain.Customer, error)
	GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Customer, error)
	GetByAccountOrIDNumber(ctx context.Context, accountNumber string, idNumber string) (domain.Customer, error)
	UpdateBalance(ctx context.Context, id string, newBalance decimal.Decimal) error
}
