package repo_interfaces

import (
	"context"

	"github.com/api-sage/intl-payments-portal/src/internal/domain"
)

type RateRepository interface {
	GetRates(ctx context.Context) ([]domain.Rate, error)
}
