package memory

import (
	"context"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/shopspring/decimal"
)

var _ repo_interfaces.RateRepository = (*RateRepository)(nil)

// RateRepository serves the fixed conversion table. It backs both storage
// drivers.
type RateRepository struct{}

func NewRateRepository() *RateRepository {
	return &RateRepository{}
}

func (r *RateRepository) GetRates(_ context.Context) ([]domain.Rate, error) {
	rates := []domain.Rate{
		{Currency: domain.BaseCurrency, Rate: decimal.NewFromInt(1)},
		{Currency: "USD", Rate: decimal.RequireFromString("18.5")},
		{Currency: "EUR", Rate: decimal.RequireFromString("20.2")},
		{Currency: "GBP", Rate: decimal.RequireFromString("23.1")},
	}

	return rates, nil
}
