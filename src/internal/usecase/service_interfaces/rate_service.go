package service_interfaces

import (
	"context"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/intl-payments-portal/src/internal/commons"
)

type RateService interface {
	GetRates(ctx context.Context) (commons.Response[[]models.RateResponse], error)
	Quote(ctx context.Context, req models.QuoteRequest) (commons.Response[models.QuoteResponse], error)
}
