package services

import (
	"context"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/api-sage/intl-payments-portal/src/internal/logger"
	"github.com/api-sage/intl-payments-portal/src/internal/usecase/service_interfaces"
)

// Verify that RateService implements the service_interfaces.RateService interface
var _ service_interfaces.RateService = (*RateService)(nil)

type RateService struct {
	rateRepo  repo_interfaces.RateRepository
	converter *CurrencyConverter
}

func NewRateService(rateRepo repo_interfaces.RateRepository, converter *CurrencyConverter) *RateService {
	return &RateService{rateRepo: rateRepo, converter: converter}
}

// LoadCurrencyConverter builds a converter from the rates held by rateRepo.
func LoadCurrencyConverter(ctx context.Context, rateRepo repo_interfaces.RateRepository) (*CurrencyConverter, error) {
	rates, err := rateRepo.GetRates(ctx)
	if err != nil {
		return nil, err
	}
	return NewCurrencyConverter(rates), nil
}

func (s *RateService) GetRates(ctx context.Context) (commons.Response[[]models.RateResponse], error) {
	logger.Info("rate service get rates request", nil)

	rates, err := s.rateRepo.GetRates(ctx)
	if err != nil {
		err = storageFailure(err)
		logger.Error("rate service get rates failed", err, nil)
		return commons.FailureResponse[[]models.RateResponse](err), err
	}

	resp := make([]models.RateResponse, 0, len(rates))
	for _, rate := range rates {
		resp = append(resp, mapRateToResponse(rate))
	}

	logger.Info("rate service get rates success", logger.Fields{
		"count": len(resp),
	})

	return commons.SuccessResponse("rates fetched successfully", resp), nil
}

func (s *RateService) Quote(_ context.Context, req models.QuoteRequest) (commons.Response[models.QuoteResponse], error) {
	logger.Info("rate service quote request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("rate service quote validation failed", err, nil)
		return commons.FailureResponse[models.QuoteResponse](err), err
	}

	amount, err := req.Amount.Decimal()
	if err != nil {
		verr := commons.Validation([]string{"amount"}, []string{"amount: must be numeric"})
		return commons.FailureResponse[models.QuoteResponse](verr), verr
	}

	rate := s.converter.RateFor(req.Currency)
	response := models.QuoteResponse{
		Amount:       amount.String(),
		Currency:     req.Currency,
		Rate:         rate.String(),
		BaseAmount:   s.converter.ToBaseAmount(amount, req.Currency).StringFixed(2),
		BaseCurrency: domain.BaseCurrency,
	}

	logger.Info("rate service quote success", logger.Fields{
		"currency":   response.Currency,
		"baseAmount": response.BaseAmount,
	})

	return commons.SuccessResponse("quote calculated successfully", response), nil
}

func mapRateToResponse(rate domain.Rate) models.RateResponse {
	return models.RateResponse{
		Currency:     rate.Currency,
		BaseCurrency: domain.BaseCurrency,
		Rate:         rate.Rate.String(),
	}
}
