package services

import (
	"time"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
)

func mapPaymentToResponse(payment domain.Payment) models.PaymentResponse {
	resp := models.PaymentResponse{
		ID:               payment.ID,
		CustomerID:       payment.CustomerID,
		Amount:           payment.Amount.String(),
		Currency:         payment.Currency,
		BaseAmount:       payment.BaseAmount.StringFixed(2),
		BaseCurrency:     domain.BaseCurrency,
		Provider:         payment.Provider,
		SwiftCode:        payment.RoutingCode,
		RecipientAccount: payment.RecipientAccount,
		Status:           string(payment.State()),
		Verified:         payment.Verified,
		Submitted:        payment.Submitted,
		CreatedAt:        payment.CreatedAt.UTC().Format(time.RFC3339),
	}
	if payment.VerifiedAt != nil {
		v := payment.VerifiedAt.UTC().Format(time.RFC3339)
		resp.VerifiedAt = &v
	}
	if payment.SubmittedAt != nil {
		s := payment.SubmittedAt.UTC().Format(time.RFC3339)
		resp.SubmittedAt = &s
	}
	return resp
}

func mapPaymentsToResponse(payments []domain.Payment) []models.PaymentResponse {
	out := make([]models.PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		out = append(out, mapPaymentToResponse(payment))
	}
	return out
}
