package service_interfaces

import (
	"context"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
)

type PaymentService interface {
	CreatePayment(ctx context.Context, caller domain.Principal, req models.CreatePaymentRequest) (commons.Response[models.PaymentResponse], error)
	ListOwnPayments(ctx context.Context, caller domain.Principal) (commons.Response[[]models.PaymentResponse], error)
}

type ReviewService interface {
	ListPending(ctx context.Context, caller domain.Principal) (commons.Response[[]models.PaymentResponse], error)
	VerifyPayment(ctx context.Context, caller domain.Principal, paymentID string) (commons.Response[models.PaymentResponse], error)
	SubmitPayment(ctx context.Context, caller domain.Principal, paymentID string) (commons.Response[models.PaymentResponse], error)
}
