package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/api-sage/intl-payments-portal/src/internal/logger"
	"github.com/api-sage/intl-payments-portal/src/internal/usecase/service_interfaces"
)

type PaymentController struct {
	payments service_interfaces.PaymentService
	review   service_interfaces.ReviewService
}

func NewPaymentController(payments service_interfaces.PaymentService, review service_interfaces.ReviewService) *PaymentController {
	return &PaymentController{payments: payments, review: review}
}

func (c *PaymentController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /api/payments", protect(c.createPayment, authMiddleware))
	mux.Handle("GET /api/payments", protect(c.listOwnPayments, authMiddleware))
	mux.Handle("GET /api/payments/pending", protect(c.listPending, authMiddleware))
	mux.Handle("POST /api/payments/{id}/verify", protect(c.verifyPayment, authMiddleware))
	mux.Handle("POST /api/payments/{id}/submit", protect(c.submitPayment, authMiddleware))
}

func (c *PaymentController) createPayment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, err := callerFrom(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, commons.FailureResponse[models.PaymentResponse](err))
		return
	}

	var req models.CreatePaymentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		logError(r, err, nil)
		writeJSON(w, http.StatusBadRequest, commons.FailureResponse[models.PaymentResponse](err))
		return
	}
	logRequest(r, req)

	response, err := c.payments.CreatePayment(r.Context(), caller, req)
	if err != nil {
		status := statusFor(err)
		logError(r, err, logger.Fields{"customerId": caller.SubjectID})
		logResponse(r, status, response, start)
		writeJSON(w, status, response)
		return
	}

	logResponse(r, http.StatusCreated, response, start)
	writeJSON(w, http.StatusCreated, response)
}

func (c *PaymentController) listOwnPayments(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, c.payments.ListOwnPayments)
}

func (c *PaymentController) listPending(w http.ResponseWriter, r *http.Request) {
	c.list(w, r, c.review.ListPending)
}

func (c *PaymentController) verifyPayment(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.review.VerifyPayment)
}

func (c *PaymentController) submitPayment(w http.ResponseWriter, r *http.Request) {
	c.transition(w, r, c.review.SubmitPayment)
}

type listFunc func(ctx context.Context, caller domain.Principal) (commons.Response[[]models.PaymentResponse], error)

type transitionFunc func(ctx context.Context, caller domain.Principal, paymentID string) (commons.Response[models.PaymentResponse], error)

func (c *PaymentController) list(w http.ResponseWriter, r *http.Request, fetch listFunc) {
	start := time.Now()

	caller, err := callerFrom(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, commons.FailureResponse[[]models.PaymentResponse](err))
		return
	}
	logRequest(r, nil)

	response, err := fetch(r.Context(), caller)
	if err != nil {
		status := statusFor(err)
		logError(r, err, nil)
		logResponse(r, status, response, start)
		writeJSON(w, status, response)
		return
	}

	logResponse(r, http.StatusOK, response, start)
	writeJSON(w, http.StatusOK, response)
}

func (c *PaymentController) transition(w http.ResponseWriter, r *http.Request, apply transitionFunc) {
	start := time.Now()

	caller, err := callerFrom(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, commons.FailureResponse[models.PaymentResponse](err))
		return
	}
	paymentID := r.PathValue("id")
	logRequest(r, map[string]string{"paymentId": paymentID})

	response, err := apply(r.Context(), caller, paymentID)
	if err != nil {
		status := statusFor(err)
		logError(r, err, logger.Fields{"paymentId": paymentID})
		logResponse(r, status, response, start)
		writeJSON(w, status, response)
		return
	}

	logResponse(r, http.StatusOK, response, start)
	writeJSON(w, http.StatusOK, response)
}
