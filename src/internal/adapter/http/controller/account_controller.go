package controller

import (
	"net/http"
	"time"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/usecase/service_interfaces"
)

type AccountController struct {
	service service_interfaces.AccountService
}

func NewAccountController(service service_interfaces.AccountService) *AccountController {
	return &AccountController{service: service}
}

func (c *AccountController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("GET /api/accounts/details", protect(c.getAccountDetails, authMiddleware))
}

func (c *AccountController) getAccountDetails(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, err := callerFrom(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, commons.FailureResponse[models.AccountDetailsResponse](err))
		return
	}
	logRequest(r, nil)

	response, err := c.service.GetAccountDetails(r.Context(), caller)
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
