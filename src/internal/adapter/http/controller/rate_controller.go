package controller

import (
	"net/http"
	"strings"
	"time"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/intl-payments-portal/src/internal/usecase/service_interfaces"
)

type RateController struct {
	service service_interfaces.RateService
}

func NewRateController(service service_interfaces.RateService) *RateController {
	return &RateController{service: service}
}

func (c *RateController) RegisterRoutes(mux *http.ServeMux, _ func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /api/rates", c.getRates)
	mux.HandleFunc("GET /api/rates/quote", c.quote)
}

func (c *RateController) getRates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetRates(r.Context())
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

func (c *RateController) quote(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req := models.QuoteRequest{
		Amount:   models.DecimalText(strings.TrimSpace(r.URL.Query().Get("amount"))),
		Currency: strings.TrimSpace(r.URL.Query().Get("currency")),
	}
	logRequest(r, req)

	response, err := c.service.Quote(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		logResponse(r, status, response, start)
		writeJSON(w, status, response)
		return
	}

	logResponse(r, http.StatusOK, response, start)
	writeJSON(w, http.StatusOK, response)
}
