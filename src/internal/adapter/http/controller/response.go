package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func statusFor(err error) int {
	switch commons.KindOf(err) {
	case commons.KindValidation:
		return http.StatusBadRequest
	case commons.KindConflict:
		return http.StatusConflict
	case commons.KindNotFound:
		return http.StatusNotFound
	case commons.KindAuth:
		return http.StatusUnauthorized
	case commons.KindForbidden:
		return http.StatusForbidden
	case commons.KindInsufficientFunds:
		return http.StatusUnprocessableEntity
	case commons.KindPrecondition:
		return http.StatusConflict
	case commons.KindStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a single JSON object and rejects unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return commons.Validation(nil, []string{fmt.Sprintf("invalid request body: %v", err)})
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return commons.Validation(nil, []string{"invalid request body: unexpected trailing data"})
	}
	return nil
}

func callerFrom(r *http.Request) (domain.Principal, error) {
	principal, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		return domain.Principal{}, commons.Unauthorized("No token")
	}
	return principal, nil
}

func protect(handler http.HandlerFunc, authMiddleware func(http.Handler) http.Handler) http.Handler {
	if authMiddleware == nil {
		return handler
	}
	return authMiddleware(handler)
}
