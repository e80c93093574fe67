package controller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/api-sage/intl-payments-portal/src/internal/commons"
)

func TestStatusForMapsEveryKind(t *testing.T) {
	cases := map[int]error{
		http.StatusBadRequest:          commons.Validation([]string{"amount"}, nil),
		http.StatusConflict:            commons.Conflict("Customer already exists"),
		http.StatusNotFound:            commons.NotFound("Payment not found"),
		http.StatusUnauthorized:        commons.Unauthorized("Invalid token"),
		http.StatusForbidden:           commons.Forbidden("Forbidden"),
		http.StatusUnprocessableEntity: commons.InsufficientFunds("Insufficient funds"),
		http.StatusServiceUnavailable:  commons.Storage("down", errors.New("dial tcp")),
	}
	for want, err := range cases {
		if got := statusFor(err); got != want {
			t.Fatalf("%v: expected %d, got %d", err, want, got)
		}
	}
	if got := statusFor(commons.Precondition("Must verify first")); got != http.StatusConflict {
		t.Fatalf("precondition: expected 409, got %d", got)
	}
	if got := statusFor(errors.New("unclassified")); got != http.StatusInternalServerError {
		t.Fatalf("unclassified: expected 500, got %d", got)
	}
}

func TestDecodeJSONRejectsUnknownAndTrailingData(t *testing.T) {
	type body struct {
		Name string `json:"name"`
	}

	for _, raw := range []string{`{"name":"a","extra":1}`, `{"name":"a"}{"name":"b"}`, `not json`} {
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(raw))
		var dst body
		if err := decodeJSON(httptest.NewRecorder(), r, &dst); commons.KindOf(err) != commons.KindValidation {
			t.Fatalf("%s: expected validation error, got %v", raw, err)
		}
	}

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a"}`))
	var dst body
	if err := decodeJSON(httptest.NewRecorder(), r, &dst); err != nil || dst.Name != "a" {
		t.Fatalf("expected clean decode, got %v %+v", err, dst)
	}
}
