package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/controller"
	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/middleware"
	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/router"
	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/memory"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/api-sage/intl-payments-portal/src/internal/logger"
	"github.com/api-sage/intl-payments-portal/src/internal/security"
	"github.com/api-sage/intl-payments-portal/src/internal/usecase/services"
	"golang.org/x/crypto/bcrypt"
)

const (
	employeeAccount  = "9000000001"
	employeePassword = "Rev1ew!Pass"
	customerAccount  = "1000000001"
	customerPassword = "Str0ng!Pass"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Kind    string          `json:"kind"`
	Data    json.RawMessage `json:"data"`
}

type recordingDispatcher struct {
	sent []string
}

func (d *recordingDispatcher) Dispatch(_ context.Context, payment domain.Payment) error {
	d.sent = append(d.sent, payment.ID)
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *recordingDispatcher) {
	t.Helper()
	logger.SetOutput(io.Discard, "error")

	store := memory.NewStore()
	rateRepo := memory.NewRateRepository()
	converter, err := services.LoadCurrencyConverter(context.Background(), rateRepo)
	if err != nil {
		t.Fatalf("load converter: %v", err)
	}

	dispatcher := &recordingDispatcher{}
	authService := services.NewAuthService(
		store.Customers(),
		security.NewBcryptHasher(bcrypt.MinCost),
		security.NewJWTIssuer("router-test-secret"),
		15*time.Minute,
		time.Second,
	)
	if _, _, err := authService.EnsureEmployee(context.Background(), models.RegisterRequest{
		FullName:      "Bank Employee",
		IDNumber:      "0000000000000",
		AccountNumber: employeeAccount,
		Password:      employeePassword,
	}); err != nil {
		t.Fatalf("seed employee: %v", err)
	}

	mux := router.New(
		controller.NewAuthController(authService),
		controller.NewAccountController(services.NewAccountService(store.Customers(), time.Second)),
		controller.NewPaymentController(
			services.NewPaymentService(store.Customers(), store.Payments(), store, converter, time.Second),
			services.NewReviewService(store.Payments(), store, dispatcher, time.Second),
		),
		controller.NewRateController(services.NewRateService(rateRepo, converter)),
		middleware.BearerAuth(authService),
	)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, dispatcher
}

func call(t *testing.T, server *httptest.Server, method string, path string, token string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, server.URL+path, reader)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode %s %s: %v", method, path, err)
	}
	return resp.StatusCode, env
}

func decodeData(t *testing.T, env envelope, dst any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v", err)
	}
}

func login(t *testing.T, server *httptest.Server, account string, password string) string {
	t.Helper()
	status, env := call(t, server, http.MethodPost, "/api/auth/login", "", models.LoginRequest{
		AccountNumber: account,
		Password:      password,
	})
	if status != http.StatusOK {
		t.Fatalf("login %s: status %d, %s", account, status, env.Message)
	}
	var out models.LoginResponse
	decodeData(t, env, &out)
	return out.AccessToken
}

func TestPaymentLifecycle(t *testing.T) {
	server, dispatcher := newTestServer(t)

	status, env := call(t, server, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		FullName:      "Jane Doe",
		IDNumber:      "1234567890123",
		AccountNumber: customerAccount,
		Password:      customerPassword,
	})
	if status != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", status, env.Message)
	}

	customerToken := login(t, server, customerAccount, customerPassword)
	employeeToken := login(t, server, employeeAccount, employeePassword)

	status, env = call(t, server, http.MethodPost, "/api/payments", customerToken, map[string]any{
		"amount":           "100",
		"currency":         "USD",
		"provider":         "SWIFT",
		"swiftCode":        "ABCDZAJJ",
		"recipientAccount": "12345678901",
	})
	if status != http.StatusCreated {
		t.Fatalf("create payment: expected 201, got %d (%s)", status, env.Message)
	}
	var payment models.PaymentResponse
	decodeData(t, env, &payment)
	if payment.BaseAmount != "1850.00" || payment.Status != string(domain.PaymentStateUnverified) {
		t.Fatalf("unexpected payment %+v", payment)
	}

	status, env = call(t, server, http.MethodGet, "/api/accounts/details", customerToken, nil)
	if status != http.StatusOK {
		t.Fatalf("account details: expected 200, got %d", status)
	}
	var account models.AccountDetailsResponse
	decodeData(t, env, &account)
	if account.Balance != "23150.00" {
		t.Fatalf("expected balance 23150.00, got %s", account.Balance)
	}

	status, env = call(t, server, http.MethodPost, "/api/payments/"+payment.ID+"/submit", employeeToken, nil)
	if status != http.StatusConflict || env.Message != "Must verify first" {
		t.Fatalf("submit before verify: expected 409, got %d (%s)", status, env.Message)
	}

	status, env = call(t, server, http.MethodGet, "/api/payments/pending", employeeToken, nil)
	if status != http.StatusOK {
		t.Fatalf("pending: expected 200, got %d", status)
	}
	var pending []models.PaymentResponse
	decodeData(t, env, &pending)
	if len(pending) != 1 || pending[0].ID != payment.ID {
		t.Fatalf("expected the new payment to be pending, got %+v", pending)
	}

	if status, env = call(t, server, http.MethodPost, "/api/payments/"+payment.ID+"/verify", employeeToken, nil); status != http.StatusOK {
		t.Fatalf("verify: expected 200, got %d (%s)", status, env.Message)
	}
	status, env = call(t, server, http.MethodPost, "/api/payments/"+payment.ID+"/submit", employeeToken, nil)
	if status != http.StatusOK {
		t.Fatalf("submit: expected 200, got %d (%s)", status, env.Message)
	}
	decodeData(t, env, &payment)
	if payment.Status != string(domain.PaymentStateSubmitted) {
		t.Fatalf("expected submitted payment, got %s", payment.Status)
	}
	if len(dispatcher.sent) != 1 || dispatcher.sent[0] != payment.ID {
		t.Fatalf("expected one dispatch for %s, got %v", payment.ID, dispatcher.sent)
	}

	status, env = call(t, server, http.MethodGet, "/api/payments", customerToken, nil)
	if status != http.StatusOK {
		t.Fatalf("list own: expected 200, got %d", status)
	}
	var own []models.PaymentResponse
	decodeData(t, env, &own)
	if len(own) != 1 || !own[0].Submitted {
		t.Fatalf("expected customer to see the submitted payment, got %+v", own)
	}
}

func TestRoleGating(t *testing.T) {
	server, _ := newTestServer(t)

	call(t, server, http.MethodPost, "/api/auth/register", "", models.RegisterRequest{
		FullName:      "Jane Doe",
		IDNumber:      "1234567890123",
		AccountNumber: customerAccount,
		Password:      customerPassword,
	})
	customerToken := login(t, server, customerAccount, customerPassword)
	employeeToken := login(t, server, employeeAccount, employeePassword)

	if status, _ := call(t, server, http.MethodGet, "/api/payments/pending", customerToken, nil); status != http.StatusForbidden {
		t.Fatalf("customer listing pending: expected 403, got %d", status)
	}

	status, _ := call(t, server, http.MethodPost, "/api/payments", employeeToken, map[string]any{
		"amount":           "10",
		"currency":         "ZAR",
		"provider":         "SWIFT",
		"swiftCode":        "ABCDZAJJ",
		"recipientAccount": "12345678901",
	})
	if status != http.StatusForbidden {
		t.Fatalf("employee creating payment: expected 403, got %d", status)
	}

	if status, _ := call(t, server, http.MethodGet, "/api/payments", "", nil); status != http.StatusUnauthorized {
		t.Fatalf("anonymous list: expected 401, got %d", status)
	}
	if status, _ := call(t, server, http.MethodGet, "/api/payments", "not-a-jwt", nil); status != http.StatusUnauthorized {
		t.Fatalf("garbage token: expected 401, got %d", status)
	}
}

func TestLoginFailureIsUniform(t *testing.T) {
	server, _ := newTestServer(t)

	_, unknown := call(t, server, http.MethodPost, "/api/auth/login", "", models.LoginRequest{AccountNumber: "1999999999", Password: "whatever"})
	status, wrong := call(t, server, http.MethodPost, "/api/auth/login", "", models.LoginRequest{AccountNumber: employeeAccount, Password: "Wr0ng!Pass"})
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
	if unknown.Message != wrong.Message {
		t.Fatalf("expected identical messages, got %q and %q", unknown.Message, wrong.Message)
	}
}

func TestRejectsUnknownFieldsAndServesHealth(t *testing.T) {
	server, _ := newTestServer(t)

	status, env := call(t, server, http.MethodPost, "/api/auth/register", "", map[string]any{
		"fullName":      "Jane Doe",
		"idNumber":      "1234567890123",
		"accountNumber": customerAccount,
		"password":      customerPassword,
		"role":          "EMPLOYEE",
	})
	if status != http.StatusBadRequest || env.Kind != "VALIDATION_ERROR" {
		t.Fatalf("expected validation failure for unknown field, got %d %s", status, env.Kind)
	}

	resp, err := server.Client().Get(server.URL + "/healthz")
	if err != nil {
		t.Fatalf("healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("healthz: expected 200, got %d", resp.StatusCode)
	}
}
