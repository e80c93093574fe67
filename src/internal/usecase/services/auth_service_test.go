package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/memory"
	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/api-sage/intl-payments-portal/src/internal/security"
	"github.com/api-sage/intl-payments-portal/src/internal/usecase/services"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(store *memory.Store) *services.AuthService {
	return services.NewAuthService(
		store.Customers(),
		security.NewBcryptHasher(bcrypt.MinCost),
		security.NewJWTIssuer("test-secret"),
		15*time.Minute,
		testTimeout,
	)
}

func janeDoe() models.RegisterRequest {
	return models.RegisterRequest{
		FullName:      "Jane Doe",
		IDNumber:      "1234567890123",
		AccountNumber: "1000000001",
		Password:      "Str0ng!Pass",
	}
}

func TestAuthServiceRegisterThenConflict(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(store)

	resp, err := svc.Register(context.Background(), janeDoe())
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.Success || resp.Data.Role != "customer" {
		t.Fatalf("unexpected response %+v", resp)
	}

	customer, err := store.Customers().GetByAccountNumber(context.Background(), "1000000001")
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if customer.PasswordHash == "Str0ng!Pass" || customer.PasswordHash == "" {
		t.Fatal("expected password to be stored hashed")
	}
	if !customer.Balance.Equal(domain.DefaultOpeningBalance) {
		t.Fatalf("expected opening balance, got %s", customer.Balance)
	}

	dup := janeDoe()
	dup.AccountNumber = "1000000002"
	_, err = svc.Register(context.Background(), dup)
	expectKind(t, err, commons.KindConflict)
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	svc := newAuthService(memory.NewStore())

	req := janeDoe()
	req.IDNumber = "12345"
	_, err := svc.Register(context.Background(), req)
	expectKind(t, err, commons.KindValidation)
}

func TestAuthServiceLoginIssuesToken(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(store)
	if _, err := svc.Register(context.Background(), janeDoe()); err != nil {
		t.Fatalf("register: %v", err)
	}

	resp, err := svc.Login(context.Background(), models.LoginRequest{AccountNumber: "1000000001", Password: "Str0ng!Pass"})
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Data.TokenType != "Bearer" || resp.Data.ExpiresIn != 900 {
		t.Fatalf("unexpected login response %+v", *resp.Data)
	}

	principal, err := svc.Authorize(resp.Data.AccessToken, domain.RoleCustomer)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if principal.Name != "Jane Doe" || principal.Role != domain.RoleCustomer {
		t.Fatalf("unexpected principal %+v", principal)
	}

	_, err = svc.Authorize(resp.Data.AccessToken, domain.RoleEmployee)
	expectKind(t, err, commons.KindForbidden)
}

func TestAuthServiceLoginFailuresAreUniform(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(store)
	if _, err := svc.Register(context.Background(), janeDoe()); err != nil {
		t.Fatalf("register: %v", err)
	}

	wrongPassword, err := svc.Login(context.Background(), models.LoginRequest{AccountNumber: "1000000001", Password: "nope"})
	expectKind(t, err, commons.KindAuth)
	unknownAccount, err := svc.Login(context.Background(), models.LoginRequest{AccountNumber: "9999999999", Password: "Str0ng!Pass"})
	expectKind(t, err, commons.KindAuth)

	if wrongPassword.Message != unknownAccount.Message {
		t.Fatalf("expected identical messages, got %q and %q", wrongPassword.Message, unknownAccount.Message)
	}
}

func TestAuthServiceAuthorizeRejectsMissingAndMalformed(t *testing.T) {
	svc := newAuthService(memory.NewStore())

	_, err := svc.Authorize("")
	expectKind(t, err, commons.KindAuth)
	_, err = svc.Authorize("garbage")
	expectKind(t, err, commons.KindAuth)
}

func TestAuthServiceEnsureEmployeeIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	svc := newAuthService(store)
	req := models.RegisterRequest{
		FullName:      "Bank Employee",
		IDNumber:      "0000000000000",
		AccountNumber: "9000000001",
		Password:      "Empl0yee!Pass",
	}

	first, created, err := svc.EnsureEmployee(context.Background(), req)
	if err != nil || !created || first.Role != domain.RoleEmployee {
		t.Fatalf("expected employee to be created, got %+v %v %v", first, created, err)
	}

	second, created, err := svc.EnsureEmployee(context.Background(), req)
	if err != nil || created || second.ID != first.ID {
		t.Fatalf("expected existing employee to be returned, got %+v %v %v", second, created, err)
	}

	if _, err := svc.Register(context.Background(), janeDoe()); err != nil {
		t.Fatalf("register: %v", err)
	}
	clash := req
	clash.AccountNumber = "1000000001"
	_, _, err = svc.EnsureEmployee(context.Background(), clash)
	expectKind(t, err, commons.KindConflict)
}
