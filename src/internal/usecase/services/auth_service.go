package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/api-sage/intl-payments-portal/src/internal/logger"
	"github.com/api-sage/intl-payments-portal/src/internal/usecase/service_interfaces"
	"github.com/google/uuid"
)

var _ service_interfaces.AuthService = (*AuthService)(nil)

const authFailedMessage = "Auth failed"

type AuthService struct {
	customers    repo_interfaces.CustomerRepository
	hasher       domain.PasswordHasher
	tokens       domain.TokenIssuer
	tokenTTL     time.Duration
	storeTimeout time.Duration

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(
	customers repo_interfaces.CustomerRepository,
	hasher domain.PasswordHasher,
	tokens domain.TokenIssuer,
	tokenTTL time.Duration,
	storeTimeout time.Duration,
) *AuthService {
	return &AuthService{
		customers:    customers,
		hasher:       hasher,
		tokens:       tokens,
		tokenTTL:     tokenTTL,
		storeTimeout: storeTimeout,
	}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (commons.Response[models.RegisterResponse], error) {
	logger.Info("auth service register request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("auth service register validation failed", err, nil)
		return commons.FailureResponse[models.RegisterResponse](err), err
	}

	customer, err := s.createCustomer(ctx, req, domain.RoleCustomer)
	if err != nil {
		logger.Error("auth service register failed", err, logger.Fields{
			"accountNumber": req.AccountNumber,
		})
		return commons.FailureResponse[models.RegisterResponse](err), err
	}

	logger.Info("auth service register success", logger.Fields{
		"customerId":    customer.ID,
		"accountNumber": customer.AccountNumber,
	})

	return commons.SuccessResponse("Registered", models.RegisterResponse{
		ID:            customer.ID,
		FullName:      customer.FullName,
		AccountNumber: customer.AccountNumber,
		Role:          customer.Role.String(),
	}), nil
}

func (s *AuthService) createCustomer(ctx context.Context, req models.RegisterRequest, role domain.Role) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	_, err := s.customers.GetByAccountOrIDNumber(ctx, req.AccountNumber, req.IDNumber)
	switch {
	case err == nil:
		return domain.Customer{}, commons.Conflict("Customer already exists")
	case !errors.Is(err, commons.ErrRecordNotFound):
		return domain.Customer{}, storageFailure(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return domain.Customer{}, commons.Storage("Unable to register right now", err)
	}

	created, err := s.customers.Create(ctx, domain.Customer{
		ID:            uuid.NewString(),
		FullName:      req.FullName,
		IDNumber:      req.IDNumber,
		AccountNumber: req.AccountNumber,
		Balance:       domain.DefaultOpeningBalance,
		Role:          role,
		PasswordHash:  hash,
	})
	if err != nil {
		if errors.Is(err, commons.ErrDuplicateRecord) {
			return domain.Customer{}, commons.Conflict("Customer already exists")
		}
		return domain.Customer{}, storageFailure(err)
	}
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error) {
	logger.Info("auth service login request", logger.Fields{
		"payload": logger.SanitizePayload(req),
	})

	if err := req.Validate(); err != nil {
		logger.Error("auth service login validation failed", err, nil)
		return commons.FailureResponse[models.LoginResponse](err), err
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	customer, err := s.customers.GetByAccountNumber(lookupCtx, strings.TrimSpace(req.AccountNumber))
	cancel()
	if err != nil && !errors.Is(err, commons.ErrRecordNotFound) {
		err = storageFailure(err)
		logger.Error("auth service login lookup failed", err, nil)
		return commons.FailureResponse[models.LoginResponse](err), err
	}

	if err != nil {
		// Spend the same hashing work as a real comparison.
		s.hasher.Verify(req.Password, s.dummyPasswordHash())
		authErr := commons.Unauthorized(authFailedMessage)
		logger.Info("auth service login rejected", nil)
		return commons.FailureResponse[models.LoginResponse](authErr), authErr
	}
	if !s.hasher.Verify(req.Password, customer.PasswordHash) {
		authErr := commons.Unauthorized(authFailedMessage)
		logger.Info("auth service login rejected", nil)
		return commons.FailureResponse[models.LoginResponse](authErr), authErr
	}

	token, err := s.tokens.Issue(customer.ID, customer.Role, customer.FullName, s.tokenTTL)
	if err != nil {
		err = commons.Storage("Unable to sign in right now", err)
		logger.Error("auth service login issue token failed", err, logger.Fields{
			"customerId": customer.ID,
		})
		return commons.FailureResponse[models.LoginResponse](err), err
	}

	logger.Info("auth service login success", logger.Fields{
		"customerId": customer.ID,
		"role":       customer.Role.String(),
	})

	return commons.SuccessResponse("Login successful", models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(s.tokenTTL / time.Second),
		Role:        customer.Role.String(),
		Name:        customer.FullName,
	}), nil
}

func (s *AuthService) Authorize(token string, required ...domain.Role) (domain.Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Principal{}, commons.Unauthorized("No token")
	}

	principal, err := s.tokens.Parse(token)
	if err != nil {
		return domain.Principal{}, &commons.Error{Kind: commons.KindAuth, Message: "Invalid token", Err: err}
	}

	if len(required) > 0 {
		if err := requireRole(principal, required...); err != nil {
			return domain.Principal{}, err
		}
	}
	return principal, nil
}

// EnsureEmployee creates an employee account unless one already exists for
// accountNumber. It reports whether a new account was created.
func (s *AuthService) EnsureEmployee(ctx context.Context, req models.RegisterRequest) (domain.Customer, bool, error) {
	if err := req.Validate(); err != nil {
		return domain.Customer{}, false, err
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	existing, err := s.customers.GetByAccountNumber(lookupCtx, req.AccountNumber)
	cancel()
	switch {
	case err == nil:
		if existing.Role != domain.RoleEmployee {
			return domain.Customer{}, false, commons.Conflict("Account number belongs to a customer")
		}
		return existing, false, nil
	case !errors.Is(err, commons.ErrRecordNotFound):
		return domain.Customer{}, false, storageFailure(err)
	}

	created, err := s.createCustomer(ctx, req, domain.RoleEmployee)
	if err != nil {
		return domain.Customer{}, false, err
	}

	logger.Info("auth service employee seeded", logger.Fields{
		"customerId":    created.ID,
		"accountNumber": created.AccountNumber,
	})
	return created, true, nil
}

func (s *AuthService) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.hasher.Hash(uuid.NewString())
	})
	return s.dummyHash
}
