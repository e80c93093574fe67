package service_interfaces

import (
	"context"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (commons.Response[models.RegisterResponse], error)
	Login(ctx context.Context, req models.LoginRequest) (commons.Response[models.LoginResponse], error)
	Authorizer
}

// Authorizer validates a bearer credential and, when roles are given,
// requires the caller to hold one of them.
type Authorizer interface {
	Authorize(token string, required ...domain.Role) (domain.Principal, error)
}
