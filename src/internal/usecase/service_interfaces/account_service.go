package service_interfaces

import (
	"context"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
)

type AccountService interface {
	GetAccountDetails(ctx context.Context, caller domain.Principal) (commons.Response[models.AccountDetailsResponse], error)
}
