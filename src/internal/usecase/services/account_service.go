package services

import (
	"context"
	"time"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/api-sage/intl-payments-portal/src/internal/logger"
	"github.com/api-sage/intl-payments-portal/src/internal/usecase/service_interfaces"
)

var _ service_interfaces.AccountService = (*AccountService)(nil)

type AccountService struct {
	customers    repo_interfaces.CustomerRepository
	storeTimeout time.Duration
}

func NewAccountService(customers repo_interfaces.CustomerRepository, storeTimeout time.Duration) *AccountService {
	return &AccountService{
		customers:    customers,
		storeTimeout: storeTimeout,
	}
}

func (s *AccountService) GetAccountDetails(ctx context.Context, caller domain.Principal) (commons.Response[models.AccountDetailsResponse], error) {
	logger.Info("account service get account details request", logger.Fields{
		"customerId": caller.SubjectID,
	})

	if err := requireRole(caller, domain.RoleCustomer, domain.RoleEmployee); err != nil {
		return commons.FailureResponse[models.AccountDetailsResponse](err), err
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	customer, err := s.customers.GetByID(ctx, caller.SubjectID)
	if err != nil {
		err = notFoundOr(err, "Account not found")
		logger.Error("account service get account details failed", err, logger.Fields{
			"customerId": caller.SubjectID,
		})
		return commons.FailureResponse[models.AccountDetailsResponse](err), err
	}

	logger.Info("account service get account details success", logger.Fields{
		"customerId":    customer.ID,
		"accountNumber": customer.AccountNumber,
	})

	return commons.SuccessResponse("Account details fetched", models.AccountDetailsResponse{
		ID:            customer.ID,
		FullName:      customer.FullName,
		AccountNumber: customer.AccountNumber,
		Balance:       customer.Balance.StringFixed(2),
		Currency:      domain.BaseCurrency,
		Role:          customer.Role.String(),
	}), nil
}
