package services

import (
	"context"
	"errors"
	"time"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/http/models"
	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/api-sage/intl-payments-portal/src/internal/logger"
	"github.com/api-sage/intl-payments-portal/src/internal/usecase/service_interfaces"
	"github.com/google/uuid"
)

var _ service_interfaces.PaymentService = (*PaymentService)(nil)

// PaymentService authorises new payments. The balance debit and the ledger
// entry are written in one transaction, and payments for the same customer
// are processed one at a time.
type PaymentService struct {
	customers    repo_interfaces.CustomerRepository
	payments     repo_interfaces.PaymentRepository
	tx           repo_interfaces.Transactor
	converter    *CurrencyConverter
	storeTimeout time.Duration
	locks        *keyedLocker
}

func NewPaymentService(
	customers repo_interfaces.CustomerRepository,
	payments repo_interfaces.PaymentRepository,
	tx repo_interfaces.Transactor,
	converter *CurrencyConverter,
	storeTimeout time.Duration,
) *PaymentService {
	return &PaymentService{
		customers:    customers,
		payments:     payments,
		tx:           tx,
		converter:    converter,
		storeTimeout: storeTimeout,
		locks:        newKeyedLocker(),
	}
}

func (s *PaymentService) CreatePayment(ctx context.Context, caller domain.Principal, req models.CreatePaymentRequest) (commons.Response[models.PaymentResponse], error) {
	logger.Info("payment service create payment request", logger.Fields{
		"customerId": caller.SubjectID,
		"payload":    logger.SanitizePayload(req),
	})

	if err := requireRole(caller, domain.RoleCustomer); err != nil {
		logger.Error("payment service create payment forbidden", err, logger.Fields{
			"customerId": caller.SubjectID,
			"role":       caller.Role.String(),
		})
		return commons.FailureResponse[models.PaymentResponse](err), err
	}

	if err := req.Validate(); err != nil {
		logger.Error("payment service create payment validation failed", err, nil)
		return commons.FailureResponse[models.PaymentResponse](err), err
	}

	payment, err := s.authorize(ctx, caller.SubjectID, req)
	if err != nil {
		logger.Error("payment service create payment failed", err, logger.Fields{
			"customerId": caller.SubjectID,
		})
		return commons.FailureResponse[models.PaymentResponse](err), err
	}

	logger.Info("payment service create payment success", logger.Fields{
		"paymentId":  payment.ID,
		"customerId": payment.CustomerID,
		"baseAmount": payment.BaseAmount.String(),
	})

	return commons.SuccessResponse("Payment created", mapPaymentToResponse(payment)), nil
}

func (s *PaymentService) authorize(ctx context.Context, customerID string, req models.CreatePaymentRequest) (domain.Payment, error) {
	amount, err := req.Amount.Decimal()
	if err != nil {
		return domain.Payment{}, commons.Validation([]string{"amount"}, []string{"amount: must be numeric"})
	}
	baseAmount := s.converter.ToBaseAmount(amount, req.Currency)

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	release, err := s.locks.Acquire(ctx, customerID)
	if err != nil {
		return domain.Payment{}, storageFailure(err)
	}
	defer release()

	var created domain.Payment
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, customers repo_interfaces.CustomerRepository, payments repo_interfaces.PaymentRepository) error {
		customer, err := customers.GetByIDForUpdate(ctx, customerID)
		if err != nil {
			return notFoundOr(err, "Customer not found")
		}

		if baseAmount.GreaterThan(customer.Balance) {
			return commons.InsufficientFunds("Insufficient funds")
		}

		if err := customers.UpdateBalance(ctx, customer.ID, customer.Balance.Sub(baseAmount)); err != nil {
			if errors.Is(err, commons.ErrInsufficientBalance) {
				return commons.InsufficientFunds("Insufficient funds")
			}
			return notFoundOr(err, "Customer not found")
		}

		created, err = payments.Create(ctx, domain.Payment{
			ID:               uuid.NewString(),
			CustomerID:       customer.ID,
			Amount:           amount,
			Currency:         req.Currency,
			BaseAmount:       baseAmount,
			Provider:         req.Provider,
			RecipientAccount: req.RecipientAccount,
			RoutingCode:      req.SwiftCode,
		})
		if err != nil {
			return storageFailure(err)
		}
		return nil
	})
	if err != nil {
		return domain.Payment{}, storageFailure(err)
	}
	return created, nil
}

func (s *PaymentService) ListOwnPayments(ctx context.Context, caller domain.Principal) (commons.Response[[]models.PaymentResponse], error) {
	logger.Info("payment service list own payments request", logger.Fields{
		"customerId": caller.SubjectID,
	})

	if err := requireRole(caller, domain.RoleCustomer, domain.RoleEmployee); err != nil {
		return commons.FailureResponse[[]models.PaymentResponse](err), err
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	payments, err := s.payments.ListByCustomer(ctx, caller.SubjectID)
	if err != nil {
		err = storageFailure(err)
		logger.Error("payment service list own payments failed", err, logger.Fields{
			"customerId": caller.SubjectID,
		})
		return commons.FailureResponse[[]models.PaymentResponse](err), err
	}

	logger.Info("payment service list own payments success", logger.Fields{
		"customerId": caller.SubjectID,
		"count":      len(payments),
	})

	return commons.SuccessResponse("Payments fetched", mapPaymentsToResponse(payments)), nil
}
