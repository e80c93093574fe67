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
	"github.com/google/uuid"
)

var _ service_interfaces.ReviewService = (*ReviewService)(nil)

// ReviewService moves payments through Unverified -> Verified -> Submitted.
// Transitions never go backwards and repeating one is a no-op.
type ReviewService struct {
	payments     repo_interfaces.PaymentRepository
	tx           repo_interfaces.Transactor
	dispatcher   domain.PaymentDispatcher
	storeTimeout time.Duration
	locks        *keyedLocker
}

func NewReviewService(
	payments repo_interfaces.PaymentRepository,
	tx repo_interfaces.Transactor,
	dispatcher domain.PaymentDispatcher,
	storeTimeout time.Duration,
) *ReviewService {
	return &ReviewService{
		payments:     payments,
		tx:           tx,
		dispatcher:   dispatcher,
		storeTimeout: storeTimeout,
		locks:        newKeyedLocker(),
	}
}

func (s *ReviewService) ListPending(ctx context.Context, caller domain.Principal) (commons.Response[[]models.PaymentResponse], error) {
	logger.Info("review service list pending request", logger.Fields{
		"employeeId": caller.SubjectID,
	})

	if err := requireRole(caller, domain.RoleEmployee); err != nil {
		return commons.FailureResponse[[]models.PaymentResponse](err), err
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	payments, err := s.payments.ListUnverified(ctx)
	if err != nil {
		err = storageFailure(err)
		logger.Error("review service list pending failed", err, nil)
		return commons.FailureResponse[[]models.PaymentResponse](err), err
	}

	logger.Info("review service list pending success", logger.Fields{
		"count": len(payments),
	})

	return commons.SuccessResponse("Pending payments fetched", mapPaymentsToResponse(payments)), nil
}

func (s *ReviewService) VerifyPayment(ctx context.Context, caller domain.Principal, paymentID string) (commons.Response[models.PaymentResponse], error) {
	return s.transition(ctx, caller, paymentID, "verify", func(ctx context.Context, payments repo_interfaces.PaymentRepository, current domain.Payment) (domain.Payment, error) {
		if current.Verified {
			return current, nil
		}
		return payments.UpdateState(ctx, current.ID, true, false)
	})
}

func (s *ReviewService) SubmitPayment(ctx context.Context, caller domain.Principal, paymentID string) (commons.Response[models.PaymentResponse], error) {
	return s.transition(ctx, caller, paymentID, "submit", func(ctx context.Context, payments repo_interfaces.PaymentRepository, current domain.Payment) (domain.Payment, error) {
		switch current.State() {
		case domain.PaymentStateUnverified:
			return domain.Payment{}, commons.Precondition("Must verify first")
		case domain.PaymentStateSubmitted:
			return current, nil
		case domain.PaymentStateVerified:
			updated, err := payments.UpdateState(ctx, current.ID, true, true)
			if err != nil {
				return domain.Payment{}, err
			}
			// A failed hand-off rolls the state change back.
			if err := s.dispatcher.Dispatch(ctx, updated); err != nil {
				return domain.Payment{}, commons.Storage("Unable to submit payment right now", err)
			}
			return updated, nil
		default:
			return domain.Payment{}, commons.Precondition("Unknown payment state")
		}
	})
}

type transitionFunc func(ctx context.Context, payments repo_interfaces.PaymentRepository, current domain.Payment) (domain.Payment, error)

func (s *ReviewService) transition(ctx context.Context, caller domain.Principal, paymentID string, action string, apply transitionFunc) (commons.Response[models.PaymentResponse], error) {
	logger.Info("review service "+action+" request", logger.Fields{
		"employeeId": caller.SubjectID,
		"paymentId":  paymentID,
	})

	payment, err := s.runTransition(ctx, caller, paymentID, apply)
	if err != nil {
		logger.Error("review service "+action+" failed", err, logger.Fields{
			"paymentId": paymentID,
		})
		return commons.FailureResponse[models.PaymentResponse](err), err
	}

	logger.Info("review service "+action+" success", logger.Fields{
		"paymentId": payment.ID,
		"status":    string(payment.State()),
	})

	message := "Verified"
	if action == "submit" {
		message = "Submitted"
	}
	return commons.SuccessResponse(message, mapPaymentToResponse(payment)), nil
}

func (s *ReviewService) runTransition(ctx context.Context, caller domain.Principal, paymentID string, apply transitionFunc) (domain.Payment, error) {
	if err := requireRole(caller, domain.RoleEmployee); err != nil {
		return domain.Payment{}, err
	}

	id, err := uuid.Parse(paymentID)
	if err != nil {
		return domain.Payment{}, commons.NotFound("Payment not found")
	}

	ctx, cancel := context.WithTimeout(ctx, s.storeTimeout)
	defer cancel()

	release, err := s.locks.Acquire(ctx, id.String())
	if err != nil {
		return domain.Payment{}, storageFailure(err)
	}
	defer release()

	var result domain.Payment
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, _ repo_interfaces.CustomerRepository, payments repo_interfaces.PaymentRepository) error {
		current, err := payments.GetByIDForUpdate(ctx, id.String())
		if err != nil {
			return notFoundOr(err, "Payment not found")
		}

		updated, err := apply(ctx, payments, current)
		if err != nil {
			return notFoundOr(err, "Payment not found")
		}
		result = updated
		return nil
	})
	if err != nil {
		return domain.Payment{}, storageFailure(err)
	}
	return result, nil
}
