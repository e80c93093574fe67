package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/api-sage/intl-payments-portal/src/internal/logger"
)

var _ repo_interfaces.PaymentRepository = (*PaymentRepository)(nil)

const paymentColumns = `id, customer_id, amount, currency, base_amount, provider, recipient_account, routing_code, verified, submitted, created_at, verified_at, submitted_at`

type PaymentRepository struct {
	db dbtx
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, payment domain.Payment) (domain.Payment, error) {
	logger.Info("payment repository create", logger.Fields{
		"paymentId":  payment.ID,
		"customerId": payment.CustomerID,
		"currency":   payment.Currency,
		"baseAmount": payment.BaseAmount,
	})

	const query = `
INSERT INTO payments (
	id,
	customer_id,
	amount,
	currency,
	base_amount,
	provider,
	recipient_account,
	routing_code
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		payment.ID,
		payment.CustomerID,
		payment.Amount,
		payment.Currency,
		payment.BaseAmount,
		payment.Provider,
		payment.RecipientAccount,
		payment.RoutingCode,
	).Scan(&payment.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Payment{}, commons.ErrDuplicateRecord
		}
		logger.Error("payment repository create failed", err, logger.Fields{
			"paymentId": payment.ID,
		})
		return domain.Payment{}, fmt.Errorf("create payment: %w", err)
	}

	payment.Verified = false
	payment.Submitted = false
	return payment, nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id string) (domain.Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
}

func (r *PaymentRepository) GetByIDForUpdate(ctx context.Context, id string) (domain.Payment, error) {
	return r.getOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1 FOR UPDATE`, id)
}

func (r *PaymentRepository) UpdateState(ctx context.Context, id string, verified bool, submitted bool) (domain.Payment, error) {
	logger.Info("payment repository update state", logger.Fields{
		"paymentId": id,
		"verified":  verified,
		"submitted": submitted,
	})

	const query = `
UPDATE payments
SET verified = verified OR $2,
    submitted = submitted OR $3,
    verified_at = CASE WHEN NOT verified AND $2 THEN NOW() ELSE verified_at END,
    submitted_at = CASE WHEN NOT submitted AND $3 THEN NOW() ELSE submitted_at END
WHERE id = $1
RETURNING ` + paymentColumns

	payment, err := scanPayment(r.db.QueryRowContext(ctx, query, id, verified, submitted))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Payment{}, commons.ErrRecordNotFound
		}
		logger.Error("payment repository update state failed", err, logger.Fields{
			"paymentId": id,
		})
		return domain.Payment{}, fmt.Errorf("update payment state: %w", err)
	}
	return payment, nil
}

func (r *PaymentRepository) ListByCustomer(ctx context.Context, customerID string) ([]domain.Payment, error) {
	const query = `
SELECT ` + paymentColumns + `
FROM payments
WHERE customer_id = $1
ORDER BY created_at DESC, id DESC`
	return r.list(ctx, query, customerID)
}

func (r *PaymentRepository) ListUnverified(ctx context.Context) ([]domain.Payment, error) {
	const query = `
SELECT ` + paymentColumns + `
FROM payments
WHERE verified = FALSE
ORDER BY created_at ASC, id ASC`
	return r.list(ctx, query)
}

func (r *PaymentRepository) getOne(ctx context.Context, query string, id string) (domain.Payment, error) {
	payment, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Payment{}, commons.ErrRecordNotFound
		}
		logger.Error("payment repository get failed", err, logger.Fields{
			"paymentId": id,
		})
		return domain.Payment{}, fmt.Errorf("get payment: %w", err)
	}
	return payment, nil
}

func (r *PaymentRepository) list(ctx context.Context, query string, args ...any) ([]domain.Payment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("payment repository list failed", err, nil)
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	payments := make([]domain.Payment, 0)
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		payments = append(payments, payment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate payments: %w", err)
	}
	return payments, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (domain.Payment, error) {
	var payment domain.Payment
	var verifiedAt sql.NullTime
	var submittedAt sql.NullTime
	if err := row.Scan(
		&payment.ID,
		&payment.CustomerID,
		&payment.Amount,
		&payment.Currency,
		&payment.BaseAmount,
		&payment.Provider,
		&payment.RecipientAccount,
		&payment.RoutingCode,
		&payment.Verified,
		&payment.Submitted,
		&payment.CreatedAt,
		&verifiedAt,
		&submittedAt,
	); err != nil {
		return domain.Payment{}, err
	}

	if verifiedAt.Valid {
		payment.VerifiedAt = &verifiedAt.Time
	}
	if submittedAt.Valid {
		payment.SubmittedAt = &submittedAt.Time
	}
	return payment, nil
}
