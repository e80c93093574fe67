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
	"github.com/shopspring/decimal"
)

var _ repo_interfaces.CustomerRepository = (*CustomerRepository)(nil)

const customerColumns = `id, full_name, id_number, account_number, balance, role, password_hash, created_at, updated_at`

type CustomerRepository struct {
	db dbtx
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	logger.Info("customer repository create", logger.Fields{
		"customerId":    customer.ID,
		"accountNumber": customer.AccountNumber,
	})

	const query = `
INSERT INTO customers (
	id,
	full_name,
	id_number,
	account_number,
	balance,
	role,
	password_hash
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at, updated_at`

	if err := r.db.QueryRowContext(
		ctx,
		query,
		customer.ID,
		customer.FullName,
		customer.IDNumber,
		customer.AccountNumber,
		customer.Balance,
		customer.Role.String(),
		customer.PasswordHash,
	).Scan(&customer.CreatedAt, &customer.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Customer{}, commons.ErrDuplicateRecord
		}
		logger.Error("customer repository create failed", err, logger.Fields{
			"accountNumber": customer.AccountNumber,
		})
		return domain.Customer{}, fmt.Errorf("create customer: %w", err)
	}

	return customer, nil
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	return r.getOne(ctx, "get by id", `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id)
}

func (r *CustomerRepository) GetByIDForUpdate(ctx context.Context, id string) (domain.Customer, error) {
	return r.getOne(ctx, "get by id for update", `SELECT `+customerColumns+` FROM customers WHERE id = $1 FOR UPDATE`, id)
}

func (r *CustomerRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Customer, error) {
	return r.getOne(ctx, "get by account number", `SELECT `+customerColumns+` FROM customers WHERE account_number = $1`, accountNumber)
}

func (r *CustomerRepository) GetByAccountOrIDNumber(ctx context.Context, accountNumber string, idNumber string) (domain.Customer, error) {
	const query = `
SELECT ` + customerColumns + `
FROM customers
WHERE account_number = $1 OR id_number = $2
LIMIT 1`
	return r.getOne(ctx, "get by account or id number", query, accountNumber, idNumber)
}

func (r *CustomerRepository) UpdateBalance(ctx context.Context, id string, newBalance decimal.Decimal) error {
	if newBalance.IsNegative() {
		return commons.ErrInsufficientBalance
	}

	const query = `
UPDATE customers
SET balance = $2::numeric,
    updated_at = NOW()
WHERE id = $1`

	rows, err := execRequiredRows(ctx, r.db, query, id, newBalance)
	if err != nil {
		logger.Error("customer repository update balance failed", err, logger.Fields{
			"customerId": id,
		})
		return fmt.Errorf("update customer balance: %w", err)
	}
	if rows == 0 {
		return commons.ErrRecordNotFound
	}
	return nil
}

func (r *CustomerRepository) getOne(ctx context.Context, op string, query string, args ...any) (domain.Customer, error) {
	customer, err := scanCustomer(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, commons.ErrRecordNotFound
		}
		logger.Error("customer repository "+op+" failed", err, nil)
		return domain.Customer{}, fmt.Errorf("customer %s: %w", op, err)
	}
	return customer, nil
}

func scanCustomer(row *sql.Row) (domain.Customer, error) {
	var customer domain.Customer
	var role string
	if err := row.Scan(
		&customer.ID,
		&customer.FullName,
		&customer.IDNumber,
		&customer.AccountNumber,
		&customer.Balance,
		&role,
		&customer.PasswordHash,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	); err != nil {
		return domain.Customer{}, err
	}

	parsed, err := domain.ParseRole(role)
	if err != nil {
		return domain.Customer{}, err
	}
	customer.Role = parsed
	return customer, nil
}
