package memory

import (
	"context"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/shopspring/decimal"
)

var _ repo_interfaces.CustomerRepository = (*CustomerRepository)(nil)
var _ repo_interfaces.CustomerRepository = (*txCustomerRepository)(nil)

type CustomerRepository struct {
	store *Store
}

func (r *CustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	var created domain.Customer
	err := r.store.view(ctx, func(t *tables) error {
		var err error
		created, err = t.createCustomer(customer)
		return err
	})
	return created, err
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	var customer domain.Customer
	err := r.store.view(ctx, func(t *tables) error {
		var err error
		customer, err = t.customerByID(id)
		return err
	})
	return customer, err
}

// GetByIDForUpdate outside a transaction is a plain read.
func (r *CustomerRepository) GetByIDForUpdate(ctx context.Context, id string) (domain.Customer, error) {
	return r.GetByID(ctx, id)
}

func (r *CustomerRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Customer, error) {
	var customer domain.Customer
	err := r.store.view(ctx, func(t *tables) error {
		var err error
		customer, err = t.customerWhere(byAccountNumber(accountNumber))
		return err
	})
	return customer, err
}

func (r *CustomerRepository) GetByAccountOrIDNumber(ctx context.Context, accountNumber string, idNumber string) (domain.Customer, error) {
	var customer domain.Customer
	err := r.store.view(ctx, func(t *tables) error {
		var err error
		customer, err = t.customerWhere(byAccountOrIDNumber(accountNumber, idNumber))
		return err
	})
	return customer, err
}

func (r *CustomerRepository) UpdateBalance(ctx context.Context, id string, newBalance decimal.Decimal) error {
	return r.store.view(ctx, func(t *tables) error {
		return t.updateBalance(id, newBalance)
	})
}

type txCustomerRepository struct {
	t *tables
}

func (r *txCustomerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, err
	}
	return r.t.createCustomer(customer)
}

func (r *txCustomerRepository) GetByID(ctx context.Context, id string) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, err
	}
	return r.t.customerByID(id)
}

func (r *txCustomerRepository) GetByIDForUpdate(ctx context.Context, id string) (domain.Customer, error) {
	return r.GetByID(ctx, id)
}

func (r *txCustomerRepository) GetByAccountNumber(ctx context.Context, accountNumber string) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, err
	}
	return r.t.customerWhere(byAccountNumber(accountNumber))
}

func (r *txCustomerRepository) GetByAccountOrIDNumber(ctx context.Context, accountNumber string, idNumber string) (domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return domain.Customer{}, err
	}
	return r.t.customerWhere(byAccountOrIDNumber(accountNumber, idNumber))
}

func (r *txCustomerRepository) UpdateBalance(ctx context.Context, id string, newBalance decimal.Decimal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.t.updateBalance(id, newBalance)
}

func byAccountNumber(accountNumber string) func(domain.Customer) bool {
	return func(c domain.Customer) bool {
		return c.AccountNumber == accountNumber
	}
}

func byAccountOrIDNumber(accountNumber string, idNumber string) func(domain.Customer) bool {
	return func(c domain.Customer) bool {
		return c.AccountNumber == accountNumber || c.IDNumber == idNumber
	}
}
