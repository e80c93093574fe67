package repo_interfaces

import "context"

// TxFunc runs against repositories bound to a single transaction.
type TxFunc func(ctx context.Context, customers CustomerRepository, payments PaymentRepository) error

// Transactor commits the writes made inside fn only when fn returns nil.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn TxFunc) error
}
