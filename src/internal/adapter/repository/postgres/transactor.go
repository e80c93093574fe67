package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/api-sage/intl-payments-portal/src/internal/adapter/repository/repo_interfaces"
	"github.com/api-sage/intl-payments-portal/src/internal/logger"
)

var _ repo_interfaces.Transactor = (*Transactor)(nil)

type Transactor struct {
	db *sql.DB
}

func NewTransactor(db *sql.DB) *Transactor {
	return &Transactor{db: db}
}

// WithinTransaction runs fn in a READ COMMITTED transaction. Row locks taken
// with the ForUpdate reads are held until commit or rollback.
func (t *Transactor) WithinTransaction(ctx context.Context, fn repo_interfaces.TxFunc) (err error) {
	tx, err := t.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		logger.Error("transactor begin tx failed", err, nil)
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(ctx, &CustomerRepository{db: tx}, &PaymentRepository{db: tx}); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		logger.Error("transactor commit tx failed", err, nil)
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
