package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultOpeningBalance is credited to every newly registered customer.
var DefaultOpeningBalance = decimal.NewFromInt(25000)

type Customer struct {
	ID            string
	FullName      string
	IDNumber      string
	AccountNumber string
	Balance       decimal.Decimal
	Role          Role
	PasswordHash  string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
