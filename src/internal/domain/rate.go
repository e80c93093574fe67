package domain

import (
	"github.com/shopspring/decimal"
)

// BaseCurrency is the currency balances are held in. Every other currency is
// quoted as units of BaseCurrency per unit.
const BaseCurrency = "ZAR"

type Rate struct {
	Currency string
	Rate     decimal.Decimal
}
