package services

import (
	"strings"

	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/shopspring/decimal"
)

// CurrencyConverter normalises amounts to the base currency using a fixed
// table. A currency missing from the table converts at 1.
type CurrencyConverter struct {
	rates map[string]decimal.Decimal
}

func NewCurrencyConverter(rates []domain.Rate) *CurrencyConverter {
	c := &CurrencyConverter{rates: make(map[string]decimal.Decimal, len(rates))}
	for _, rate := range rates {
		c.rates[strings.ToUpper(strings.TrimSpace(rate.Currency))] = rate.Rate
	}
	return c
}

func (c *CurrencyConverter) RateFor(currency string) decimal.Decimal {
	if rate, ok := c.rates[currency]; ok {
		return rate
	}
	return decimal.NewFromInt(1)
}

func (c *CurrencyConverter) ToBaseAmount(amount decimal.Decimal, currency string) decimal.Decimal {
	return amount.Mul(c.RateFor(currency))
}
