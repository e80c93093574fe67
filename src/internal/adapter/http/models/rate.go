package models

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type RateResponse struct {
	Currency     string `json:"currency"`
	BaseCurrency string `json:"baseCurrency"`
	Rate         string `json:"rate"`
}

type QuoteRequest struct {
	Amount   DecimalText `json:"amount"`
	Currency string      `json:"currency"`
}

func (r QuoteRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Amount, validation.Required, validation.By(positiveAmount)),
		validation.Field(&r.Currency, validation.Required, validation.Match(currencyPattern).Error("must be 3 upper case letters")),
	))
}

type QuoteResponse struct {
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	Rate         string `json:"rate"`
	BaseAmount   string `json:"baseAmount"`
	BaseCurrency string `json:"baseCurrency"`
}
