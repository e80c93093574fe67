package models

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreatePaymentRequest struct {
	Amount           DecimalText `json:"amount"`
	Currency         string      `json:"currency"`
	Provider         string      `json:"provider"`
	SwiftCode        string      `json:"swiftCode"`
	RecipientAccount string      `json:"recipientAccount"`
}

func (r CreatePaymentRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.Amount, validation.Required, validation.By(positiveAmount)),
		validation.Field(&r.Currency, validation.Required, validation.Match(currencyPattern).Error("must be 3 upper case letters")),
		validation.Field(&r.Provider, validation.Required, validation.By(trimmed), validation.Match(providerPattern).Error("must be 2-50 letters or spaces")),
		validation.Field(&r.SwiftCode, validation.Required, validation.Match(swiftCodePattern).Error("must be 8-11 upper case letters or digits")),
		validation.Field(&r.RecipientAccount, validation.Required, validation.Match(accountPattern).Error("must be 10-20 digits")),
	))
}

type PaymentResponse struct {
	ID               string  `json:"id"`
	CustomerID       string  `json:"customerId"`
	Amount           string  `json:"amount"`
	Currency         string  `json:"currency"`
	BaseAmount       string  `json:"baseAmount"`
	BaseCurrency     string  `json:"baseCurrency"`
	Provider         string  `json:"provider"`
	SwiftCode        string  `json:"swiftCode"`
	RecipientAccount string  `json:"recipientAccount"`
	Status           string  `json:"status"`
	Verified         bool    `json:"verified"`
	Submitted        bool    `json:"submitted"`
	CreatedAt        string  `json:"createdAt"`
	VerifiedAt       *string `json:"verifiedAt,omitempty"`
	SubmittedAt      *string `json:"submittedAt,omitempty"`
}
