package models

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type RegisterRequest struct {
	FullName      string `json:"fullName"`
	IDNumber      string `json:"idNumber"`
	AccountNumber string `json:"accountNumber"`
	Password      string `json:"password"`
}

func (r RegisterRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.FullName, validation.Required, validation.By(trimmed), validation.Match(namePattern).Error("must be 2-50 letters or spaces")),
		validation.Field(&r.IDNumber, validation.Required, validation.Match(idNumberPattern).Error("must be exactly 13 digits")),
		validation.Field(&r.AccountNumber, validation.Required, validation.Match(accountPattern).Error("must be 10-20 digits")),
		validation.Field(&r.Password, validation.Required, validation.By(strongPassword)),
	))
}

type RegisterResponse struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	AccountNumber string `json:"accountNumber"`
	Role          string `json:"role"`
}

// LoginRequest is only checked for presence. Format errors would reveal
// which account numbers can exist.
type LoginRequest struct {
	AccountNumber string `json:"accountNumber"`
	Password      string `json:"password"`
}

func (r LoginRequest) Validate() error {
	return asValidationError(validation.ValidateStruct(&r,
		validation.Field(&r.AccountNumber, validation.Required),
		validation.Field(&r.Password, validation.Required),
	))
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
	Role        string `json:"role"`
	Name        string `json:"name"`
}

type AccountDetailsResponse struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	AccountNumber string `json:"accountNumber"`
	Balance       string `json:"balance"`
	Currency      string `json:"currency"`
	Role          string `json:"role"`
}
