package models

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/api-sage/intl-payments-portal/src/internal/commons"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

var (
	namePattern      = regexp.MustCompile(`^[A-Za-z\s]{2,50}$`)
	idNumberPattern  = regexp.MustCompile(`^[0-9]{13}$`)
	accountPattern   = regexp.MustCompile(`^[0-9]{10,20}$`)
	currencyPattern  = regexp.MustCompile(`^[A-Z]{3}$`)
	providerPattern  = regexp.MustCompile(`^[A-Za-z\s]{2,50}$`)
	swiftCodePattern = regexp.MustCompile(`^[A-Z0-9]{8,11}$`)
)

// DecimalText keeps a money amount exactly as the client sent it. Both JSON
// numbers and JSON strings are accepted; parsing happens during validation.
type DecimalText string

func (d *DecimalText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*d = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		if len(data) < 2 || data[len(data)-1] != '"' {
			return errors.New("amount: malformed string")
		}
		data = data[1 : len(data)-1]
	}
	*d = DecimalText(strings.TrimSpace(string(data)))
	return nil
}

func (d DecimalText) Decimal() (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(string(d)))
}

// Money bounds. Exponents are checked before any arithmetic so that inputs
// like 1e-50000000 never reach a rescale.
const (
	maxAmountText   = 40
	maxAmountScale  = 8
	maxAmountDigits = 20
	maxAmountPower  = 12
)

var maxAmount = decimal.New(1, maxAmountPower)

func positiveAmount(value interface{}) error {
	text, _ := value.(DecimalText)
	raw := strings.TrimSpace(string(text))
	if raw == "" {
		return nil
	}
	if len(raw) > maxAmountText {
		return errors.New("is too long")
	}
	amount, err := text.Decimal()
	if err != nil {
		return errors.New("must be numeric")
	}
	if amount.Exponent() < -maxAmountScale {
		return fmt.Errorf("must have at most %d decimal places", maxAmountScale)
	}
	if amount.Exponent() > maxAmountPower || amount.NumDigits() > maxAmountDigits {
		return errors.New("is too large")
	}
	if !amount.IsPositive() {
		return errors.New("must be greater than zero")
	}
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("must not exceed %s", maxAmount.String())
	}
	return nil
}

// strongPassword requires at least eight characters mixing upper case,
// lower case, digits and symbols.
func strongPassword(value interface{}) error {
	password, _ := value.(string)
	if password == "" {
		return nil
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	if len([]rune(password)) < 8 || !upper || !lower || !digit || !symbol {
		return errors.New("must be at least 8 characters and include upper case, lower case, digit and symbol")
	}
	return nil
}

func trimmed(value interface{}) error {
	s, _ := value.(string)
	if s != strings.TrimSpace(s) {
		return errors.New("must not have leading or trailing spaces")
	}
	return nil
}

// asValidationError turns ozzo field errors into a classified error listing
// the offending fields in a stable order.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return commons.Validation(nil, []string{err.Error()})
	}

	fields := make([]string, 0, len(fieldErrs))
	for field, fieldErr := range fieldErrs {
		if fieldErr != nil {
			fields = append(fields, field)
		}
	}
	sort.Strings(fields)

	details := make([]string, 0, len(fields))
	for _, field := range fields {
		details = append(details, fmt.Sprintf("%s: %s", field, fieldErrs[field].Error()))
	}
	return commons.Validation(fields, details)
}
