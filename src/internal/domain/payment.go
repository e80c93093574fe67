package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentState string

const (
	PaymentStateUnverified PaymentState = "UNVERIFIED"
	PaymentStateVerified   PaymentState = "VERIFIED"
	PaymentStateSubmitted  PaymentState = "SUBMITTED"
)

// Payment is an international payment instruction. Amount and Currency are
// what the customer asked to send; BaseAmount is what was debited.
type Payment struct {
	ID               string
	CustomerID       string
	Amount           decimal.Decimal
	Currency         string
	BaseAmount       decimal.Decimal
	Provider         string
	RecipientAccount string
	RoutingCode      string
	Verified         bool
	Submitted        bool
	CreatedAt        time.Time
	VerifiedAt       *time.Time
	SubmittedAt      *time.Time
}

func (p Payment) State() PaymentState {
	switch {
	case p.Submitted:
		return PaymentStateSubmitted
	case p.Verified:
		return PaymentStateVerified
	default:
		return PaymentStateUnverified
	}
}
