package domain

import (
	"context"
	"time"
)

// Principal is the authenticated caller carried by a bearer token.
type Principal struct {
	SubjectID string
	Role      Role
	Name      string
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext string, hash string) bool
}

type TokenIssuer interface {
	Issue(subjectID string, role Role, name string, ttl time.Duration) (string, error)
	Parse(token string) (Principal, error)
}

// PaymentDispatcher hands a released payment to the settlement network.
type PaymentDispatcher interface {
	Dispatch(ctx context.Context, payment Payment) error
}
