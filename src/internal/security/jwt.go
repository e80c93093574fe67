package security

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/api-sage/intl-payments-portal/src/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

var _ domain.TokenIssuer = (*JWTIssuer)(nil)

var ErrInvalidToken = errors.New("invalid token")

type claims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// JWTIssuer signs HS256 tokens carrying the subject id, role and display
// name of the caller.
type JWTIssuer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

type JWTOption func(*JWTIssuer)

func WithClock(now func() time.Time) JWTOption {
	return func(i *JWTIssuer) {
		i.now = now
	}
}

func WithIssuer(issuer string) JWTOption {
	return func(i *JWTIssuer) {
		i.issuer = issuer
	}
}

func NewJWTIssuer(secret string, opts ...JWTOption) *JWTIssuer {
	i := &JWTIssuer{
		secret: []byte(secret),
		issuer: "intl-payments-portal",
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

func (i *JWTIssuer) Issue(subjectID string, role domain.Role, name string, ttl time.Duration) (string, error) {
	if strings.TrimSpace(subjectID) == "" || !role.Valid() {
		return "", fmt.Errorf("issue token: subject and role are required")
	}

	now := i.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: role.String(),
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (i *JWTIssuer) Parse(token string) (domain.Principal, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(
		token,
		&c,
		func(*jwt.Token) (any, error) { return i.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(i.now),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return domain.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	role, err := domain.ParseRole(c.Role)
	if err != nil || c.Subject == "" {
		return domain.Principal{}, fmt.Errorf("%w: bad claims", ErrInvalidToken)
	}

	return domain.Principal{
		SubjectID: c.Subject,
		Role:      role,
		Name:      c.Name,
	}, nil
}
