package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

// TokenIssuer signs stateless HS256 tokens carrying identity claims. The
// department claim is only present for identities that carry a manager
// profile, so downstream authorization can trust its absence.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer validates the signing configuration once, at construction.
// An empty secret is a fatal configuration fault, not a per-request error.
func NewTokenIssuer(secret, issuer string, ttl time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, errors.New("token issuer: signing secret must not be empty")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &TokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// WithClock pins the issuer's clock. Intended for tests.
func (i *TokenIssuer) WithClock(now func() time.Time) *TokenIssuer {
	i.now = now
	return i
}

// Issue signs a token for the identity. Expiry is strictly issuedAt + ttl.
func (i *TokenIssuer) Issue(u *domain.User) (string, error) {
	issuedAt := i.now().UTC()
	claims := jwt.MapClaims{
		"sub":   u.ID,
		"email": u.Email,
		"name":  u.FullName,
		"role":  string(u.Role),
		"iat":   issuedAt.Unix(),
		"exp":   issuedAt.Add(i.ttl).Unix(),
	}
	if i.issuer != "" {
		claims["iss"] = i.issuer
	}
	if dept, ok := u.DepartmentID(); ok {
		claims["department_id"] = dept
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return token, nil
}
