package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func parseClaims(t *testing.T, token, secret string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	return claims
}

func TestNewTokenIssuer_EmptySecret(t *testing.T) {
	if _, err := NewTokenIssuer("", "identity-system", time.Hour); err == nil {
		t.Fatalf("expected configuration error for empty secret")
	}
}

func TestTokenIssuer_ManagerCarriesDepartmentClaim(t *testing.T) {
	issuer, err := NewTokenIssuer("secret", "identity-system", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer returned error: %v", err)
	}

	mgr, _ := domain.NewManager("Bob Lead", "bob@x.com", "h", 2)
	mgr.ID = "user-1"

	token, err := issuer.Issue(mgr)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims := parseClaims(t, token, "secret")
	if claims["sub"] != "user-1" {
		t.Fatalf("unexpected sub claim: %v", claims["sub"])
	}
	if claims["email"] != "bob@x.com" {
		t.Fatalf("unexpected email claim: %v", claims["email"])
	}
	if claims["name"] != "Bob Lead" {
		t.Fatalf("unexpected name claim: %v", claims["name"])
	}
	if claims["role"] != "Manager" {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
	if claims["iss"] != "identity-system" {
		t.Fatalf("unexpected iss claim: %v", claims["iss"])
	}
	dept, ok := claims["department_id"].(float64)
	if !ok || int(dept) != 2 {
		t.Fatalf("expected department_id claim 2, got %v", claims["department_id"])
	}
}

func TestTokenIssuer_EmployeeOmitsDepartmentClaim(t *testing.T) {
	issuer, _ := NewTokenIssuer("secret", "", time.Hour)
	emp, _ := domain.NewEmployee("Jane Doe", "jane@x.com", "h", "")
	emp.ID = "user-2"

	token, err := issuer.Issue(emp)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims := parseClaims(t, token, "secret")
	if _, present := claims["department_id"]; present {
		t.Fatalf("employee token must not carry a department claim")
	}
	if claims["role"] != "Employee" {
		t.Fatalf("unexpected role claim: %v", claims["role"])
	}
}

func TestTokenIssuer_Deterministic(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	emp, _ := domain.NewEmployee("Jane Doe", "jane@x.com", "h", "")
	emp.ID = "user-3"

	a, _ := NewTokenIssuer("secret", "", time.Hour)
	b, _ := NewTokenIssuer("secret", "", time.Hour)
	tokenA, err := a.WithClock(fixedClock(now)).Issue(emp)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	tokenB, err := b.WithClock(fixedClock(now)).Issue(emp)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if tokenA != tokenB {
		t.Fatalf("identical identity + fixed clock + key must yield identical tokens")
	}
}

func TestTokenIssuer_ExpiryIsIssuedAtPlusTTL(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	ttl := 45 * time.Minute

	issuer, _ := NewTokenIssuer("secret", "", ttl)
	emp, _ := domain.NewEmployee("Jane Doe", "jane@x.com", "h", "")
	token, err := issuer.WithClock(fixedClock(now)).Issue(emp)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims := parseClaims(t, token, "secret")
	iat := int64(claims["iat"].(float64))
	exp := int64(claims["exp"].(float64))
	if iat != now.Unix() {
		t.Fatalf("expected iat %d, got %d", now.Unix(), iat)
	}
	if exp != now.Add(ttl).Unix() {
		t.Fatalf("expected exp %d, got %d", now.Add(ttl).Unix(), exp)
	}
}
