package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/ports"
)

type authFixture struct {
	repo     *stubUserRepo
	throttle *stubThrottle
	sink     *stubAuditSink
	svc      *AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	repo := newStubUserRepo()
	throttle := newStubThrottle()
	sink := &stubAuditSink{}
	issuer, err := NewTokenIssuer("secret", "identity-system", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer returned error: %v", err)
	}
	svc := NewAuthService(repo, testHasher(), issuer, throttle, sink, zerolog.Nop())
	return &authFixture{repo: repo, throttle: throttle, sink: sink, svc: svc}
}

func registerEmployee(t *testing.T, f *authFixture, email, password string) *ports.AuthResult {
	t.Helper()
	res, err := f.svc.Register(context.Background(), ports.RegisterInput{
		FullName: "Jane Doe",
		Email:    email,
		Password: password,
		Role:     domain.RoleEmployee,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	return res
}

func TestAuthService_Register_Employee(t *testing.T) {
	f := newAuthFixture(t)

	res := registerEmployee(t, f, "jane@x.com", "secret-1")
	if res.Token == "" {
		t.Fatalf("expected a token")
	}
	if res.User.Role != domain.RoleEmployee {
		t.Fatalf("unexpected role: %s", res.User.Role)
	}
	if res.User.DepartmentID != nil {
		t.Fatalf("employee summary must not carry a department")
	}
	if res.User.JobTitle != domain.DefaultEmployeeJobTitle {
		t.Fatalf("expected default job title, got %q", res.User.JobTitle)
	}

	stored, err := f.repo.FindByEmail(context.Background(), "jane@x.com")
	if err != nil {
		t.Fatalf("expected user persisted: %v", err)
	}
	if stored.PasswordHash == "secret-1" || stored.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
	if !testHasher().Verify("secret-1", stored.PasswordHash) {
		t.Fatalf("stored hash does not verify against the password")
	}

	if ev := f.sink.last(); ev == nil || ev.Action != domain.AuditRegistered {
		t.Fatalf("expected registered audit event, got %+v", ev)
	}
}

func TestAuthService_Register_DuplicateEmailCaseInsensitive(t *testing.T) {
	f := newAuthFixture(t)
	registerEmployee(t, f, "jane@x.com", "secret-1")

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{
		FullName: "Jane Clone",
		Email:    "JANE@X.COM",
		Password: "another",
		Role:     domain.RoleEmployee,
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
	if len(f.repo.byID) != 1 {
		t.Fatalf("duplicate registration must not persist a new identity")
	}
}

func TestAuthService_Register_ManagerRequiresDepartment(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Register(context.Background(), ports.RegisterInput{
		FullName: "Bob Lead",
		Email:    "bob@x.com",
		Password: "secret-1",
		Role:     domain.RoleManager,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	res, err := f.svc.Register(context.Background(), ports.RegisterInput{
		FullName:     "Bob Lead",
		Email:        "bob@x.com",
		Password:     "secret-1",
		Role:         domain.RoleManager,
		DepartmentID: 2,
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.User.DepartmentID == nil || *res.User.DepartmentID != 2 {
		t.Fatalf("expected department 2 in summary, got %v", res.User.DepartmentID)
	}

	claims := parseClaims(t, res.Token, "secret")
	if dept, ok := claims["department_id"].(float64); !ok || int(dept) != 2 {
		t.Fatalf("expected department_id claim in manager token, got %v", claims["department_id"])
	}
}

func TestAuthService_Register_AdminNotSelfSelectable(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.Register(context.Background(), ports.RegisterInput{
		FullName: "Eve",
		Email:    "eve@x.com",
		Password: "secret-1",
		Role:     domain.RoleAdmin,
	})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for admin self-registration, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	f := newAuthFixture(t)
	registerEmployee(t, f, "jane@x.com", "secret-1")

	res, err := f.svc.Login(context.Background(), "Jane@X.com", "secret-1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected a token")
	}
	if res.User.Email != "jane@x.com" {
		t.Fatalf("unexpected summary email: %s", res.User.Email)
	}
	if len(f.throttle.resets) == 0 {
		t.Fatalf("successful login must reset the throttle")
	}
	if ev := f.sink.last(); ev == nil || ev.Action != domain.AuditLoginSucceeded {
		t.Fatalf("expected login_succeeded audit event, got %+v", ev)
	}
}

func TestAuthService_Login_FailuresAreIndistinguishable(t *testing.T) {
	f := newAuthFixture(t)
	registerEmployee(t, f, "jane@x.com", "secret-1")

	_, wrongPass := f.svc.Login(context.Background(), "jane@x.com", "wrong")
	_, unknownEmail := f.svc.Login(context.Background(), "ghost@x.com", "whatever")

	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", unknownEmail)
	}
	if wrongPass.Error() != unknownEmail.Error() {
		t.Fatalf("login failures must be identical in shape: %q vs %q", wrongPass, unknownEmail)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	f := newAuthFixture(t)
	res := registerEmployee(t, f, "jane@x.com", "secret-1")

	stored := f.repo.byID[res.User.ID]
	stored.IsActive = false

	if _, err := f.svc.Login(context.Background(), "jane@x.com", "secret-1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for inactive user, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	f := newAuthFixture(t)
	registerEmployee(t, f, "jane@x.com", "secret-1")
	f.throttle.denied = true

	if _, err := f.svc.Login(context.Background(), "jane@x.com", "secret-1"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_RecordsFailures(t *testing.T) {
	f := newAuthFixture(t)
	registerEmployee(t, f, "jane@x.com", "secret-1")

	_, _ = f.svc.Login(context.Background(), "jane@x.com", "wrong")
	if f.throttle.failures["jane@x.com"] != 1 {
		t.Fatalf("expected one recorded failure, got %d", f.throttle.failures["jane@x.com"])
	}
	if ev := f.sink.last(); ev == nil || ev.Action != domain.AuditLoginFailed {
		t.Fatalf("expected login_failed audit event, got %+v", ev)
	}

	// Unknown emails are throttled too, keyed by the attempted address.
	_, _ = f.svc.Login(context.Background(), "Ghost@X.com", "whatever")
	if f.throttle.failures["ghost@x.com"] != 1 {
		t.Fatalf("expected failure recorded under normalized email, got %v", f.throttle.failures)
	}
}

func TestAuthService_NoThrottleConfigured(t *testing.T) {
	repo := newStubUserRepo()
	issuer, _ := NewTokenIssuer("secret", "", time.Hour)
	svc := NewAuthService(repo, testHasher(), issuer, nil, nil, zerolog.Nop())

	if _, err := svc.Register(context.Background(), ports.RegisterInput{
		FullName: "Jane Doe",
		Email:    "jane@x.com",
		Password: "secret-1",
		Role:     domain.RoleEmployee,
	}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := svc.Login(context.Background(), "jane@x.com", "secret-1"); err != nil {
		t.Fatalf("Login without throttle/audit returned error: %v", err)
	}
}
