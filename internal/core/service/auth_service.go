package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/peoplecore/identity-system/internal/api/metrics"
	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/ports"
)

// LoginThrottle limits failed login attempts per email. Implementations live
// in the infrastructure layer (Redis in production).
type LoginThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements registration and login.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	issuer   *TokenIssuer
	throttle LoginThrottle
	audit    ports.AuditSink
	log      zerolog.Logger

	// decoyHash is verified against when the email is unknown, so the
	// unknown-email and wrong-password paths take comparable time.
	decoyHash string
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	issuer *TokenIssuer,
	throttle LoginThrottle,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AuthService {
	decoy, err := hasher.Hash("decoy-credential")
	if err != nil {
		decoy = ""
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		issuer:    issuer,
		throttle:  throttle,
		audit:     audit,
		log:       log,
		decoyHash: decoy,
	}
}

// Register creates a new identity and returns a signed token for it. The
// Admin role is not self-selectable; admins come from the bootstrap seed or
// an administrative role change.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	var user *domain.User
	switch in.Role {
	case domain.RoleEmployee:
		user, err = domain.NewEmployee(in.FullName, in.Email, hash, in.JobTitle)
	case domain.RoleManager:
		user, err = domain.NewManager(in.FullName, in.Email, hash, in.DepartmentID)
	case domain.RoleAdmin:
		err = fmt.Errorf("%w: the admin role cannot be self-registered", domain.ErrValidation)
	default:
		err = fmt.Errorf("%w: unknown role %q", domain.ErrValidation, in.Role)
	}
	if err != nil {
		return nil, err
	}

	created, err := s.users.Insert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	token, err := s.issuer.Issue(created)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.RegistrationsTotal.WithLabelValues(string(created.Role)).Inc()
	s.recordAudit(domain.AuditEvent{
		Action:       domain.AuditRegistered,
		ActorID:      created.ID,
		SubjectID:    created.ID,
		SubjectEmail: created.Email,
	})
	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")

	return &ports.AuthResult{Token: token, User: ports.Summarize(created)}, nil
}

// Login verifies credentials and issues a token. Unknown email, wrong
// password, and deactivated accounts all fail with the same
// domain.ErrInvalidCredentials so callers cannot enumerate emails.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	normalized := domain.NormalizeEmail(email)

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, normalized)
		if err != nil {
			// A throttle outage must not lock everyone out.
			s.log.Warn().Err(err).Msg("login throttle unavailable, allowing attempt")
		} else if !allowed {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.hasher.Verify(password, s.decoyHash)
			return nil, s.failLogin(ctx, normalized, "")
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) || !user.IsActive {
		return nil, s.failLogin(ctx, normalized, user.ID)
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, normalized); err != nil {
			s.log.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.recordAudit(domain.AuditEvent{
		Action:       domain.AuditLoginSucceeded,
		ActorID:      user.ID,
		SubjectID:    user.ID,
		SubjectEmail: user.Email,
	})

	return &ports.AuthResult{Token: token, User: ports.Summarize(user)}, nil
}

func (s *AuthService) failLogin(ctx context.Context, normalizedEmail, subjectID string) error {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, normalizedEmail); err != nil {
			s.log.Warn().Err(err).Msg("failed to record login failure")
		}
	}
	metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
	s.recordAudit(domain.AuditEvent{
		Action:       domain.AuditLoginFailed,
		SubjectID:    subjectID,
		SubjectEmail: normalizedEmail,
	})
	return domain.ErrInvalidCredentials
}

func (s *AuthService) recordAudit(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.audit.Enqueue(event)
}
