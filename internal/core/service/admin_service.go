package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/peoplecore/identity-system/internal/api/metrics"
	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/ports"
)

const (
	defaultAuditTrailLimit = 50
	maxAuditTrailLimit     = 500
)

// AdminService implements administrative directory mutations.
type AdminService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	auditLog ports.AuditRepository
	audit    ports.AuditSink
	log      zerolog.Logger
}

func NewAdminService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	auditLog ports.AuditRepository,
	audit ports.AuditSink,
	log zerolog.Logger,
) *AdminService {
	return &AdminService{
		users:    users,
		hasher:   hasher,
		auditLog: auditLog,
		audit:    audit,
		log:      log,
	}
}

// GetUserByEmail returns the public summary for an email, or (nil, nil) when
// no identity matches.
func (s *AdminService) GetUserByEmail(ctx context.Context, email string) (*ports.UserSummary, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	summary := ports.Summarize(user)
	return &summary, nil
}

// UpdateUser applies a partial patch to an existing identity. Only fields
// present in the patch are touched; CreatedAt is never modified.
func (s *AdminService) UpdateUser(ctx context.Context, in ports.UpdateUserInput) error {
	user, err := s.users.FindByID(ctx, in.ID)
	if err != nil {
		return err
	}

	var changed []string

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" || len(name) > 100 {
			return fmt.Errorf("%w: full name must be 1-100 characters", domain.ErrValidation)
		}
		user.FullName = name
		changed = append(changed, "full_name")
	}

	if in.Email != nil {
		newEmail := strings.TrimSpace(*in.Email)
		if domain.NormalizeEmail(newEmail) == "" || !strings.Contains(newEmail, "@") {
			return fmt.Errorf("%w: a valid email is required", domain.ErrValidation)
		}
		if domain.NormalizeEmail(newEmail) != domain.NormalizeEmail(user.Email) {
			exists, err := s.users.ExistsByEmail(ctx, newEmail)
			if err != nil {
				return fmt.Errorf("update user: %w", err)
			}
			if exists {
				return domain.ErrDuplicateEmail
			}
		}
		user.Email = newEmail
		changed = append(changed, "email")
	}

	if in.IsActive != nil {
		user.IsActive = *in.IsActive
		changed = append(changed, "is_active")
	}

	if in.Password != nil {
		if *in.Password == "" {
			return fmt.Errorf("%w: password must not be empty", domain.ErrValidation)
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return fmt.Errorf("update user: %w", err)
		}
		user.PasswordHash = hash
		changed = append(changed, "password")
	}

	if in.Role != nil {
		if err := user.ChangeRole(*in.Role, in.DepartmentID); err != nil {
			return err
		}
		changed = append(changed, "role")
	}

	if in.JobTitle != nil {
		if strings.TrimSpace(*in.JobTitle) == "" {
			return fmt.Errorf("%w: job title must not be blank", domain.ErrValidation)
		}
		user.SetJobTitle(*in.JobTitle)
		changed = append(changed, "job_title")
	}

	// In-place department change without a role change.
	if in.Role == nil && in.DepartmentID != nil {
		if user.Manager == nil {
			return fmt.Errorf("%w: only managers belong to a department", domain.ErrValidation)
		}
		if *in.DepartmentID <= 0 {
			return fmt.Errorf("%w: department must be positive", domain.ErrValidation)
		}
		user.Manager.DepartmentID = *in.DepartmentID
		changed = append(changed, "department_id")
	}

	if err := s.users.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	metrics.AdminMutationsTotal.WithLabelValues("update").Inc()
	s.recordAudit(domain.AuditEvent{
		Action:       domain.AuditUserUpdated,
		ActorID:      in.ActorID,
		SubjectID:    user.ID,
		SubjectEmail: user.Email,
		Detail:       strings.Join(changed, ","),
	})
	s.log.Info().Str("user_id", user.ID).Strs("fields", changed).Msg("user updated")

	return nil
}

// DeleteUser removes an identity together with its variant payload. A
// missing id yields (false, nil), not an error.
func (s *AdminService) DeleteUser(ctx context.Context, actorID, id string) (bool, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return false, fmt.Errorf("delete user: %w", err)
	}

	removed, err := s.users.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	if !removed {
		return false, nil
	}

	metrics.AdminMutationsTotal.WithLabelValues("delete").Inc()
	email := ""
	if user != nil {
		email = user.Email
	}
	s.recordAudit(domain.AuditEvent{
		Action:       domain.AuditUserDeleted,
		ActorID:      actorID,
		SubjectID:    id,
		SubjectEmail: email,
	})
	s.log.Info().Str("user_id", id).Msg("user deleted")

	return true, nil
}

// ListAuditTrail returns the most recent audit events for one identity. The
// limit comes from the caller's query string, so it is clamped here before it
// can size a result allocation.
func (s *AdminService) ListAuditTrail(ctx context.Context, subjectID string, limit int) ([]domain.AuditEvent, error) {
	if limit <= 0 {
		limit = defaultAuditTrailLimit
	}
	if limit > maxAuditTrailLimit {
		limit = maxAuditTrailLimit
	}
	events, err := s.auditLog.ListBySubject(ctx, subjectID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit trail: %w", err)
	}
	return events, nil
}

func (s *AdminService) recordAudit(event domain.AuditEvent) {
	if s.audit == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	s.audit.Enqueue(event)
}
