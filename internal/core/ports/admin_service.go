package ports

import (
	"context"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

// UpdateUserInput is a partial patch: nil fields are left unchanged, never
// cleared. ID is the only required field.
type UpdateUserInput struct {
	ID           string
	ActorID      string // administrator performing the change, for the audit trail
	FullName     *string
	Email        *string
	Password     *string
	Role         *domain.Role
	DepartmentID *int
	JobTitle     *string
	IsActive     *bool
}

// AdminService exposes administrative directory mutations. All operations
// assume the caller was already authorized as an Admin by the transport layer.
type AdminService interface {
	// GetUserByEmail returns the public summary, or (nil, nil) when absent.
	// A missing user is an expected outcome here, not a fault.
	GetUserByEmail(ctx context.Context, email string) (*UserSummary, error)
	// UpdateUser applies a partial patch. Returns domain.ErrUserNotFound when
	// the id does not exist and domain.ErrValidation on inconsistent patches.
	UpdateUser(ctx context.Context, in UpdateUserInput) error
	// DeleteUser removes the identity and its payload atomically. The bool
	// reports whether anything was removed.
	DeleteUser(ctx context.Context, actorID, id string) (bool, error)
	// ListAuditTrail returns the most recent audit events for an identity.
	ListAuditTrail(ctx context.Context, subjectID string, limit int) ([]domain.AuditEvent, error)
}
