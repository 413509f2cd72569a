package ports

import (
	"context"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

// UserRepository is the persistence boundary for identities. Implementations
// must persist the base record and its variant payload atomically: a
// half-written identity is never observable, and concurrent writes to the
// same identity are serialized by the storage engine.
type UserRepository interface {
	// FindByEmail looks an identity up by case-insensitive email.
	// Returns domain.ErrUserNotFound when absent.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when absent.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// ExistsByEmail reports case-insensitive presence without fetching.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// Insert persists a new identity and returns it with the assigned ID.
	// Returns domain.ErrDuplicateEmail on a uniqueness violation.
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update replaces the stored identity, base and payload together.
	Update(ctx context.Context, user *domain.User) error
	// Delete removes the identity and its payload. The bool reports whether
	// anything was removed; a missing id is not an error.
	Delete(ctx context.Context, id string) (bool, error)
}
