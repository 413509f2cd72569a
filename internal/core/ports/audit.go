package ports

import (
	"context"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

// AuditSink accepts audit events for asynchronous processing. Enqueue must
// not block the caller beyond buffering.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}

// AuditService validates and persists a single audit event.
type AuditService interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// AuditRepository is the append-only store for audit events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
	// ListBySubject returns events for one identity, newest first.
	ListBySubject(ctx context.Context, subjectID string, limit int) ([]domain.AuditEvent, error)
}
