package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/peoplecore/identity-system/internal/api/metrics"
	"github.com/peoplecore/identity-system/internal/core/domain"
	"github.com/peoplecore/identity-system/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns the AuditService backing the async audit pipeline.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists one audit event. Events with no subject at all are dropped
// as malformed rather than failing the pipeline.
func (s *auditService) Record(ctx context.Context, event domain.AuditEvent) error {
	if event.Action == "" {
		metrics.AuditErrorsTotal.WithLabelValues("missing_action").Inc()
		return fmt.Errorf("audit: event without action")
	}
	if event.SubjectID == "" && event.SubjectEmail == "" {
		metrics.AuditErrorsTotal.WithLabelValues("missing_subject").Inc()
		s.log.Debug().Str("action", string(event.Action)).Msg("audit event without subject dropped")
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if err := s.repo.Insert(ctx, &event); err != nil {
		metrics.AuditErrorsTotal.WithLabelValues("insert_failed").Inc()
		return fmt.Errorf("audit: insert event: %w", err)
	}

	metrics.AuditEventsTotal.WithLabelValues(string(event.Action)).Inc()
	return nil
}
