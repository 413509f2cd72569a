package domain

import "time"

// AuditAction names a recorded directory operation.
type AuditAction string

const (
	AuditRegistered     AuditAction = "registered"
	AuditLoginSucceeded AuditAction = "login_succeeded"
	AuditLoginFailed    AuditAction = "login_failed"
	AuditUserUpdated    AuditAction = "user_updated"
	AuditUserDeleted    AuditAction = "user_deleted"
)

// AuditEvent is an append-only record of an identity mutation or
// authentication attempt. SubjectID may be empty for failed logins against
// unknown emails; SubjectEmail is always set.
type AuditEvent struct {
	Action       AuditAction `json:"action"`
	ActorID      string      `json:"actor_id,omitempty"`
	SubjectID    string      `json:"subject_id,omitempty"`
	SubjectEmail string      `json:"subject_email"`
	Detail       string      `json:"detail,omitempty"`
	Timestamp    time.Time   `json:"timestamp"`
}

// ShardKey is the value audit processing is ordered by: all events for the
// same identity land on the same worker.
func (e AuditEvent) ShardKey() string {
	if e.SubjectID != "" {
		return e.SubjectID
	}
	return NormalizeEmail(e.SubjectEmail)
}
