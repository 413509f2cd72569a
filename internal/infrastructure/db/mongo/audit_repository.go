package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

const auditCollection = "audit_events"

// AuditRepository stores the append-only audit trail.
type AuditRepository struct {
	coll *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

// EnsureAuditIndexes creates the subject+timestamp index the trail listing
// queries against.
func EnsureAuditIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(auditCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "subject_id", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("ensure audit indexes: %w", err)
	}
	return nil
}

type auditDoc struct {
	Action       string    `bson:"action"`
	ActorID      string    `bson:"actor_id,omitempty"`
	SubjectID    string    `bson:"subject_id,omitempty"`
	SubjectEmail string    `bson:"subject_email"`
	Detail       string    `bson:"detail,omitempty"`
	Timestamp    time.Time `bson:"timestamp"`
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	doc := auditDoc{
		Action:       string(event.Action),
		ActorID:      event.ActorID,
		SubjectID:    event.SubjectID,
		SubjectEmail: event.SubjectEmail,
		Detail:       event.Detail,
		Timestamp:    event.Timestamp,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (r *AuditRepository) ListBySubject(ctx context.Context, subjectID string, limit int) ([]domain.AuditEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, bson.M{"subject_id": subjectID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	defer func() { _ = cur.Close(ctx) }()

	events := make([]domain.AuditEvent, 0, limit)
	for cur.Next(ctx) {
		var doc auditDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode audit event: %w", err)
		}
		events = append(events, domain.AuditEvent{
			Action:       domain.AuditAction(doc.Action),
			ActorID:      doc.ActorID,
			SubjectID:    doc.SubjectID,
			SubjectEmail: doc.SubjectEmail,
			Detail:       doc.Detail,
			Timestamp:    doc.Timestamp.UTC(),
		})
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}
	return events, nil
}
