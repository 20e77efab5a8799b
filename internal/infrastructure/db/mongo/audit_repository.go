package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/invoice-dashboard/internal/core/domain"
	"github.com/99minutos/invoice-dashboard/internal/core/ports"
)

const auditCollection = "audit_events"

// AuditRepository implements ports.AuditRepository on the audit_events collection.
type AuditRepository struct {
	coll *mongo.Collection
}

var _ ports.AuditRepository = (*AuditRepository)(nil)

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{coll: db.Collection(auditCollection)}
}

type auditDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	ActorID     string             `bson:"actor_id"`
	Action      string             `bson:"action"`
	Entity      string             `bson:"entity"`
	EntityID    string             `bson:"entity_id"`
	At          time.Time          `bson:"at"`
	Detail      map[string]string  `bson:"detail,omitempty"`
	ProcessedAt time.Time          `bson:"processed_at"`
}

func toAuditDoc(e *domain.AuditEvent) auditDoc {
	return auditDoc{
		ActorID:     e.ActorID,
		Action:      string(e.Action),
		Entity:      e.Entity,
		EntityID:    e.EntityID,
		At:          e.At.UTC(),
		Detail:      e.Detail,
		ProcessedAt: time.Now().UTC(),
	}
}

func (d auditDoc) toDomain() domain.AuditEvent {
	return domain.AuditEvent{
		ActorID:  d.ActorID,
		Action:   domain.AuditAction(d.Action),
		Entity:   d.Entity,
		EntityID: d.EntityID,
		At:       d.At,
		Detail:   d.Detail,
	}
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	if _, err := r.coll.InsertOne(ctx, toAuditDoc(event)); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// Recent returns the newest limit events, newest first.
func (r *AuditRepository) Recent(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find audit events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []domain.AuditEvent{}
	for cursor.Next(ctx) {
		var doc auditDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode audit event: %w", err)
		}
		events = append(events, doc.toDomain())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
