package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/hrprojector/jobboard/internal/core/domain"
	"github.com/hrprojector/jobboard/internal/core/ports"
)

const eventsCollection = "lifecycle_events"

var _ ports.AuditRepository = (*EventRepository)(nil)

// EventRepository stores lifecycle events in the lifecycle_events audit collection.
type EventRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(eventsCollection), now: time.Now}
}

// EnsureIndexes creates the lookup index by resource and time.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "resource", Value: 1}, {Key: "resource_id", Value: 1}, {Key: "occurred_at", Value: 1}},
		Options: options.Index().SetName("resource_timeline"),
	})
	if err != nil {
		return fmt.Errorf("create audit index: %w", err)
	}
	return nil
}

func (r *EventRepository) InsertEvent(ctx context.Context, event *domain.LifecycleEvent) error {
	doc := bson.M{
		"resource":     event.Resource,
		"resource_id":  event.ResourceID,
		"action":       string(event.Action),
		"to":           string(event.To),
		"actor_id":     event.ActorID,
		"occurred_at":  event.OccurredAt.UTC(),
		"processed_at": r.now().UTC(),
	}
	if event.From != "" {
		doc["from"] = string(event.From)
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert lifecycle event: %w", err)
	}
	return nil
}

// History returns the events of one resource in the order they happened.
func (r *EventRepository) History(ctx context.Context, resource string, resourceID int64) ([]domain.LifecycleEvent, error) {
	cur, err := r.coll.Find(ctx,
		bson.M{"resource": resource, "resource_id": resourceID},
		options.Find().SetSort(bson.D{{Key: "occurred_at", Value: 1}, {Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, fmt.Errorf("find lifecycle events: %w", err)
	}
	defer cur.Close(ctx)

	var docs []struct {
		Resource   string    `bson:"resource"`
		ResourceID int64     `bson:"resource_id"`
		Action     string    `bson:"action"`
		From       string    `bson:"from"`
		To         string    `bson:"to"`
		ActorID    int64     `bson:"actor_id"`
		OccurredAt time.Time `bson:"occurred_at"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode lifecycle events: %w", err)
	}

	out := make([]domain.LifecycleEvent, len(docs))
	for i, d := range docs {
		out[i] = domain.LifecycleEvent{
			Resource:   d.Resource,
			ResourceID: d.ResourceID,
			Action:     domain.Action(d.Action),
			From:       domain.State(d.From),
			To:         domain.State(d.To),
			ActorID:    d.ActorID,
			OccurredAt: d.OccurredAt,
		}
	}
	return out, nil
}
