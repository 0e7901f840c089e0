// internal/events/store.go
// Append-only newsfeed/event store backed by MongoDB. Adapted from the
// teacher's analytics-event collection pattern (see the deleted
// repositories/user_preferences_repository.go) into a single collection
// that records every settlement, transfer, auction, and honor moment a
// save produces, for the season's scrollable newsfeed.

package events

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Kind is the closed set of newsfeed-worthy moment categories.
type Kind string

const (
	KindTransfer    Kind = "transfer"
	KindAuction     Kind = "auction"
	KindMatch       Kind = "match"
	KindHonor       Kind = "honor"
	KindSettlement  Kind = "settlement"
	KindLadderMatch Kind = "ladder_match"
)

// Event is one append-only newsfeed entry.
type Event struct {
	SaveID    uint64                 `bson:"save_id"`
	Season    uint32                 `bson:"season"`
	Kind      Kind                   `bson:"kind"`
	Headline  string                 `bson:"headline"`
	Detail    string                 `bson:"detail,omitempty"`
	Importance int                   `bson:"importance"`
	Payload   map[string]interface{} `bson:"payload,omitempty"`
	CreatedAt time.Time              `bson:"created_at"`
}

// Store is the MongoDB-backed append-only event log.
type Store struct {
	collection *mongo.Collection
}

// NewStore creates a new event store over the "newsfeed_events" collection.
func NewStore(db *mongo.Database) *Store {
	return &Store{collection: db.Collection("newsfeed_events")}
}

// Append records a single newsfeed event.
func (s *Store) Append(ctx context.Context, e Event) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	_, err := s.collection.InsertOne(ctx, e)
	return err
}

// AppendBatch records many newsfeed events from one settlement pass in a
// single round trip.
func (s *Store) AppendBatch(ctx context.Context, evts []Event) error {
	if len(evts) == 0 {
		return nil
	}
	docs := make([]interface{}, len(evts))
	now := time.Now()
	for i := range evts {
		if evts[i].CreatedAt.IsZero() {
			evts[i].CreatedAt = now
		}
		docs[i] = evts[i]
	}
	_, err := s.collection.InsertMany(ctx, docs)
	return err
}

// ListBySave retrieves a save's newsfeed, newest first, optionally filtered
// to a single season.
func (s *Store) ListBySave(ctx context.Context, saveID uint64, season *uint32, limit int64) ([]Event, error) {
	filter := bson.M{"save_id": saveID}
	if season != nil {
		filter["season"] = *season
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// ListByKind retrieves a save's newsfeed filtered to one event kind.
func (s *Store) ListByKind(ctx context.Context, saveID uint64, kind Kind, limit int64) ([]Event, error) {
	filter := bson.M{"save_id": saveID, "kind": kind}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := s.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// EnsureIndexes creates the compound index the newsfeed's read patterns rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "save_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
