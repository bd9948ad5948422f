package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// defaultCollection is the collection session documents live in.
const defaultCollection = "sessions"

// sessionDoc is the BSON shape of one stored session.
type sessionDoc struct {
	ID        string         `bson:"_id"`
	Data      map[string]any `bson:"data"`
	ExpiresAt *time.Time     `bson:"expires_at,omitempty"`
	UpdatedAt time.Time      `bson:"updated_at"`
}

// Store implements sessionstorage.Store on top of MongoDB. One document per
// session; the advisory expiry is stored in expires_at and enforced both at
// read time and by a TTL index (see EnsureIndexes).
type Store struct {
	collection *mongo.Collection
}

// StoreOption configures a Store.
type StoreOption func(*storeOptions)

type storeOptions struct {
	collection string
}

// WithCollection overrides the "sessions" collection name.
func WithCollection(name string) StoreOption {
	return func(o *storeOptions) {
		if name != "" {
			o.collection = name
		}
	}
}

// NewStore creates a MongoDB-backed session store over the given database.
func NewStore(db *mongo.Database, opts ...StoreOption) (*Store, error) {
	if db == nil {
		return nil, ErrNilDatabase
	}

	options := storeOptions{collection: defaultCollection}
	for _, opt := range opts {
		opt(&options)
	}

	return &Store{collection: db.Collection(options.collection)}, nil
}

// EnsureIndexes creates the TTL index on expires_at so MongoDB evicts
// expired sessions itself. Safe to call on every startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("mongo session store: ensure indexes: %w", err)
	}
	return nil
}

func newDoc(id string, data map[string]any, expires time.Time) sessionDoc {
	doc := sessionDoc{
		ID:        id,
		Data:      data,
		UpdatedAt: time.Now(),
	}
	if !expires.IsZero() {
		doc.ExpiresAt = &expires
	}
	return doc
}

// CreateData inserts a new document under a fresh UUID, retrying until the
// key is unused.
func (s *Store) CreateData(ctx context.Context, data map[string]any, expires time.Time) (string, error) {
	for {
		id := uuid.NewString()
		_, err := s.collection.InsertOne(ctx, newDoc(id, data, expires))
		if mongo.IsDuplicateKeyError(err) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("mongo session store: create: %w", err)
		}
		return id, nil
	}
}

// ReadData returns the stored data, or nil when the document is missing or
// expired. The expiry check runs client-side too because the TTL monitor
// only sweeps about once a minute.
func (s *Store) ReadData(ctx context.Context, id string) (map[string]any, error) {
	var doc sessionDoc
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("mongo session store: read: %w", err)
	}

	if doc.ExpiresAt != nil && time.Now().After(*doc.ExpiresAt) {
		return nil, nil
	}

	if doc.Data == nil {
		doc.Data = make(map[string]any)
	}
	return doc.Data, nil
}

// UpdateData overwrites the document with the full new mapping, upserting so
// a TTL-evicted document is recreated rather than lost.
func (s *Store) UpdateData(ctx context.Context, id string, data map[string]any, expires time.Time) error {
	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": id},
		newDoc(id, data, expires),
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo session store: update: %w", err)
	}
	return nil
}

// DeleteData removes the document. Missing documents are a no-op.
func (s *Store) DeleteData(ctx context.Context, id string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("mongo session store: delete: %w", err)
	}
	return nil
}
