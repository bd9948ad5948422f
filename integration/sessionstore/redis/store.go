package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// defaultKeyPrefix namespaces session keys in a shared Redis database.
const defaultKeyPrefix = "session:"

// Store implements sessionstorage.Store on top of Redis. Session data is
// stored as a JSON string per key, with the advisory expiry mapped to the
// key's TTL so Redis evicts expired sessions on its own.
type Store struct {
	client redis.UniversalClient
	prefix string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKeyPrefix overrides the "session:" key prefix.
func WithKeyPrefix(prefix string) StoreOption {
	return func(s *Store) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// NewStore creates a Redis-backed session store using an established client.
func NewStore(client redis.UniversalClient, opts ...StoreOption) (*Store, error) {
	if client == nil {
		return nil, ErrNilClient
	}

	store := &Store{
		client: client,
		prefix: defaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(store)
	}

	return store, nil
}

func (s *Store) key(id string) string {
	return s.prefix + id
}

// ttl maps the advisory expiry to a Redis TTL. Zero expiry means the key
// persists; an expiry in the past means the record is already dead.
func ttl(expires time.Time) (time.Duration, bool) {
	if expires.IsZero() {
		return 0, true
	}
	d := time.Until(expires)
	if d <= 0 {
		return 0, false
	}
	return d, true
}

// CreateData persists a new record under a fresh UUID key.
func (s *Store) CreateData(ctx context.Context, data map[string]any, expires time.Time) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("redis session store: encode: %w", err)
	}

	d, alive := ttl(expires)
	for {
		id := uuid.NewString()
		if !alive {
			// Already expired on arrival; nothing to store, but the caller
			// still gets a valid identifier that reads as not-found.
			return id, nil
		}

		ok, err := s.client.SetNX(ctx, s.key(id), payload, d).Result()
		if err != nil {
			return "", fmt.Errorf("redis session store: create: %w", err)
		}
		if ok {
			return id, nil
		}
	}
}

// ReadData returns the stored data, or nil when the key is missing or its
// TTL has elapsed.
func (s *Store) ReadData(ctx context.Context, id string) (map[string]any, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis session store: read: %w", err)
	}

	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("redis session store: decode: %w", err)
	}
	if data == nil {
		data = make(map[string]any)
	}
	return data, nil
}

// UpdateData overwrites the record and refreshes its TTL.
func (s *Store) UpdateData(ctx context.Context, id string, data map[string]any, expires time.Time) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("redis session store: encode: %w", err)
	}

	d, alive := ttl(expires)
	if !alive {
		return s.DeleteData(ctx, id)
	}

	if err := s.client.Set(ctx, s.key(id), payload, d).Err(); err != nil {
		return fmt.Errorf("redis session store: update: %w", err)
	}
	return nil
}

// DeleteData removes the record. Missing keys are a no-op.
func (s *Store) DeleteData(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redis session store: delete: %w", err)
	}
	return nil
}
