package sessionstorage

import (
	"context"
	"time"
)

// Store is the pluggable persistence contract behind Storage. Implementations
// own identifier generation and whatever durable representation they choose;
// the storage layer treats them as stateless create/read/update/delete
// operations keyed by identifier strings.
//
// The expires argument is advisory metadata derived from the cookie
// configuration; implementations decide whether and how to honor it. A zero
// time means no explicit expiry.
//
// Implementations must handle concurrent access safely.
type Store interface {
	// CreateData persists a new record and returns a freshly assigned
	// identifier. Identifiers must never be reused.
	CreateData(ctx context.Context, data map[string]any, expires time.Time) (string, error)

	// ReadData returns the stored data for an identifier, or (nil, nil) when
	// no record exists or it has expired. Not-found is a valid outcome, not
	// an error.
	ReadData(ctx context.Context, id string) (map[string]any, error)

	// UpdateData overwrites the record at id with the full new mapping.
	UpdateData(ctx context.Context, id string, data map[string]any, expires time.Time) error

	// DeleteData removes the record. It is idempotent: deleting a missing or
	// empty identifier must not fail.
	DeleteData(ctx context.Context, id string) error
}
