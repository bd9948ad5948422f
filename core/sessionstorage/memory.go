package sessionstorage

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

// memoryRecord is one stored session with its advisory expiry.
type memoryRecord struct {
	data    map[string]any
	expires time.Time
}

func (r memoryRecord) expired(now time.Time) bool {
	return !r.expires.IsZero() && now.After(r.expires)
}

// MemoryStore implements Store with an in-process map. Intended for tests and
// single-process deployments; data does not survive restarts.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
	ticker  *time.Ticker
	done    chan struct{}
}

// NewMemoryStore creates an in-memory session store. When cleanupInterval is
// positive, a background goroutine periodically drops expired records; call
// Close to stop it.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		records: make(map[string]memoryRecord),
		done:    make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

// CreateData stores a new record under a fresh identifier.
func (m *MemoryStore) CreateData(ctx context.Context, data map[string]any, expires time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	for {
		if _, exists := m.records[id]; !exists {
			break
		}
		id = uuid.NewString()
	}

	m.records[id] = memoryRecord{data: copyData(data), expires: expires}
	return id, nil
}

// ReadData returns the stored data, or nil when the record is missing or has
// expired. Expired records are dropped on read.
func (m *MemoryStore) ReadData(ctx context.Context, id string) (map[string]any, error) {
	m.mu.RLock()
	record, exists := m.records[id]
	m.mu.RUnlock()

	if !exists {
		return nil, nil
	}

	if record.expired(time.Now()) {
		m.mu.Lock()
		delete(m.records, id)
		m.mu.Unlock()
		return nil, nil
	}

	return copyData(record.data), nil
}

// UpdateData overwrites the record at id with the full new mapping.
// Unknown identifiers are upserted; the storage layer only updates ids it
// previously read or created.
func (m *MemoryStore) UpdateData(ctx context.Context, id string, data map[string]any, expires time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[id] = memoryRecord{data: copyData(data), expires: expires}
	return nil
}

// DeleteData removes the record. Deleting a missing id is a no-op.
func (m *MemoryStore) DeleteData(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, id)
	return nil
}

// DeleteExpired removes all expired records and returns how many were
// dropped.
func (m *MemoryStore) DeleteExpired(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	var deleted int64
	for id, record := range m.records {
		if record.expired(now) {
			delete(m.records, id)
			deleted++
		}
	}

	return deleted, nil
}

// Len reports the number of stored records, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Close stops the cleanup goroutine.
func (m *MemoryStore) Close() error {
	if m.ticker != nil {
		m.ticker.Stop()
		close(m.done)
	}
	return nil
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			_, _ = m.DeleteExpired(context.Background())
		case <-m.done:
			return
		}
	}
}

// copyData returns an independent copy; stored maps and caller maps must not
// alias.
func copyData(data map[string]any) map[string]any {
	if data == nil {
		return make(map[string]any)
	}
	out := make(map[string]any, len(data))
	maps.Copy(out, data)
	return out
}
