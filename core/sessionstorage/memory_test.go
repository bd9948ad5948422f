package sessionstorage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/startup-booster/remix/core/sessionstorage"
)

func TestMemoryStore_CreateRead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := sessionstorage.NewMemoryStore(0)

	id, err := store.CreateData(ctx, map[string]any{"theme": "dark"}, time.Time{})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	data, err := store.ReadData(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"theme": "dark"}, data)
}

func TestMemoryStore_UniqueIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := sessionstorage.NewMemoryStore(0)

	seen := make(map[string]bool)
	for range 100 {
		id, err := store.CreateData(ctx, nil, time.Time{})
		require.NoError(t, err)
		require.False(t, seen[id], "identifier reused: %s", id)
		seen[id] = true
	}
}

func TestMemoryStore_ReadMissing(t *testing.T) {
	t.Parallel()

	store := sessionstorage.NewMemoryStore(0)

	data, err := store.ReadData(context.Background(), "unknown")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestMemoryStore_Update(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := sessionstorage.NewMemoryStore(0)

	id, err := store.CreateData(ctx, map[string]any{"a": 1, "b": 2}, time.Time{})
	require.NoError(t, err)

	// Update replaces the whole mapping, not a merge.
	require.NoError(t, store.UpdateData(ctx, id, map[string]any{"a": 10}, time.Time{}))

	data, err := store.ReadData(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": 10}, data)
}

func TestMemoryStore_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := sessionstorage.NewMemoryStore(0)

	id, err := store.CreateData(ctx, map[string]any{"a": 1}, time.Time{})
	require.NoError(t, err)

	require.NoError(t, store.DeleteData(ctx, id))
	data, err := store.ReadData(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, data)

	// Idempotent, including for unknown and empty ids.
	require.NoError(t, store.DeleteData(ctx, id))
	require.NoError(t, store.DeleteData(ctx, ""))
}

func TestMemoryStore_Expiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := sessionstorage.NewMemoryStore(0)

	id, err := store.CreateData(ctx, map[string]any{"a": 1}, time.Now().Add(-time.Minute))
	require.NoError(t, err)

	data, err := store.ReadData(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, data)
	// Expired record was dropped on read.
	assert.Zero(t, store.Len())
}

func TestMemoryStore_ZeroExpiryNeverExpires(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := sessionstorage.NewMemoryStore(0)

	id, err := store.CreateData(ctx, map[string]any{"a": 1}, time.Time{})
	require.NoError(t, err)

	data, err := store.ReadData(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, data)
}

func TestMemoryStore_DeleteExpired(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := sessionstorage.NewMemoryStore(0)

	_, err := store.CreateData(ctx, nil, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	_, err = store.CreateData(ctx, nil, time.Now().Add(-time.Minute))
	require.NoError(t, err)
	keep, err := store.CreateData(ctx, nil, time.Now().Add(time.Hour))
	require.NoError(t, err)

	deleted, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	data, err := store.ReadData(ctx, keep)
	require.NoError(t, err)
	assert.NotNil(t, data)
}

func TestMemoryStore_CopySemantics(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := sessionstorage.NewMemoryStore(0)

	original := map[string]any{"a": 1}
	id, err := store.CreateData(ctx, original, time.Time{})
	require.NoError(t, err)

	// Mutating the caller's map after the call must not affect the store.
	original["a"] = 99

	data, err := store.ReadData(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, data["a"])

	// Mutating a read result must not affect the store either.
	data["a"] = 42
	again, err := store.ReadData(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 1, again["a"])
}

func TestMemoryStore_CleanupLoop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := sessionstorage.NewMemoryStore(10 * time.Millisecond)
	t.Cleanup(func() { _ = store.Close() })

	_, err := store.CreateData(ctx, nil, time.Now().Add(20*time.Millisecond))
	require.NoError(t, err)

	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 10*time.Millisecond)
}
