package mongo

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStore(t *testing.T) {
	t.Parallel()

	t.Run("nil database", func(t *testing.T) {
		t.Parallel()

		store, err := NewStore(nil)
		require.ErrorIs(t, err, ErrNilDatabase)
		assert.Nil(t, store)
	})
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("empty connection URL", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()

		db, err := Connect(ctx, Config{})
		require.ErrorIs(t, err, ErrEmptyConnectionURL)
		assert.Nil(t, db)
	})
}
