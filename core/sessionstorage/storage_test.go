package sessionstorage_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/startup-booster/remix/core/cookie"
	"github.com/startup-booster/remix/core/session"
	"github.com/startup-booster/remix/core/sessionstorage"
)

const testSecret = "test-secret-key-32-characters!!!"

// mockStore implements sessionstorage.Store for testing
type mockStore struct {
	mock.Mock
}

func (m *mockStore) CreateData(ctx context.Context, data map[string]any, expires time.Time) (string, error) {
	args := m.Called(ctx, data, expires)
	return args.String(0), args.Error(1)
}

func (m *mockStore) ReadData(ctx context.Context, id string) (map[string]any, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *mockStore) UpdateData(ctx context.Context, id string, data map[string]any, expires time.Time) error {
	args := m.Called(ctx, id, data, expires)
	return args.Error(0)
}

func (m *mockStore) DeleteData(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Helpers

func signedCookie(t *testing.T, opts ...cookie.Option) *cookie.Cookie {
	t.Helper()
	opts = append([]cookie.Option{cookie.WithSecrets(testSecret)}, opts...)
	c, err := cookie.New("__session", opts...)
	require.NoError(t, err)
	return c
}

// requestHeader converts a Set-Cookie header into the Cookie request header a
// browser would send back.
func requestHeader(t *testing.T, setCookie string) string {
	t.Helper()
	ck, err := http.ParseSetCookie(setCookie)
	require.NoError(t, err)
	return ck.Name + "=" + ck.Value
}

func TestGetSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("no header yields empty session", func(t *testing.T) {
		store := &mockStore{}
		storage := sessionstorage.New(signedCookie(t), store)

		sess, err := storage.GetSession(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, sess.ID())
		assert.Empty(t, sess.Data())
		store.AssertNotCalled(t, "ReadData")
	})

	t.Run("cookie absent from header yields empty session", func(t *testing.T) {
		store := &mockStore{}
		storage := sessionstorage.New(signedCookie(t), store)

		sess, err := storage.GetSession(ctx, "other=value")
		require.NoError(t, err)
		assert.Empty(t, sess.ID())
		store.AssertNotCalled(t, "ReadData")
	})

	t.Run("invalid signature yields empty session", func(t *testing.T) {
		store := &mockStore{}
		storage := sessionstorage.New(signedCookie(t), store)

		sess, err := storage.GetSession(ctx, "__session=forged-value")
		require.NoError(t, err)
		assert.Empty(t, sess.ID())
		store.AssertNotCalled(t, "ReadData")
	})

	t.Run("known id loads stored data", func(t *testing.T) {
		c := signedCookie(t)
		store := &mockStore{}
		store.On("ReadData", mock.Anything, "sess-1").
			Return(map[string]any{"theme": "dark"}, nil)
		storage := sessionstorage.New(c, store)

		header, err := c.Serialize("sess-1")
		require.NoError(t, err)

		sess, err := storage.GetSession(ctx, requestHeader(t, header))
		require.NoError(t, err)
		assert.Equal(t, "sess-1", sess.ID())
		v, ok := sess.Get("theme")
		require.True(t, ok)
		assert.Equal(t, "dark", v)
		store.AssertExpectations(t)
	})

	t.Run("unknown id yields empty session with empty id", func(t *testing.T) {
		c := signedCookie(t)
		store := &mockStore{}
		store.On("ReadData", mock.Anything, "gone").Return(nil, nil)
		storage := sessionstorage.New(c, store)

		header, err := c.Serialize("gone")
		require.NoError(t, err)

		sess, err := storage.GetSession(ctx, requestHeader(t, header))
		require.NoError(t, err)
		assert.Empty(t, sess.ID())
		assert.Empty(t, sess.Data())
		store.AssertExpectations(t)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		c := signedCookie(t)
		storeErr := errors.New("backend down")
		store := &mockStore{}
		store.On("ReadData", mock.Anything, "sess-1").Return(nil, storeErr)
		storage := sessionstorage.New(c, store)

		header, err := c.Serialize("sess-1")
		require.NoError(t, err)

		_, err = storage.GetSession(ctx, requestHeader(t, header))
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("flash data survives the load", func(t *testing.T) {
		c := signedCookie(t)
		store := &mockStore{}
		store.On("ReadData", mock.Anything, "sess-1").
			Return(map[string]any{"__flash_error__": "bad"}, nil)
		storage := sessionstorage.New(c, store)

		header, err := c.Serialize("sess-1")
		require.NoError(t, err)

		sess, err := storage.GetSession(ctx, requestHeader(t, header))
		require.NoError(t, err)

		v, ok := sess.Get("error")
		require.True(t, ok)
		assert.Equal(t, "bad", v)
		_, ok = sess.Get("error")
		assert.False(t, ok)
	})
}

func TestCommitSession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("new session creates and adopts id", func(t *testing.T) {
		c := signedCookie(t)
		store := &mockStore{}
		store.On("CreateData", mock.Anything, map[string]any{"theme": "dark"}, mock.Anything).
			Return("fresh-id", nil)
		storage := sessionstorage.New(c, store)

		sess := session.New("", nil)
		sess.Set("theme", "dark")

		header, err := storage.CommitSession(ctx, sess)
		require.NoError(t, err)
		assert.Equal(t, "fresh-id", sess.ID())

		// The emitted header correlates the client with the created record.
		value, err := c.Parse(requestHeader(t, header))
		require.NoError(t, err)
		assert.Equal(t, "fresh-id", value)
		store.AssertExpectations(t)
	})

	t.Run("existing session updates in place", func(t *testing.T) {
		c := signedCookie(t)
		store := &mockStore{}
		store.On("UpdateData", mock.Anything, "sess-1", map[string]any{"theme": "light"}, mock.Anything).
			Return(nil)
		storage := sessionstorage.New(c, store)

		sess := session.New("sess-1", map[string]any{"theme": "light"})

		header, err := storage.CommitSession(ctx, sess)
		require.NoError(t, err)
		assert.Equal(t, "sess-1", sess.ID())

		value, err := c.Parse(requestHeader(t, header))
		require.NoError(t, err)
		assert.Equal(t, "sess-1", value)
		store.AssertNotCalled(t, "CreateData")
	})

	t.Run("expiry comes from cookie config not call options", func(t *testing.T) {
		c := signedCookie(t, cookie.WithMaxAge(3600))
		store := &mockStore{}
		store.On("CreateData", mock.Anything, mock.Anything, mock.MatchedBy(func(expires time.Time) bool {
			return time.Until(expires) > 59*time.Minute && time.Until(expires) <= time.Hour
		})).Return("id-1", nil)
		storage := sessionstorage.New(c, store)

		// The per-call expiry must not leak into the store.
		_, err := storage.CommitSession(ctx, session.New("", nil),
			cookie.WithExpires(time.Now().Add(100*time.Hour)))
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("create failure propagates", func(t *testing.T) {
		storeErr := errors.New("create failed")
		store := &mockStore{}
		store.On("CreateData", mock.Anything, mock.Anything, mock.Anything).Return("", storeErr)
		storage := sessionstorage.New(signedCookie(t), store)

		_, err := storage.CommitSession(ctx, session.New("", nil))
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("update failure propagates", func(t *testing.T) {
		storeErr := errors.New("update failed")
		store := &mockStore{}
		store.On("UpdateData", mock.Anything, "sess-1", mock.Anything, mock.Anything).Return(storeErr)
		storage := sessionstorage.New(signedCookie(t), store)

		_, err := storage.CommitSession(ctx, session.New("sess-1", nil))
		assert.ErrorIs(t, err, storeErr)
	})
}

func TestDestroySession(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("deletes record and expires cookie", func(t *testing.T) {
		store := &mockStore{}
		store.On("DeleteData", mock.Anything, "sess-1").Return(nil)
		storage := sessionstorage.New(signedCookie(t), store)

		header, err := storage.DestroySession(ctx, session.New("sess-1", nil))
		require.NoError(t, err)

		ck, err := http.ParseSetCookie(header)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Unix(0, 0), ck.Expires, time.Second)
		store.AssertExpectations(t)
	})

	t.Run("deletes even with empty id", func(t *testing.T) {
		store := &mockStore{}
		store.On("DeleteData", mock.Anything, "").Return(nil)
		storage := sessionstorage.New(signedCookie(t), store)

		_, err := storage.DestroySession(ctx, session.New("", nil))
		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("caller expiry options are overridden", func(t *testing.T) {
		store := &mockStore{}
		store.On("DeleteData", mock.Anything, mock.Anything).Return(nil)
		storage := sessionstorage.New(signedCookie(t), store)

		header, err := storage.DestroySession(ctx, session.New("sess-1", nil),
			cookie.WithExpires(time.Now().Add(time.Hour)), cookie.WithMaxAge(3600))
		require.NoError(t, err)

		ck, err := http.ParseSetCookie(header)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Unix(0, 0), ck.Expires, time.Second)
		assert.LessOrEqual(t, ck.MaxAge, 0)
	})

	t.Run("delete failure propagates", func(t *testing.T) {
		storeErr := errors.New("delete failed")
		store := &mockStore{}
		store.On("DeleteData", mock.Anything, "sess-1").Return(storeErr)
		storage := sessionstorage.New(signedCookie(t), store)

		_, err := storage.DestroySession(ctx, session.New("sess-1", nil))
		assert.ErrorIs(t, err, storeErr)
	})
}

// TestRoundTrip drives a full create -> reload cycle through a real store.
func TestRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := sessionstorage.NewMemoryStore(0)
	storage := sessionstorage.New(signedCookie(t), store)

	sess, err := storage.GetSession(ctx, "")
	require.NoError(t, err)
	sess.Set("theme", "dark")
	sess.Flash("notice", "saved")

	header, err := storage.CommitSession(ctx, sess)
	require.NoError(t, err)
	require.NotEmpty(t, sess.ID())

	reloaded, err := storage.GetSession(ctx, requestHeader(t, header))
	require.NoError(t, err)
	assert.Equal(t, sess.ID(), reloaded.ID())

	v, ok := reloaded.Get("theme")
	require.True(t, ok)
	assert.Equal(t, "dark", v)

	v, ok = reloaded.Get("notice")
	require.True(t, ok)
	assert.Equal(t, "saved", v)
	_, ok = reloaded.Get("notice")
	assert.False(t, ok)

	// Committing the reloaded session drops the consumed flash value for the
	// next request.
	_, err = storage.CommitSession(ctx, reloaded)
	require.NoError(t, err)

	final, err := storage.GetSession(ctx, requestHeader(t, header))
	require.NoError(t, err)
	assert.False(t, final.Has("notice"))
	assert.True(t, final.Has("theme"))
}

func TestUnsignedCookieWarning(t *testing.T) {
	newUnsigned := func(t *testing.T, name string) *cookie.Cookie {
		t.Helper()
		c, err := cookie.New(name)
		require.NoError(t, err)
		return c
	}

	t.Run("warns once per cookie name", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		reg := &sessionstorage.WarnRegistry{}

		store := sessionstorage.NewMemoryStore(0)
		for range 3 {
			sessionstorage.New(newUnsigned(t, "unsigned_a"), store,
				sessionstorage.WithLogger(log), sessionstorage.WithWarnRegistry(reg))
		}

		assert.Equal(t, 1, strings.Count(buf.String(), "not signed"))
		assert.Contains(t, buf.String(), "unsigned_a")
	})

	t.Run("different names warn independently", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		reg := &sessionstorage.WarnRegistry{}

		store := sessionstorage.NewMemoryStore(0)
		sessionstorage.New(newUnsigned(t, "unsigned_b"), store,
			sessionstorage.WithLogger(log), sessionstorage.WithWarnRegistry(reg))
		sessionstorage.New(newUnsigned(t, "unsigned_c"), store,
			sessionstorage.WithLogger(log), sessionstorage.WithWarnRegistry(reg))

		assert.Equal(t, 2, strings.Count(buf.String(), "not signed"))
	})

	t.Run("signed cookie does not warn", func(t *testing.T) {
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))

		sessionstorage.New(signedCookie(t), sessionstorage.NewMemoryStore(0),
			sessionstorage.WithLogger(log), sessionstorage.WithWarnRegistry(&sessionstorage.WarnRegistry{}))

		assert.Empty(t, buf.String())
	})
}
