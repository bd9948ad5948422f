package sessionstorage

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/startup-booster/remix/core/cookie"
	"github.com/startup-booster/remix/core/logger"
	"github.com/startup-booster/remix/core/session"
)

// WarnRegistry deduplicates unsigned-cookie warnings by cookie name.
// The zero value is ready to use and safe for concurrent factories.
type WarnRegistry struct {
	seen sync.Map
}

// warnUnsigned emits the one-time advisory for an unsigned cookie.
func (r *WarnRegistry) warnUnsigned(log *slog.Logger, name string) {
	if _, loaded := r.seen.LoadOrStore(name, struct{}{}); loaded {
		return
	}
	log.Warn("session cookie is not signed; its value can be forged by clients",
		logger.ID("cookie", name))
}

// defaultWarnings backs storages that don't inject their own registry.
// It lives for the process lifetime so each cookie name warns at most once.
var defaultWarnings WarnRegistry

// Storage translates between request cookie headers, session records, and a
// Store. It holds no per-request state of its own; all state lives in the
// cookie configuration and the store.
type Storage struct {
	cookie *cookie.Cookie
	store  Store
	log    *slog.Logger
}

// Option configures a Storage.
type Option func(*storageOptions)

type storageOptions struct {
	log      *slog.Logger
	warnings *WarnRegistry
}

// WithLogger sets the logger used for advisory diagnostics.
// Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(o *storageOptions) {
		if log != nil {
			o.log = log
		}
	}
}

// WithWarnRegistry injects the dedup state for unsigned-cookie warnings.
// Defaults to a process-wide registry shared by all storages.
func WithWarnRegistry(reg *WarnRegistry) Option {
	return func(o *storageOptions) {
		if reg != nil {
			o.warnings = reg
		}
	}
}

// New creates a session storage over the given cookie and store.
//
// When the cookie carries no signing secrets, New emits a one-time warning
// per cookie name through the configured logger. The warning is advisory; it
// never blocks construction or alters behavior.
func New(c *cookie.Cookie, store Store, opts ...Option) *Storage {
	options := storageOptions{
		log:      slog.Default(),
		warnings: &defaultWarnings,
	}
	for _, opt := range opts {
		opt(&options)
	}

	if !c.IsSigned() {
		options.warnings.warnUnsigned(options.log, c.Name())
	}

	return &Storage{
		cookie: c,
		store:  store,
		log:    options.log,
	}
}

// GetSession resolves an inbound Cookie header into a session record.
//
// A missing header, an absent cookie, or a cookie that fails parsing or
// signature verification all resolve to a fresh empty session rather than an
// error. An identifier unknown to the store resolves to an empty session with
// an empty identifier, as if the record never existed. Only store failures
// propagate.
func (s *Storage) GetSession(ctx context.Context, cookieHeader string, opts ...cookie.Option) (*session.Session, error) {
	id := ""
	if cookieHeader != "" {
		if value, err := s.cookie.Parse(cookieHeader, opts...); err == nil {
			id = value
		}
	}

	var data map[string]any
	if id != "" {
		stored, err := s.store.ReadData(ctx, id)
		if err != nil {
			return nil, err
		}
		if stored == nil {
			id = ""
		}
		data = stored
	}

	return session.New(id, data), nil
}

// CommitSession persists the session's data and returns the Set-Cookie header
// that correlates the client with the stored record. Sessions without an
// identifier are created (adopting the store's new identifier); sessions with
// one are updated in place.
//
// The expiry forwarded to the store comes from the cookie configuration, not
// from per-call options: the persistence lifetime tracks the configured
// cookie lifetime.
func (s *Storage) CommitSession(ctx context.Context, sess *session.Session, opts ...cookie.Option) (string, error) {
	data := sess.Data()
	expires := s.cookie.Expires()

	if id := sess.ID(); id != "" {
		if err := s.store.UpdateData(ctx, id, data, expires); err != nil {
			return "", err
		}
	} else {
		id, err := s.store.CreateData(ctx, data, expires)
		if err != nil {
			return "", err
		}
		sess.SetID(id)
	}

	return s.cookie.Serialize(sess.ID(), opts...)
}

// DestroySession deletes the persisted record and returns a Set-Cookie header
// that expires the cookie immediately. The delete is issued even for sessions
// with an empty identifier; stores treat that as a no-op. A caller-supplied
// expiry in opts is overridden.
func (s *Storage) DestroySession(ctx context.Context, sess *session.Session, opts ...cookie.Option) (string, error) {
	if err := s.store.DeleteData(ctx, sess.ID()); err != nil {
		return "", err
	}

	opts = append(opts, cookie.WithExpires(time.Unix(0, 0)), cookie.WithMaxAge(-1))
	return s.cookie.Serialize("", opts...)
}
