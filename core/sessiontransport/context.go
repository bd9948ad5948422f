package sessiontransport

import (
	"context"

	"github.com/startup-booster/remix/core/session"
)

type ctxKey struct{}

// NewContext returns a copy of ctx carrying the session.
func NewContext(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, sess)
}

// FromContext returns the session attached by Middleware. The second return
// reports whether one was present.
func FromContext(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(ctxKey{}).(*session.Session)
	return sess, ok
}
