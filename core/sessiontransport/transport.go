package sessiontransport

import (
	"net/http"

	"github.com/startup-booster/remix/core/cookie"
	"github.com/startup-booster/remix/core/session"
	"github.com/startup-booster/remix/core/sessionstorage"
)

// Transport adapts a sessionstorage.Storage to net/http requests and
// responses. Storage works in terms of raw Cookie and Set-Cookie header
// strings; Transport reads and writes those headers on the request and
// response for you.
type Transport struct {
	storage *sessionstorage.Storage
}

// New creates a Transport over the given storage.
func New(storage *sessionstorage.Storage) *Transport {
	return &Transport{storage: storage}
}

// Load resolves the request's Cookie header into a session. It never fails
// on missing or invalid cookies; only store errors propagate.
func (t *Transport) Load(r *http.Request) (*session.Session, error) {
	return t.storage.GetSession(r.Context(), r.Header.Get("Cookie"))
}

// Save commits the session and appends the resulting Set-Cookie header to
// the response. It must be called before the response status is written.
func (t *Transport) Save(w http.ResponseWriter, r *http.Request, sess *session.Session, opts ...cookie.Option) error {
	header, err := t.storage.CommitSession(r.Context(), sess, opts...)
	if err != nil {
		return err
	}
	w.Header().Add("Set-Cookie", header)
	return nil
}

// Destroy deletes the persisted session and appends a Set-Cookie header that
// expires the cookie immediately.
func (t *Transport) Destroy(w http.ResponseWriter, r *http.Request, sess *session.Session, opts ...cookie.Option) error {
	header, err := t.storage.DestroySession(r.Context(), sess, opts...)
	if err != nil {
		return err
	}
	w.Header().Add("Set-Cookie", header)
	return nil
}

// Middleware loads the request's session into the request context so
// downstream handlers can fetch it with FromContext. Handlers remain
// responsible for calling Save after mutating the session.
//
// Store failures during load are answered with 500 and the handler is not
// invoked.
func (t *Transport) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := t.Load(r)
		if err != nil {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), sess)))
	})
}
