package sessionstorage

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/startup-booster/remix/core/cookie"
	"github.com/startup-booster/remix/core/session"
)

// CookieStorage stores the whole session data map inside the cookie value
// itself instead of delegating to a Store. Sessions from a CookieStorage
// always have an empty identifier: there is no durable server-side identity.
//
// Data is JSON-encoded and base64url-wrapped, so values must be
// JSON-serializable and the encoded payload must fit the 4KB cookie limit;
// CommitSession fails with cookie.ErrCookieTooLarge otherwise. Sign the
// cookie unless clients may rewrite their own session data.
type CookieStorage struct {
	cookie *cookie.Cookie
	log    *slog.Logger
}

// NewCookieStorage creates a session storage that persists entirely in the
// cookie. The same one-time unsigned-cookie warning as New applies.
func NewCookieStorage(c *cookie.Cookie, opts ...Option) *CookieStorage {
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

	return &CookieStorage{
		cookie: c,
		log:    options.log,
	}
}

// GetSession decodes the inbound cookie value into a session record. Missing,
// unparseable, or undecodable cookies resolve to a fresh empty session.
func (s *CookieStorage) GetSession(ctx context.Context, cookieHeader string, opts ...cookie.Option) (*session.Session, error) {
	var data map[string]any
	if cookieHeader != "" {
		if value, err := s.cookie.Parse(cookieHeader, opts...); err == nil {
			if decoded, err := decodeCookieData(value); err == nil {
				data = decoded
			}
		}
	}

	return session.New("", data), nil
}

// CommitSession encodes the session data into the returned Set-Cookie header.
func (s *CookieStorage) CommitSession(ctx context.Context, sess *session.Session, opts ...cookie.Option) (string, error) {
	value, err := encodeCookieData(sess.Data())
	if err != nil {
		return "", err
	}
	return s.cookie.Serialize(value, opts...)
}

// DestroySession returns a Set-Cookie header that expires the cookie
// immediately, discarding the client-held data. A caller-supplied expiry in
// opts is overridden.
func (s *CookieStorage) DestroySession(ctx context.Context, sess *session.Session, opts ...cookie.Option) (string, error) {
	opts = append(opts, cookie.WithExpires(time.Unix(0, 0)), cookie.WithMaxAge(-1))
	return s.cookie.Serialize("", opts...)
}

func encodeCookieData(data map[string]any) (string, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("session cookie storage: encode: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(payload), nil
}

func decodeCookieData(value string) (map[string]any, error) {
	payload, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("session cookie storage: decode: %w", err)
	}

	var data map[string]any
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("session cookie storage: decode: %w", err)
	}
	return data, nil
}
