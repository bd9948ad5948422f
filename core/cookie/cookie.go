package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
)

const (
	// MaxCookieSize is the maximum size for a serialized cookie header (4KB).
	MaxCookieSize = 4096
	// minSecretLength is the minimum accepted signing secret length.
	minSecretLength = 32
)

// Cookie describes a single named cookie: how to find its value in an inbound
// Cookie header and how to serialize a value into an outbound Set-Cookie
// header. When signing secrets are configured, values are HMAC-SHA256 signed
// on Serialize and verified on Parse, with multi-secret rotation support.
//
// Cookie is immutable after construction and safe for concurrent use.
type Cookie struct {
	name     string
	secrets  []string
	defaults Options
	maxSize  int
}

// New creates a cookie definition with the given name.
// Defaults are Path=/, HttpOnly, SameSite=Lax; override via options.
func New(name string, opts ...Option) (*Cookie, error) {
	if name == "" {
		return nil, ErrNoName
	}

	defaults := Options{
		Path:     "/",
		HTTPOnly: true,
		SameSite: http.SameSiteLaxMode,
		Sign:     true,
	}
	defaults = applyOptions(defaults, opts)

	// Empty secrets are removed rather than rejected so env-driven setups can
	// leave the variable unset for an unsigned cookie.
	secrets := slices.DeleteFunc(slices.Clone(defaults.secrets), func(s string) bool { return s == "" })
	for i, secret := range secrets {
		if len(secret) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d",
				ErrSecretTooShort, i, len(secret), minSecretLength)
		}
	}

	return &Cookie{
		name:     name,
		secrets:  secrets,
		defaults: defaults,
		maxSize:  MaxCookieSize,
	}, nil
}

// Name returns the cookie name.
func (c *Cookie) Name() string {
	return c.name
}

// IsSigned reports whether values are cryptographically signed.
func (c *Cookie) IsSigned() bool {
	return len(c.secrets) > 0
}

// Expires returns the absolute expiry implied by the cookie configuration:
// the configured Expires if set, otherwise now+MaxAge, otherwise the zero
// time (session cookie, no durable expiry). The storage layer forwards this
// to persistence backends as advisory expiration metadata.
func (c *Cookie) Expires() time.Time {
	if !c.defaults.Expires.IsZero() {
		return c.defaults.Expires
	}
	if c.defaults.MaxAge > 0 {
		return time.Now().Add(time.Duration(c.defaults.MaxAge) * time.Second)
	}
	return time.Time{}
}

// Parse extracts this cookie's value from a raw Cookie request header.
// Returns ErrCookieNotFound if the header does not carry the cookie, and
// ErrInvalidSignature if the cookie is signed and verification fails.
func (c *Cookie) Parse(header string, opts ...Option) (string, error) {
	if header == "" {
		return "", ErrCookieNotFound
	}

	options := applyOptions(c.defaults, opts)

	cookies, err := http.ParseCookie(header)
	if err != nil {
		return "", errors.Join(ErrInvalidFormat, err)
	}

	idx := slices.IndexFunc(cookies, func(ck *http.Cookie) bool { return ck.Name == c.name })
	if idx < 0 {
		return "", ErrCookieNotFound
	}

	value := cookies[idx].Value
	if c.IsSigned() && options.Sign {
		return c.verify(value)
	}
	return value, nil
}

// Serialize produces a Set-Cookie header string for the given value, signing
// it when secrets are configured. Options override the configured defaults
// for this one header.
func (c *Cookie) Serialize(value string, opts ...Option) (string, error) {
	options := applyOptions(c.defaults, opts)

	if c.IsSigned() && options.Sign {
		value = c.sign(value)
	}

	ck := &http.Cookie{
		Name:     c.name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   options.MaxAge,
		Expires:  options.Expires,
		Secure:   options.Secure,
		HttpOnly: options.HTTPOnly,
		SameSite: options.SameSite,
	}

	header := ck.String()
	if header == "" {
		return "", ErrInvalidFormat
	}
	if len(header) > c.maxSize {
		return "", ErrCookieTooLarge{
			Name: c.name,
			Size: len(header),
			Max:  c.maxSize,
		}
	}

	return header, nil
}

// sign creates an HMAC-SHA256 signature over the value using the first
// (current) secret.
func (c *Cookie) sign(value string) string {
	mac := hmac.New(sha256.New, []byte(c.secrets[0]))
	mac.Write([]byte(value))
	signature := base64.URLEncoding.EncodeToString(mac.Sum(nil))
	return base64.URLEncoding.EncodeToString([]byte(value)) + "|" + signature
}

// verify checks the HMAC signature against every configured secret so that
// cookies signed with a rotated-out key remain valid.
func (c *Cookie) verify(signed string) (string, error) {
	parts := strings.SplitN(signed, "|", 2)
	if len(parts) != 2 {
		return "", ErrInvalidFormat
	}

	encodedValue, signature := parts[0], parts[1]

	value, err := base64.URLEncoding.DecodeString(encodedValue)
	if err != nil {
		return "", ErrInvalidFormat
	}

	validIndex := slices.IndexFunc(c.secrets, func(secret string) bool {
		mac := hmac.New(sha256.New, []byte(secret))
		mac.Write(value)
		expectedSig := base64.URLEncoding.EncodeToString(mac.Sum(nil))
		return subtle.ConstantTimeCompare([]byte(signature), []byte(expectedSig)) == 1
	})

	if validIndex >= 0 {
		return string(value), nil
	}

	return "", ErrInvalidSignature
}
