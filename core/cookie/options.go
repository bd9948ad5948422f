package cookie

import (
	"net/http"
	"slices"
	"time"
)

// Options configures cookie attributes for parse and serialize operations.
type Options struct {
	Path     string
	Domain   string
	MaxAge   int
	Expires  time.Time
	Secure   bool
	HTTPOnly bool
	SameSite http.SameSite
	// Sign controls whether Parse verifies and Serialize signs the value.
	// Ignored when no secrets are configured.
	Sign bool

	// secrets is set via WithSecrets at construction time only.
	secrets []string
}

// Option is a functional option for configuring cookie options.
type Option func(*Options)

// WithSecrets configures HMAC signing secrets. The first secret signs new
// values; all secrets verify, which allows key rotation. Empty strings are
// ignored; non-empty secrets must be at least 32 characters.
func WithSecrets(secrets ...string) Option {
	return func(o *Options) {
		o.secrets = secrets
	}
}

// WithPath sets the cookie path attribute.
func WithPath(path string) Option {
	return func(o *Options) {
		o.Path = path
	}
}

// WithDomain sets the cookie domain attribute.
func WithDomain(domain string) Option {
	return func(o *Options) {
		o.Domain = domain
	}
}

// WithMaxAge sets the cookie max-age in seconds.
// Negative values delete the cookie immediately.
func WithMaxAge(seconds int) Option {
	return func(o *Options) {
		o.MaxAge = seconds
	}
}

// WithExpires sets an explicit expiry timestamp.
func WithExpires(expires time.Time) Option {
	return func(o *Options) {
		o.Expires = expires
	}
}

// WithSecure sets the secure flag, ensuring cookies are only sent over HTTPS.
func WithSecure(secure bool) Option {
	return func(o *Options) {
		o.Secure = secure
	}
}

// WithHTTPOnly prevents JavaScript access to the cookie.
func WithHTTPOnly(httpOnly bool) Option {
	return func(o *Options) {
		o.HTTPOnly = httpOnly
	}
}

// WithSameSite sets the SameSite attribute for CSRF protection.
func WithSameSite(sameSite http.SameSite) Option {
	return func(o *Options) {
		o.SameSite = sameSite
	}
}

// WithSigning toggles signature creation/verification for one operation.
func WithSigning(sign bool) Option {
	return func(o *Options) {
		o.Sign = sign
	}
}

// applyOptions creates a new Options struct by copying base options and
// applying modifications. This prevents accidental mutation of shared
// defaults.
func applyOptions(base Options, opts []Option) Options {
	result := base
	result.secrets = slices.Clone(base.secrets)

	for _, opt := range opts {
		opt(&result)
	}

	return result
}
