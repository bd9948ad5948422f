// Package cookie owns the wire format of the session cookie: parsing a raw
// Cookie request header into a value, serializing a value into a Set-Cookie
// response header, and optional HMAC-SHA256 signing with key rotation.
//
// The package operates on header strings rather than http.Request or
// http.ResponseWriter, so it composes with any HTTP layer and stays trivially
// testable.
//
// # Basic Usage
//
//	c, err := cookie.New("__session",
//		cookie.WithSecrets("your-32-char-secret-key-here!!!!"),
//		cookie.WithMaxAge(7*24*3600),
//		cookie.WithSecure(true),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	header, err := c.Serialize("session-id")   // Set-Cookie value
//	value, err := c.Parse(r.Header.Get("Cookie"))
//
// # Signing
//
// When secrets are configured via WithSecrets, Serialize signs values and
// Parse verifies them; a tampered cookie fails with ErrInvalidSignature.
// The first secret signs, every secret verifies, so secrets can be rotated
// by prepending a new one. Without secrets the cookie is plaintext and
// IsSigned reports false, which the storage layer surfaces as a one-time
// warning.
//
// # Environment Configuration
//
// Config carries env-tagged fields for the usual attributes:
//
//	var cfg cookie.Config
//	config.MustLoad(&cfg)
//	c, err := cookie.NewFromConfig(cfg)
//
// # Errors
//
// Parse and Serialize return sentinel errors (ErrCookieNotFound,
// ErrInvalidSignature, ErrInvalidFormat) plus the ErrCookieTooLarge struct
// when a serialized header would exceed 4KB.
package cookie
