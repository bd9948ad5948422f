package cookie

import (
	"errors"
	"fmt"
)

var (
	// ErrNoName indicates a cookie was constructed without a name.
	ErrNoName = errors.New("cookie name is required")

	// ErrSecretTooShort indicates a signing secret doesn't meet the minimum
	// length requirement of 32 characters.
	ErrSecretTooShort = errors.New("secret must be at least 32 characters long")

	// ErrInvalidSignature indicates cookie signature verification failed,
	// suggesting tampering or corruption.
	ErrInvalidSignature = errors.New("cookie signature verification failed")

	// ErrCookieNotFound indicates the cookie is not present in the request
	// header.
	ErrCookieNotFound = errors.New("cookie not found in request")

	// ErrInvalidFormat indicates the header or cookie value has an unexpected
	// format, typically during decoding operations.
	ErrInvalidFormat = errors.New("invalid cookie format")
)

// ErrCookieTooLarge indicates the serialized cookie exceeds the maximum
// allowed size.
type ErrCookieTooLarge struct {
	Name string
	Size int
	Max  int
}

// Error implements the error interface.
func (e ErrCookieTooLarge) Error() string {
	return fmt.Sprintf("cookie %q size %d exceeds maximum %d bytes", e.Name, e.Size, e.Max)
}
