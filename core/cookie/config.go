package cookie

import (
	"net/http"
	"strings"
)

// Config provides environment-based configuration for a session cookie.
type Config struct {
	Name     string        `env:"SESSION_COOKIE_NAME" envDefault:"__session"`
	Secrets  string        `env:"SESSION_COOKIE_SECRETS" envDefault:""`
	Path     string        `env:"SESSION_COOKIE_PATH" envDefault:"/"`
	Domain   string        `env:"SESSION_COOKIE_DOMAIN" envDefault:""`
	MaxAge   int           `env:"SESSION_COOKIE_MAX_AGE" envDefault:"0"`
	Secure   bool          `env:"SESSION_COOKIE_SECURE" envDefault:"false"`
	HTTPOnly bool          `env:"SESSION_COOKIE_HTTP_ONLY" envDefault:"true"`
	SameSite http.SameSite `env:"SESSION_COOKIE_SAME_SITE" envDefault:"2"` // SameSiteLaxMode
}

// DefaultConfig returns a Config with secure defaults.
func DefaultConfig() Config {
	return Config{
		Name:     "__session",
		Path:     "/",
		HTTPOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// parseSecrets splits comma-separated secrets for key rotation support.
// Empty strings are filtered out.
func (c Config) parseSecrets() []string {
	if c.Secrets == "" {
		return nil
	}

	parts := strings.Split(c.Secrets, ",")
	secrets := make([]string, 0, len(parts))

	for _, s := range parts {
		s = strings.TrimSpace(s)
		if s != "" {
			secrets = append(secrets, s)
		}
	}

	return secrets
}

// NewFromConfig creates a Cookie from configuration.
// Only non-zero config values override defaults to preserve secure settings;
// user-provided options are applied last and win.
func NewFromConfig(cfg Config, opts ...Option) (*Cookie, error) {
	configOpts := make([]Option, 0)

	if secrets := cfg.parseSecrets(); len(secrets) > 0 {
		configOpts = append(configOpts, WithSecrets(secrets...))
	}
	if cfg.Path != "" {
		configOpts = append(configOpts, WithPath(cfg.Path))
	}
	if cfg.Domain != "" {
		configOpts = append(configOpts, WithDomain(cfg.Domain))
	}
	if cfg.MaxAge != 0 {
		configOpts = append(configOpts, WithMaxAge(cfg.MaxAge))
	}
	if cfg.Secure {
		configOpts = append(configOpts, WithSecure(cfg.Secure))
	}
	if cfg.HTTPOnly {
		configOpts = append(configOpts, WithHTTPOnly(cfg.HTTPOnly))
	}
	if cfg.SameSite != 0 {
		configOpts = append(configOpts, WithSameSite(cfg.SameSite))
	}

	configOpts = append(configOpts, opts...)

	name := cfg.Name
	if name == "" {
		name = "__session"
	}

	return New(name, configOpts...)
}
