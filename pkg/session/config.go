package session

import (
	"net/http"
	"time"
)

// Config holds session lifecycle configuration.
type Config struct {
	// CookieName is the session cookie name. The default matches the common
	// session-middleware convention.
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"connect.sid"`

	// TTL is the session lifetime. By default it is a fixed absolute expiry
	// counted from creation.
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	// SlidingExpiry renews the store TTL on every authenticated read. Off by
	// default; expiry is fixed from creation unless explicitly opted in.
	SlidingExpiry bool `env:"SESSION_SLIDING_EXPIRY" envDefault:"false"`

	// SecureCookies enables the Secure flag on the session cookie.
	SecureCookies bool `env:"SESSION_SECURE_COOKIES" envDefault:"false"`

	// SameSite is the cookie cross-site send policy (2 = Lax).
	SameSite http.SameSite `env:"SESSION_SAME_SITE" envDefault:"2"`

	// CleanupInterval drives the expiry sweep of the in-memory store. It has
	// no effect on Redis, which reclaims keys natively.
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns the default session configuration.
func DefaultConfig() Config {
	return Config{
		CookieName:      "connect.sid",
		TTL:             24 * time.Hour,
		SlidingExpiry:   false,
		SecureCookies:   false,
		SameSite:        http.SameSiteLaxMode,
		CleanupInterval: 5 * time.Minute,
	}
}
