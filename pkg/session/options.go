package session

import (
	"log/slog"
	"time"

	"github.com/sessionkit/sessionkit/pkg/token"
)

// Option is a functional option for configuring the Manager.
type Option func(*Manager)

// WithStore sets the session store.
func WithStore(store Store) Option {
	return func(m *Manager) { m.store = store }
}

// WithCodec sets the token codec. Required.
func WithCodec(codec *token.Codec) Option {
	return func(m *Manager) { m.codec = codec }
}

// WithTransport sets a custom token transport.
func WithTransport(transport Transport) Option {
	return func(m *Manager) { m.transport = transport }
}

// WithDirectory sets the user directory consulted by Login.
func WithDirectory(directory Directory) Option {
	return func(m *Manager) { m.directory = directory }
}

// WithConfig replaces the whole configuration.
func WithConfig(config Config) Option {
	return func(m *Manager) { m.config = config }
}

// WithTTL sets the session lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) { m.config.TTL = ttl }
}

// WithSlidingExpiry opts in to renewing the store TTL on each read.
func WithSlidingExpiry(enabled bool) Option {
	return func(m *Manager) { m.config.SlidingExpiry = enabled }
}

// WithCookieName sets the session cookie name used by the default transport.
func WithCookieName(name string) Option {
	return func(m *Manager) { m.config.CookieName = name }
}

// WithLogger sets the logger for lifecycle diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) { m.log = log }
}
