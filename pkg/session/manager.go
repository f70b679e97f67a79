package session

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sessionkit/sessionkit/pkg/logger"
	"github.com/sessionkit/sessionkit/pkg/token"
)

// Manager drives the session lifecycle: it resolves the session for every
// request, creates sessions on login, writes through mutations, and destroys
// sessions on logout. All authoritative state lives in the Store; the Manager
// itself holds no mutable state and is safe for concurrent use.
type Manager struct {
	store     Store
	codec     *token.Codec
	transport Transport
	directory Directory
	config    Config
	log       *slog.Logger
}

// New creates a session Manager. A codec is required; without a store an
// in-memory store is used, and without a transport a cookie transport is
// built from the configuration.
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.codec == nil {
		// Running without a signing codec silently disables tamper detection;
		// fail fast instead.
		panic("session: token codec is required")
	}
	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval)
	}
	if m.transport == nil {
		m.transport = NewCookieTransport(m.config.CookieName, m.config.SecureCookies, m.config.SameSite)
	}
	if m.log == nil {
		m.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return m
}

// Resolve classifies the request's session. It is read-only with respect to
// stored state unless sliding expiry is enabled, in which case the store TTL
// is renewed best-effort. Store faults fail closed: the request proceeds as
// unauthenticated rather than erroring out.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) Resolution {
	cookieValue, err := m.transport.GetToken(r)
	if err != nil {
		return absent(ErrNoToken)
	}

	id, err := m.codec.Verify(cookieValue)
	if err != nil {
		// Forged or corrupt cookies resolve to anonymous, never to an error
		// the client could learn from.
		m.log.DebugContext(ctx, "session token rejected", logger.Error(err))
		return absent(err)
	}

	sess, err := m.store.Load(ctx, id)
	switch {
	case errors.Is(err, ErrSessionNotFound):
		// Expired or destroyed server-side; the stale cookie keeps resolving
		// to anonymous until the client logs in again or the cookie lapses.
		return absent(ErrSessionNotFound)
	case err != nil:
		m.log.WarnContext(ctx, "session store unavailable, failing closed",
			logger.Component("session"), logger.Error(err))
		return absent(ErrStoreUnavailable)
	}

	// Under sliding expiry the record's ExpiresAt still reflects creation
	// time, not the last renewal — liveness is owned entirely by the store
	// TTL, which Touch keeps advancing. Only fixed-expiry sessions get the
	// record-level re-check.
	if !m.config.SlidingExpiry && sess.IsExpired() {
		return absent(ErrSessionExpired)
	}

	if m.config.SlidingExpiry {
		if err := m.store.Touch(ctx, id, m.config.TTL); err != nil {
			m.log.DebugContext(ctx, "session touch failed", logger.SessionID(id), logger.Error(err))
		}
	}

	return Resolution{State: StateValid, Session: sess}
}

// Login authenticates the credentials against the directory and, on success,
// creates a brand-new session and instructs the transport to set its cookie.
// A fresh id is always minted — an id the client presented earlier is never
// upgraded, which defeats session fixation. On failure no session is created
// and no cookie is issued or altered.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, username, password string) (*Session, error) {
	if m.directory == nil {
		return nil, ErrNoDirectory
	}

	user, err := m.directory.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}

	id, cookieValue, err := m.codec.Issue()
	if err != nil {
		return nil, err
	}

	sess, err := NewAuthenticated(id, user.ID, user.Username, m.config.TTL)
	if err != nil {
		return nil, err
	}

	if err := m.store.Create(ctx, sess); err != nil {
		// Write-path store faults are surfaced distinctly so the client can
		// retry; they must not masquerade as bad credentials.
		return nil, err
	}

	if err := m.transport.SetToken(w, cookieValue, m.config.TTL); err != nil {
		// The request context may already be canceled here; the orphaned
		// record must still be removed.
		_ = m.store.Destroy(context.WithoutCancel(ctx), id)
		return nil, err
	}

	m.log.InfoContext(ctx, "session created",
		logger.SessionID(id), logger.UserID(user.ID))

	return sess, nil
}

// Mutate applies a field-level change to a valid resolution's session and
// writes it through. Calling it with an unresolved session is an error.
func (m *Manager) Mutate(ctx context.Context, res Resolution, fn func(*Session)) (*Session, error) {
	if !res.Valid() {
		return nil, ErrNotAuthenticated
	}

	sess := *res.Session
	fn(&sess)
	if !sess.valid() || sess.ID != res.Session.ID {
		return nil, ErrInvalidSession
	}

	if err := m.store.Save(ctx, &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Logout destroys the session record and clears the cookie. Both steps always
// run: a store failure still clears the cookie, and a missing record is
// success (logout is idempotent). The returned error reports store faults for
// logging; callers should treat the logout as effective once the cookie is
// cleared.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	var destroyErr error

	if cookieValue, err := m.transport.GetToken(r); err == nil {
		if id, err := m.codec.Verify(cookieValue); err == nil {
			destroyErr = m.store.Destroy(ctx, id)
			if destroyErr != nil {
				m.log.ErrorContext(ctx, "session destroy failed",
					logger.SessionID(id), logger.Error(destroyErr))
			}
		}
	}

	if err := m.transport.ClearToken(w); err != nil {
		return errors.Join(destroyErr, err)
	}
	return destroyErr
}
