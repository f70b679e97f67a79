package session_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionkit/sessionkit/pkg/session"
	"github.com/sessionkit/sessionkit/pkg/token"
)

const testSigningSecret = "0123456789abcdef0123456789abcdef"

type stubDirectory struct {
	users map[string]session.User // username -> user
	pass  map[string]string       // username -> password
}

func (d *stubDirectory) Authenticate(_ context.Context, username, password string) (session.User, error) {
	user, ok := d.users[username]
	if !ok || d.pass[username] != password {
		return session.User{}, session.ErrInvalidCredentials
	}
	return user, nil
}

// failingStore simulates a backend outage on every operation.
type failingStore struct{}

func (failingStore) Create(context.Context, *session.Session) error { return session.ErrStoreUnavailable }
func (failingStore) Save(context.Context, *session.Session) error   { return session.ErrStoreUnavailable }
func (failingStore) Load(context.Context, string) (*session.Session, error) {
	return nil, session.ErrStoreUnavailable
}
func (failingStore) Destroy(context.Context, string) error { return session.ErrStoreUnavailable }
func (failingStore) Touch(context.Context, string, time.Duration) error {
	return session.ErrStoreUnavailable
}

// recordingStore counts Touch calls on top of a real in-memory store.
type recordingStore struct {
	*session.MemoryStore
	touches atomic.Int32
}

func (r *recordingStore) Touch(ctx context.Context, id string, ttl time.Duration) error {
	r.touches.Add(1)
	return r.MemoryStore.Touch(ctx, id, ttl)
}

// destroyCtxStore captures the context the compensating Destroy runs on.
type destroyCtxStore struct {
	*session.MemoryStore
	destroyCtx context.Context
}

func (s *destroyCtxStore) Destroy(ctx context.Context, id string) error {
	s.destroyCtx = ctx
	return s.MemoryStore.Destroy(ctx, id)
}

// brokenTransport fails every cookie write.
type brokenTransport struct{}

func (brokenTransport) GetToken(*http.Request) (string, error) {
	return "", session.ErrNoToken
}
func (brokenTransport) SetToken(http.ResponseWriter, string, time.Duration) error {
	return errors.New("response headers already sent")
}
func (brokenTransport) ClearToken(http.ResponseWriter) error { return nil }

func testDirectory() *stubDirectory {
	return &stubDirectory{
		users: map[string]session.User{
			"juan": {ID: "1", Username: "juan"},
		},
		pass: map[string]string{"juan": "123456"},
	}
}

func newTestManager(t *testing.T, opts ...session.Option) *session.Manager {
	t.Helper()
	codec, err := token.New([]string{testSigningSecret})
	require.NoError(t, err)

	base := []session.Option{
		session.WithCodec(codec),
		session.WithDirectory(testDirectory()),
	}
	return session.New(append(base, opts...)...)
}

// loginRequest performs a login and returns a request carrying the issued
// cookie, ready for follow-up calls.
func loginRequest(t *testing.T, mgr *session.Manager) (*session.Session, *http.Request) {
	t.Helper()
	rec := httptest.NewRecorder()
	sess, err := mgr.Login(context.Background(), rec, "juan", "123456")
	require.NoError(t, err)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return sess, r
}

func TestManager_Login(t *testing.T) {
	t.Run("issues a session and a hardened cookie", func(t *testing.T) {
		mgr := newTestManager(t)
		rec := httptest.NewRecorder()

		sess, err := mgr.Login(context.Background(), rec, "juan", "123456")
		require.NoError(t, err)
		assert.True(t, sess.IsAuthenticated())
		assert.Equal(t, "1", sess.UserID)
		assert.Equal(t, "juan", sess.Username)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		cookie := cookies[0]
		assert.Equal(t, session.DefaultConfig().CookieName, cookie.Name)
		assert.True(t, cookie.HttpOnly)
		assert.NotEmpty(t, cookie.Value)
		assert.NotContains(t, cookie.Value, sess.UserID+".",
			"cookie must carry an opaque id, not user data")
	})

	t.Run("rejects bad credentials without touching the cookie", func(t *testing.T) {
		mgr := newTestManager(t)
		rec := httptest.NewRecorder()

		_, err := mgr.Login(context.Background(), rec, "juan", "wrong")
		assert.ErrorIs(t, err, session.ErrInvalidCredentials)
		assert.Empty(t, rec.Result().Cookies())

		_, err = mgr.Login(context.Background(), rec, "ghost", "123456")
		assert.ErrorIs(t, err, session.ErrInvalidCredentials)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("mints a fresh id on every login", func(t *testing.T) {
		mgr := newTestManager(t)

		first, _ := loginRequest(t, mgr)
		second, _ := loginRequest(t, mgr)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("surfaces store faults distinctly", func(t *testing.T) {
		mgr := newTestManager(t, session.WithStore(failingStore{}))
		rec := httptest.NewRecorder()

		_, err := mgr.Login(context.Background(), rec, "juan", "123456")
		assert.ErrorIs(t, err, session.ErrStoreUnavailable)
		assert.NotErrorIs(t, err, session.ErrInvalidCredentials)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("cleans up the record when the cookie write fails", func(t *testing.T) {
		store := &destroyCtxStore{MemoryStore: session.NewMemoryStore(0)}
		t.Cleanup(func() { _ = store.Close() })

		mgr := newTestManager(t,
			session.WithStore(store),
			session.WithTransport(brokenTransport{}),
		)

		// A canceled request context must not abort the cleanup.
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := mgr.Login(ctx, httptest.NewRecorder(), "juan", "123456")
		require.Error(t, err)

		assert.Zero(t, store.Len(), "orphaned record left behind")
		require.NotNil(t, store.destroyCtx)
		assert.NoError(t, store.destroyCtx.Err(), "cleanup ran on a canceled context")
	})

	t.Run("errors without a directory", func(t *testing.T) {
		codec, err := token.New([]string{testSigningSecret})
		require.NoError(t, err)
		mgr := session.New(session.WithCodec(codec))

		_, err = mgr.Login(context.Background(), httptest.NewRecorder(), "juan", "123456")
		assert.ErrorIs(t, err, session.ErrNoDirectory)
	})
}

func TestManager_Resolve(t *testing.T) {
	t.Run("no cookie resolves to absent", func(t *testing.T) {
		mgr := newTestManager(t)
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		res := mgr.Resolve(context.Background(), r)
		assert.False(t, res.Valid())
		assert.False(t, res.Authenticated())
		assert.Nil(t, res.Session)
	})

	t.Run("valid cookie resolves the session", func(t *testing.T) {
		mgr := newTestManager(t)
		sess, r := loginRequest(t, mgr)

		res := mgr.Resolve(context.Background(), r)
		require.True(t, res.Valid())
		assert.True(t, res.Authenticated())
		assert.Equal(t, sess.ID, res.Session.ID)
		assert.Equal(t, "juan", res.Session.Username)
	})

	t.Run("tampered cookie resolves to absent", func(t *testing.T) {
		mgr := newTestManager(t)
		_, r := loginRequest(t, mgr)

		cookie, err := r.Cookie(session.DefaultConfig().CookieName)
		require.NoError(t, err)

		forged := httptest.NewRequest(http.MethodGet, "/", nil)
		forged.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value + "x"})

		res := mgr.Resolve(context.Background(), forged)
		assert.False(t, res.Valid())
		assert.ErrorIs(t, res.Cause(), token.ErrInvalidToken)
	})

	t.Run("unsigned cookie value resolves to absent", func(t *testing.T) {
		mgr := newTestManager(t)
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: session.DefaultConfig().CookieName, Value: "some-raw-id"})

		res := mgr.Resolve(context.Background(), r)
		assert.False(t, res.Valid())
	})

	t.Run("destroyed session resolves to absent", func(t *testing.T) {
		mgr := newTestManager(t)
		_, r := loginRequest(t, mgr)

		rec := httptest.NewRecorder()
		require.NoError(t, mgr.Logout(context.Background(), rec, r))

		res := mgr.Resolve(context.Background(), r)
		assert.False(t, res.Valid())
		assert.ErrorIs(t, res.Cause(), session.ErrSessionNotFound)
	})

	t.Run("store outage fails closed", func(t *testing.T) {
		mgr := newTestManager(t)
		_, r := loginRequest(t, mgr)

		down := newTestManager(t, session.WithStore(failingStore{}))
		res := down.Resolve(context.Background(), r)
		assert.False(t, res.Valid())
		assert.ErrorIs(t, res.Cause(), session.ErrStoreUnavailable)
	})
}

func TestManager_SlidingExpiry(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		store := &recordingStore{MemoryStore: session.NewMemoryStore(0)}
		t.Cleanup(func() { _ = store.Close() })

		mgr := newTestManager(t, session.WithStore(store))
		_, r := loginRequest(t, mgr)

		require.True(t, mgr.Resolve(context.Background(), r).Valid())
		assert.Zero(t, store.touches.Load())
	})

	t.Run("renews the TTL on every resolve when enabled", func(t *testing.T) {
		store := &recordingStore{MemoryStore: session.NewMemoryStore(0)}
		t.Cleanup(func() { _ = store.Close() })

		mgr := newTestManager(t, session.WithStore(store), session.WithSlidingExpiry(true))
		_, r := loginRequest(t, mgr)

		require.True(t, mgr.Resolve(context.Background(), r).Valid())
		require.True(t, mgr.Resolve(context.Background(), r).Valid())
		assert.Equal(t, int32(2), store.touches.Load())
	})

	t.Run("redis-backed session outlives its original expiry under activity", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
		t.Cleanup(func() { _ = client.Close() })

		mgr := newTestManager(t,
			session.WithStore(session.NewRedisStore(client)),
			session.WithSlidingExpiry(true),
			session.WithTTL(100*time.Millisecond),
		)
		_, r := loginRequest(t, mgr)

		// Keep resolving well past the creation-time expiry. Every resolve
		// renews the key TTL, so the session must stay valid throughout even
		// though the stored record's ExpiresAt never advances.
		deadline := time.Now().Add(300 * time.Millisecond)
		for time.Now().Before(deadline) {
			res := mgr.Resolve(context.Background(), r)
			require.True(t, res.Valid(), "active session expired: cause=%v", res.Cause())
			time.Sleep(25 * time.Millisecond)
		}

		// Once activity stops, the renewed TTL still bounds the session.
		mr.FastForward(time.Second)
		res := mgr.Resolve(context.Background(), r)
		assert.False(t, res.Valid())
		assert.ErrorIs(t, res.Cause(), session.ErrSessionNotFound)
	})
}

func TestManager_Mutate(t *testing.T) {
	mgr := newTestManager(t)
	_, r := loginRequest(t, mgr)
	res := mgr.Resolve(context.Background(), r)
	require.True(t, res.Valid())

	t.Run("writes field changes through", func(t *testing.T) {
		updated, err := mgr.Mutate(context.Background(), res, func(s *session.Session) {
			s.Username = "juan-renamed"
		})
		require.NoError(t, err)
		assert.Equal(t, "juan-renamed", updated.Username)

		reread := mgr.Resolve(context.Background(), r)
		require.True(t, reread.Valid())
		assert.Equal(t, "juan-renamed", reread.Session.Username)
	})

	t.Run("rejects id changes", func(t *testing.T) {
		_, err := mgr.Mutate(context.Background(), res, func(s *session.Session) {
			s.ID = "hijacked"
		})
		assert.ErrorIs(t, err, session.ErrInvalidSession)
	})

	t.Run("rejects unresolved sessions", func(t *testing.T) {
		_, err := mgr.Mutate(context.Background(), session.Resolution{}, func(*session.Session) {})
		assert.ErrorIs(t, err, session.ErrNotAuthenticated)
	})
}

func TestManager_Logout(t *testing.T) {
	t.Run("destroys the record and clears the cookie", func(t *testing.T) {
		mgr := newTestManager(t)
		_, r := loginRequest(t, mgr)

		rec := httptest.NewRecorder()
		require.NoError(t, mgr.Logout(context.Background(), rec, r))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Empty(t, cookies[0].Value)
		assert.Negative(t, cookies[0].MaxAge)

		assert.False(t, mgr.Resolve(context.Background(), r).Valid())
	})

	t.Run("is idempotent", func(t *testing.T) {
		mgr := newTestManager(t)
		_, r := loginRequest(t, mgr)

		require.NoError(t, mgr.Logout(context.Background(), httptest.NewRecorder(), r))
		assert.NoError(t, mgr.Logout(context.Background(), httptest.NewRecorder(), r))
	})

	t.Run("without a cookie still succeeds", func(t *testing.T) {
		mgr := newTestManager(t)
		r := httptest.NewRequest(http.MethodPost, "/logout", nil)

		rec := httptest.NewRecorder()
		require.NoError(t, mgr.Logout(context.Background(), rec, r))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Negative(t, cookies[0].MaxAge)
	})

	t.Run("clears the cookie even when the store is down", func(t *testing.T) {
		mgr := newTestManager(t)
		_, r := loginRequest(t, mgr)

		down := newTestManager(t, session.WithStore(failingStore{}))
		rec := httptest.NewRecorder()
		err := down.Logout(context.Background(), rec, r)
		assert.ErrorIs(t, err, session.ErrStoreUnavailable)

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Negative(t, cookies[0].MaxAge)
	})
}
