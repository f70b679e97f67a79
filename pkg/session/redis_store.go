package session

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// DefaultKeyPrefix matches the common session-middleware convention.
	DefaultKeyPrefix = "sess:"

	// defaultOpTimeout bounds every store round trip so a slow backend cannot
	// stall request handling indefinitely.
	defaultOpTimeout = 3 * time.Second
)

// RedisStore persists sessions in Redis, one JSON value per session keyed by
// "<prefix><id>", with expiry delegated to Redis TTLs.
type RedisStore struct {
	client    redis.UniversalClient
	prefix    string
	opTimeout time.Duration
}

// RedisStoreOption configures a RedisStore.
type RedisStoreOption func(*RedisStore)

// WithKeyPrefix overrides the key prefix.
func WithKeyPrefix(prefix string) RedisStoreOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// WithOpTimeout overrides the per-operation timeout.
func WithOpTimeout(d time.Duration) RedisStoreOption {
	return func(s *RedisStore) {
		if d > 0 {
			s.opTimeout = d
		}
	}
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client redis.UniversalClient, opts ...RedisStoreOption) *RedisStore {
	s := &RedisStore{
		client:    client,
		prefix:    DefaultKeyPrefix,
		opTimeout: defaultOpTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) key(id string) string {
	return s.prefix + id
}

func (s *RedisStore) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

func (s *RedisStore) Create(ctx context.Context, sess *Session) error {
	return s.write(ctx, sess)
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	return s.write(ctx, sess)
}

func (s *RedisStore) write(ctx context.Context, sess *Session) error {
	if !sess.valid() {
		return ErrInvalidSession
	}

	ttl := sess.TTL()
	if ttl <= 0 {
		return ErrSessionExpired
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Join(ErrInvalidSession, err)
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	if err := s.client.Set(ctx, s.key(sess.ID), data, ttl).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, errors.Join(ErrInvalidSession, err)
	}
	// Expiry is owned by the Redis TTL: a key that is still readable is still
	// live. The record's ExpiresAt is not re-checked here so that Touch-based
	// sliding expiry works without rewriting the value.
	return &sess, nil
}

func (s *RedisStore) Destroy(ctx context.Context, id string) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	// DEL of a missing key is a no-op in Redis, which gives idempotence.
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (s *RedisStore) Touch(ctx context.Context, id string, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrSessionExpired
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()

	ok, err := s.client.Expire(ctx, s.key(id), ttl).Result()
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}
