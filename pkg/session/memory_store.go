package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store with an in-process map. It is intended for
// tests and cookie-only development; unlike Redis it must sweep expired
// records itself.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ticker   *time.Ticker
	done     chan struct{}
	closed   sync.Once
}

// NewMemoryStore creates an in-memory session store. A positive
// cleanupInterval starts a background sweep of expired records.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	store := &MemoryStore{
		sessions: make(map[string]*Session),
		done:     make(chan struct{}),
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

func (m *MemoryStore) Create(ctx context.Context, sess *Session) error {
	return m.write(sess)
}

func (m *MemoryStore) Save(ctx context.Context, sess *Session) error {
	return m.write(sess)
}

func (m *MemoryStore) write(sess *Session) error {
	if !sess.valid() {
		return ErrInvalidSession
	}
	if sess.TTL() <= 0 {
		return ErrSessionExpired
	}

	record := *sess

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = &record
	return nil
}

func (m *MemoryStore) Load(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	sess, exists := m.sessions[id]
	m.mu.RUnlock()

	if !exists {
		return nil, ErrSessionNotFound
	}

	if sess.IsExpired() {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, ErrSessionNotFound
	}

	record := *sess
	return &record, nil
}

func (m *MemoryStore) Destroy(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemoryStore) Touch(ctx context.Context, id string, ttl time.Duration) error {
	if ttl <= 0 {
		return ErrSessionExpired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	sess, exists := m.sessions[id]
	if !exists || sess.IsExpired() {
		return ErrSessionNotFound
	}

	sess.ExpiresAt = time.Now().Add(ttl)
	return nil
}

// Len reports the number of live records; expired but unswept records count.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the cleanup loop. Safe to call repeatedly.
func (m *MemoryStore) Close() error {
	m.closed.Do(func() {
		if m.ticker != nil {
			m.ticker.Stop()
		}
		close(m.done)
	})
	return nil
}

func (m *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-m.ticker.C:
			m.deleteExpired()
		case <-m.done:
			return
		}
	}
}

func (m *MemoryStore) deleteExpired() {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()
	for id, sess := range m.sessions {
		if now.After(sess.ExpiresAt) {
			delete(m.sessions, id)
		}
	}
}
