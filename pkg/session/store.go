package session

import (
	"context"
	"time"
)

// Store defines how session records are persisted. Implementations must
// provide atomic per-key operations and enforce expiry through their own TTL
// mechanism; no sweep loop is required of callers.
type Store interface {
	// Create stores a new record under its id, overwriting any existing
	// record (ids arrive fresh from the codec).
	Create(ctx context.Context, s *Session) error

	// Load returns the record if present and unexpired. A missing or expired
	// record returns ErrSessionNotFound; this is an expected outcome, not a
	// fault.
	Load(ctx context.Context, id string) (*Session, error)

	// Save writes through an updated record, refreshing the backend TTL to
	// the record's remaining lifetime.
	Save(ctx context.Context, s *Session) error

	// Destroy removes the record. Deleting an absent key is success; logout
	// must be idempotent.
	Destroy(ctx context.Context, id string) error

	// Touch extends the backend TTL without rewriting the record. Only used
	// when sliding expiry is enabled.
	Touch(ctx context.Context, id string, ttl time.Duration) error
}
