package session

import (
	"time"
)

// Session is the authoritative server-side record of authentication state,
// keyed in the store by its codec-minted ID. The shape is fixed rather than
// an open field bag so the core invariant — an authenticated session always
// carries a user id and username — is enforced at construction.
type Session struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id,omitempty"`
	Username      string    `json:"username,omitempty"`
	Authenticated bool      `json:"authenticated"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// NewAuthenticated builds an authenticated session record expiring ttl from
// now. It rejects empty identity fields to uphold the record invariant.
func NewAuthenticated(id, userID, username string, ttl time.Duration) (*Session, error) {
	if id == "" || userID == "" || username == "" {
		return nil, ErrInvalidSession
	}
	now := time.Now()
	return &Session{
		ID:            id,
		UserID:        userID,
		Username:      username,
		Authenticated: true,
		CreatedAt:     now,
		ExpiresAt:     now.Add(ttl),
	}, nil
}

// IsAuthenticated reports whether the session carries a verified identity.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Authenticated
}

// IsExpired reports whether the session has passed its absolute expiry.
// Stores enforce expiry through their own TTL mechanism; this is a guard for
// records read in the window before the backend reclaims them.
func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

// TTL returns the remaining lifetime of the session. Zero or negative means
// expired.
func (s *Session) TTL() time.Duration {
	if s == nil {
		return 0
	}
	return time.Until(s.ExpiresAt)
}

// valid reports whether the record satisfies its structural invariant.
func (s *Session) valid() bool {
	if s == nil || s.ID == "" {
		return false
	}
	if s.Authenticated && (s.UserID == "" || s.Username == "") {
		return false
	}
	return true
}
