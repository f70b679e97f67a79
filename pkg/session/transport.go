package session

import (
	"net/http"
	"time"
)

// Transport moves the signed session token between client and server. The
// client owns storage and retransmission; the server only reads the token
// from requests and writes it to responses.
type Transport interface {
	// GetToken extracts the signed token from the request. A request without
	// a token returns ErrNoToken.
	GetToken(r *http.Request) (string, error)

	// SetToken sends the signed token in the response with the given
	// client-side lifetime bound. The bound is advisory; authoritative expiry
	// lives in the store.
	SetToken(w http.ResponseWriter, token string, ttl time.Duration) error

	// ClearToken instructs the client to drop the token immediately.
	ClearToken(w http.ResponseWriter) error
}
