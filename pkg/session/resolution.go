package session

// State classifies the outcome of resolving a request's session.
type State uint8

const (
	// StateAbsent means no usable session: missing, forged, or corrupt
	// token, an expired or destroyed record, or an unreachable store.
	StateAbsent State = iota

	// StateValid means a live record was found for a correctly signed token.
	StateValid
)

// Resolution is the request-scoped view of a session. It is rebuilt on every
// request and never persisted. Clients only ever observe the two State
// values; the finer-grained cause stays server-side for diagnostics.
type Resolution struct {
	State   State
	Session *Session

	cause error
}

func absent(cause error) Resolution {
	return Resolution{State: StateAbsent, cause: cause}
}

// Valid reports whether a live session record was resolved.
func (r Resolution) Valid() bool {
	return r.State == StateValid && r.Session != nil
}

// Authenticated reports whether the resolved session carries a verified
// identity. This is the predicate the authentication gate consults.
func (r Resolution) Authenticated() bool {
	return r.Valid() && r.Session.IsAuthenticated()
}

// Cause returns why the resolution is Absent: ErrNoToken, token.ErrInvalidToken,
// ErrSessionNotFound, ErrSessionExpired, or ErrStoreUnavailable. It is nil for
// valid resolutions. For logging only — never expose it to clients.
func (r Resolution) Cause() error {
	return r.cause
}
