package session

import "errors"

var (
	// ErrNoToken indicates the request carried no session token.
	ErrNoToken = errors.New("session.no_token")

	// ErrSessionNotFound indicates no record exists for the given id.
	ErrSessionNotFound = errors.New("session.not_found")

	// ErrSessionExpired indicates the record exists but has passed its expiry.
	ErrSessionExpired = errors.New("session.expired")

	// ErrStoreUnavailable indicates a transient store fault. Read paths treat
	// it as unauthenticated; write paths surface it as a retryable failure.
	ErrStoreUnavailable = errors.New("session.store_unavailable")

	// ErrInvalidCredentials is the single, deliberately vague login failure.
	ErrInvalidCredentials = errors.New("session.invalid_credentials")

	// ErrNotAuthenticated indicates an operation that requires a valid
	// session was attempted without one.
	ErrNotAuthenticated = errors.New("session.not_authenticated")

	// ErrInvalidSession indicates a structurally invalid session record.
	ErrInvalidSession = errors.New("session.invalid_record")

	// ErrNoDirectory indicates Login was called on a Manager built without a
	// user directory.
	ErrNoDirectory = errors.New("session.no_directory")
)
