package auth

import "errors"

var (
	// ErrNoAccounts is returned when a static directory is built without any
	// seed accounts.
	ErrNoAccounts = errors.New("auth.no_accounts")

	// ErrInvalidAccount is returned for a seed account missing an id,
	// username, or password.
	ErrInvalidAccount = errors.New("auth.invalid_account")

	// ErrDuplicateUsername is returned when two seed accounts share a
	// username.
	ErrDuplicateUsername = errors.New("auth.duplicate_username")

	// ErrHashPassword is returned when hashing a seed password fails.
	ErrHashPassword = errors.New("auth.hash_password")
)
