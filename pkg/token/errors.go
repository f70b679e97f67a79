package token

import "errors"

var (
	// ErrNoSecret indicates the codec was built without any signing secret.
	ErrNoSecret = errors.New("token.no_secret")

	// ErrSecretTooShort indicates a signing secret below the minimum length.
	ErrSecretTooShort = errors.New("token.secret_too_short")

	// ErrGenerateID indicates the system randomness source failed.
	ErrGenerateID = errors.New("token.generate_id_failed")

	// ErrInvalidToken covers every verification failure: malformed structure,
	// bad encoding, or a signature mismatch. Callers treat it as "no token".
	ErrInvalidToken = errors.New("token.invalid")
)
