package session

import "context"

// User is the identity a directory returns on a successful credential check.
type User struct {
	ID       string
	Username string
}

// Directory answers credential checks during login. Implementations must
// return ErrInvalidCredentials for any failed check without revealing which
// part of the credentials was wrong.
type Directory interface {
	Authenticate(ctx context.Context, username, password string) (User, error)
}
