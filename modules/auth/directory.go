package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/sessionkit/sessionkit/pkg/session"
)

// Account is a seed record for the static directory. Password is the
// plaintext seed value; it is hashed at construction and never retained.
type Account struct {
	ID       string
	Username string
	Password string
}

type staticUser struct {
	id   string
	hash []byte
}

// StaticDirectory is a fixed, in-memory credential directory. It implements
// session.Directory and is immutable after construction, so it is safe for
// concurrent use without locking.
type StaticDirectory struct {
	users map[string]staticUser
	// dummyHash is compared against when the username is unknown, so the
	// unknown-user and wrong-password paths cost the same.
	dummyHash []byte
}

// DirectoryOption configures a StaticDirectory.
type DirectoryOption func(*directoryOptions)

type directoryOptions struct {
	bcryptCost int
}

// WithBcryptCost overrides the bcrypt cost used to hash seed passwords.
// Useful in tests, where bcrypt.MinCost keeps construction fast.
func WithBcryptCost(cost int) DirectoryOption {
	return func(o *directoryOptions) { o.bcryptCost = cost }
}

// NewStaticDirectory builds a directory from seed accounts, hashing every
// password with bcrypt.
func NewStaticDirectory(accounts []Account, opts ...DirectoryOption) (*StaticDirectory, error) {
	if len(accounts) == 0 {
		return nil, ErrNoAccounts
	}

	options := directoryOptions{bcryptCost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(&options)
	}

	users := make(map[string]staticUser, len(accounts))
	for _, acc := range accounts {
		if acc.ID == "" || acc.Username == "" || acc.Password == "" {
			return nil, ErrInvalidAccount
		}
		if _, exists := users[acc.Username]; exists {
			return nil, errors.Join(ErrDuplicateUsername, errors.New(acc.Username))
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(acc.Password), options.bcryptCost)
		if err != nil {
			return nil, errors.Join(ErrHashPassword, err)
		}
		users[acc.Username] = staticUser{id: acc.ID, hash: hash}
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte("static-directory-dummy"), options.bcryptCost)
	if err != nil {
		return nil, errors.Join(ErrHashPassword, err)
	}

	return &StaticDirectory{users: users, dummyHash: dummyHash}, nil
}

// Authenticate checks the credentials against the seed accounts. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (d *StaticDirectory) Authenticate(_ context.Context, username, password string) (session.User, error) {
	user, ok := d.users[username]
	if !ok {
		// Burn a comparison anyway to keep response timing uniform.
		_ = bcrypt.CompareHashAndPassword(d.dummyHash, []byte(password))
		return session.User{}, session.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(user.hash, []byte(password)); err != nil {
		return session.User{}, session.ErrInvalidCredentials
	}

	return session.User{ID: user.id, Username: username}, nil
}
