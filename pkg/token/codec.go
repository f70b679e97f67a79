package token

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	// idBytes is the entropy of a session id. 32 bytes = 256 bits, well above
	// the 128-bit floor for unguessable identifiers.
	idBytes = 32

	minSecretLength = 32
)

// Codec issues and verifies signed session identifiers.
type Codec struct {
	secrets []string
}

// Config allows the codec to be built from environment variables. Secrets is
// a comma-separated list; the first entry signs, all entries verify.
type Config struct {
	Secrets string `env:"SESSION_SECRETS,required"`
}

// NewFromConfig creates a Codec from the provided Config.
func NewFromConfig(cfg Config) (*Codec, error) {
	parts := strings.Split(cfg.Secrets, ",")
	secrets := make([]string, 0, len(parts))
	for _, s := range parts {
		if s = strings.TrimSpace(s); s != "" {
			secrets = append(secrets, s)
		}
	}
	return New(secrets)
}

// New creates a Codec from the given secrets. At least one secret of 32+
// characters is required.
func New(secrets []string) (*Codec, error) {
	clean := make([]string, 0, len(secrets))
	for _, s := range secrets {
		if s != "" {
			clean = append(clean, s)
		}
	}
	if len(clean) == 0 {
		return nil, ErrNoSecret
	}
	for i, s := range clean {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
	}
	return &Codec{secrets: clean}, nil
}

// Issue mints a fresh session id and its signed cookie encoding. Ids are
// independent random values; no output is predictable from previous ones.
func (c *Codec) Issue() (id, cookieValue string, err error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", errors.Join(ErrGenerateID, err)
	}

	id = base64.RawURLEncoding.EncodeToString(b)
	return id, id + "." + c.sign(id, c.secrets[0]), nil
}

// Verify extracts the session id from a signed cookie value. Malformed
// structure, unknown signatures, and tampered ids all return ErrInvalidToken
// with no further detail.
func (c *Codec) Verify(cookieValue string) (string, error) {
	id, sig, ok := strings.Cut(cookieValue, ".")
	if !ok || id == "" || sig == "" {
		return "", ErrInvalidToken
	}

	// Try all secrets so tokens signed under a rotated-out key stay valid.
	for _, secret := range c.secrets {
		expected := c.sign(id, secret)
		if subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) == 1 {
			return id, nil
		}
	}

	return "", ErrInvalidToken
}

func (c *Codec) sign(id, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(id))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
