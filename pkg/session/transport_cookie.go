package session

import (
	"errors"
	"net/http"
	"time"
)

// CookieTransport implements Transport with an HTTP cookie. The cookie is
// always HttpOnly and scoped to "/"; Secure and SameSite follow the
// environment configuration.
type CookieTransport struct {
	name     string
	secure   bool
	sameSite http.SameSite
}

// NewCookieTransport creates a cookie-based transport.
func NewCookieTransport(name string, secure bool, sameSite http.SameSite) *CookieTransport {
	if sameSite == 0 {
		sameSite = http.SameSiteLaxMode
	}
	return &CookieTransport{
		name:     name,
		secure:   secure,
		sameSite: sameSite,
	}
}

func (t *CookieTransport) GetToken(r *http.Request) (string, error) {
	cookie, err := r.Cookie(t.name)
	if err != nil || cookie.Value == "" {
		if err != nil && !errors.Is(err, http.ErrNoCookie) {
			return "", errors.Join(ErrNoToken, err)
		}
		return "", ErrNoToken
	}
	return cookie.Value, nil
}

func (t *CookieTransport) SetToken(w http.ResponseWriter, token string, ttl time.Duration) error {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: t.sameSite,
	})
	return nil
}

func (t *CookieTransport) ClearToken(w http.ResponseWriter) error {
	http.SetCookie(w, &http.Cookie{
		Name:     t.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   t.secure,
		SameSite: t.sameSite,
	})
	return nil
}
