package session

import "net/http"

// unauthorizedBody is the single response every denied request receives.
// No session, forged cookie, expired record, and unauthenticated session all
// present identically; only server-side logs distinguish them.
const unauthorizedBody = `{"error":"unauthorized","authenticated":false}`

// Middleware resolves the session once per request and attaches the outcome
// to the request context for handlers downstream. It never blocks a request.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := m.Resolve(r.Context(), r)
		next.ServeHTTP(w, r.WithContext(WithResolution(r.Context(), res)))
	})
}

// RequireAuth is the authentication gate: it admits a request only when the
// resolved session is valid and authenticated, and denies everything else
// with one uniform 401 response.
func (m *Manager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, ok := lookupResolution(r.Context())
		if !ok {
			// Gate mounted without the resolving middleware; resolve here.
			res = m.Resolve(r.Context(), r)
			r = r.WithContext(WithResolution(r.Context(), res))
		}
		if !res.Authenticated() {
			writeUnauthorized(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(unauthorizedBody))
}
