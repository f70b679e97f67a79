package auth

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sessionkit/sessionkit/pkg/logger"
	"github.com/sessionkit/sessionkit/pkg/session"
)

// maxLoginBodySize bounds the login request body; credentials never
// legitimately approach this.
const maxLoginBodySize = 1 << 16

// Service wires the session manager to the HTTP API.
type Service struct {
	sessions *session.Manager
	log      *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithServiceLogger sets the service logger.
func WithServiceLogger(log *slog.Logger) ServiceOption {
	return func(s *Service) { s.log = log }
}

// NewService creates the authentication HTTP service.
func NewService(sessions *session.Manager, opts ...ServiceOption) *Service {
	s := &Service{sessions: sessions}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Router returns the module's routes, with the session middleware applied so
// every handler sees a resolved session.
//
//	POST /login          authenticate and set the session cookie
//	GET  /check-session  report session state, never requires auth
//	GET  /profile        protected
//	GET  /secret-data    protected
//	POST /logout         destroy the session and clear the cookie
func (s *Service) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(s.sessions.Middleware)

	r.Post("/login", s.handleLogin)
	r.Get("/check-session", s.handleCheckSession)
	r.Post("/logout", s.handleLogout)

	r.Group(func(protected chi.Router) {
		protected.Use(s.sessions.RequireAuth)
		protected.Get("/profile", s.handleProfile)
		protected.Get("/secret-data", s.handleSecretData)
	})

	return r
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	Success bool         `json:"success"`
	User    *userPayload `json:"user,omitempty"`
	Message string       `json:"message,omitempty"`
}

func (s *Service) handleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLoginBodySize)

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, loginResponse{
			Success: false,
			Message: "username and password are required",
		})
		return
	}

	sess, err := s.sessions.Login(r.Context(), w, req.Username, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, loginResponse{
			Success: true,
			User:    &userPayload{ID: sess.UserID, Username: sess.Username},
		})
	case errors.Is(err, session.ErrStoreUnavailable):
		// Distinct from bad credentials: the client should retry, not
		// re-prompt for a password.
		s.log.ErrorContext(r.Context(), "login failed, session store unavailable", logger.Error(err))
		writeJSON(w, http.StatusServiceUnavailable, loginResponse{
			Success: false,
			Message: "service temporarily unavailable, please retry",
		})
	case errors.Is(err, session.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, loginResponse{
			Success: false,
			Message: "incorrect username or password",
		})
	default:
		s.log.ErrorContext(r.Context(), "login failed", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, loginResponse{
			Success: false,
			Message: "internal server error",
		})
	}
}

type checkSessionResponse struct {
	Authenticated bool    `json:"authenticated"`
	Username      *string `json:"username"`
	SessionID     string  `json:"sessionId"`
}

// handleCheckSession reports session state without requiring auth, so the
// frontend can probe on page load. Anonymous requests get authenticated:false
// with a null username and an empty session id; no session is allocated for
// them.
func (s *Service) handleCheckSession(w http.ResponseWriter, r *http.Request) {
	res := session.ResolutionFromContext(r.Context())

	resp := checkSessionResponse{}
	if res.Authenticated() {
		resp.Authenticated = true
		resp.Username = &res.Session.Username
		resp.SessionID = res.Session.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Service) handleProfile(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		// RequireAuth guards this route; reaching here without a session is a
		// wiring bug, not a client error.
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error": "unauthorized", "authenticated": false,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"user": userPayload{ID: sess.UserID, Username: sess.Username},
	})
}

func (s *Service) handleSecretData(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"error": "unauthorized", "authenticated": false,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":     "the launch code is 0000",
		"username": sess.Username,
	})
}

// handleLogout always reports success once the cookie is cleared; a failed
// server-side delete is logged and retried by the store's TTL anyway.
func (s *Service) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Logout(r.Context(), w, r); err != nil {
		s.log.ErrorContext(r.Context(), "logout session destroy failed", logger.Error(err))
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
