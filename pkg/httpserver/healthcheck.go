package httpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sessionkit/sessionkit/pkg/logger"
)

// HealthCheckHandler returns a handler usable for both liveness and readiness
// probes.
//
//   - Liveness: with no dependency checks supplied it answers 200 "ALIVE".
//   - Readiness: with checks supplied it runs each one; all passing answers
//     200 "READY", any failure answers 500 "NOT_READY".
func HealthCheckHandler(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ALIVE"))
			return
		}

		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("READY"))
	}
}
