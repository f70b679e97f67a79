package requestid_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sessionkit/sessionkit/pkg/requestid"
)

func TestMiddleware(t *testing.T) {
	var captured string
	handler := requestid.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = requestid.FromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("generates id when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, captured)
		_, err := uuid.Parse(captured)
		assert.NoError(t, err)
		assert.Equal(t, captured, w.Header().Get(requestid.Header))
	})

	t.Run("reuses valid client id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(requestid.Header, "client-id-42")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, "client-id-42", captured)
		assert.Equal(t, "client-id-42", w.Header().Get(requestid.Header))
	})

	t.Run("replaces malformed client id", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set(requestid.Header, "bad id\nwith newline")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.NotEqual(t, "bad id\nwith newline", captured)
		_, err := uuid.Parse(captured)
		assert.NoError(t, err)
	})
}
