package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geognosis/orecast/internal/api/middleware"
	"github.com/geognosis/orecast/internal/testutil"
)

func guardedHandler(sessions *testutil.MemorySessionRepository) http.Handler {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return middleware.AuthMiddleware(sessions)(next)
}

func TestAuthMiddleware_BlocksWhenLoggedOut(t *testing.T) {
	sessions := testutil.NewMemorySessionRepository()
	handler := guardedHandler(sessions)

	req := httptest.NewRequest("GET", "/api/projects", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "/login", response["redirect"])
}

func TestAuthMiddleware_AllowsWhenLoggedIn(t *testing.T) {
	sessions := testutil.NewMemorySessionRepository()
	sessions.LoggedIn = true
	handler := guardedHandler(sessions)

	req := httptest.NewRequest("GET", "/api/projects", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddleware_ExemptPaths(t *testing.T) {
	sessions := testutil.NewMemorySessionRepository()
	handler := guardedHandler(sessions)

	for _, path := range []string{"/api/auth/login", "/api/auth/session", "/health"} {
		req := httptest.NewRequest("GET", path, nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, "path %s", path)
	}
}
