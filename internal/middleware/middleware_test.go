package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute, testLogger())

	for i := 0; i < 3; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "attempt %d should be allowed", i+1)
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	// Other clients are unaffected.
	assert.True(t, rl.Allow("10.0.0.2"))

	rl.Reset("10.0.0.1")
	assert.True(t, rl.Allow("10.0.0.1"))
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute, testLogger())
	mw := NewRateLimitMiddleware(rl, testLogger())

	handler := mw.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/employees/login", nil)
	req.RemoteAddr = "10.0.0.9:51234"
	handler.ServeHTTP(first, req)
	require.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)
	require.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.JSONEq(t, `{"message":"Too many requests. Please try again later."}`, second.Body.String())
}

func TestGetClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:1234"
	assert.Equal(t, "127.0.0.1", getClientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	assert.Equal(t, "203.0.113.7", getClientIP(req))
}

func TestSanitizePathRedactsSecrets(t *testing.T) {
	assert.Equal(t, "/api/v1/safety-requests", sanitizePath("/api/v1/safety-requests", ""))
	assert.Equal(t,
		"/login?password=[REDACTED]&next=home",
		sanitizePath("/login", "password=hunter2&next=home"),
	)
}

func TestSecurityHeaders(t *testing.T) {
	mw := NewSecurityHeadersMiddleware(true)
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.NotEmpty(t, rec.Header().Get("Strict-Transport-Security"))
}
