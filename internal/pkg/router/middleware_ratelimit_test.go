package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danargo/sitegate/internal/pkg/ratelimit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareThrottle_RejectsAfterLimit(t *testing.T) {
	mem := ratelimit.NewMemory(ratelimit.WithSweepInterval(0))
	t.Cleanup(func() { _ = mem.Close() })

	limiter := ratelimit.New(mem, nil)
	policy := ratelimit.Policy{Window: time.Hour, MaxRequests: 2}

	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), middlewareThrottle(limiter, "contact", policy))

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/intake/contact", nil)
		req.RemoteAddr = "203.0.113.7"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	first := do()
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get(HeaderRateLimitRemaining))

	second := do()
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "0", second.Header().Get(HeaderRateLimitRemaining))

	third := do()
	require.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.NotEmpty(t, third.Header().Get("Retry-After"))
	assert.NotEmpty(t, third.Header().Get(HeaderRateLimitReset))
}

func TestMiddlewareThrottle_SeparatePurposes(t *testing.T) {
	mem := ratelimit.NewMemory(ratelimit.WithSweepInterval(0))
	t.Cleanup(func() { _ = mem.Close() })

	limiter := ratelimit.New(mem, nil)
	policy := ratelimit.Policy{Window: time.Hour, MaxRequests: 1}

	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	contact := Chain(okHandler, middlewareThrottle(limiter, "contact", policy))
	booking := Chain(okHandler, middlewareThrottle(limiter, "booking", policy))

	do := func(h http.Handler) int {
		req := httptest.NewRequest(http.MethodPost, "/submit", nil)
		req.RemoteAddr = "198.51.100.9"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	require.Equal(t, http.StatusOK, do(contact))
	require.Equal(t, http.StatusTooManyRequests, do(contact))

	// Exhausting one purpose must not consume the other's window.
	assert.Equal(t, http.StatusOK, do(booking))
}

func TestMiddlewareThrottle_NilLimiterPassesThrough(t *testing.T) {
	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}), middlewareThrottle(nil, "contact", ratelimit.PolicyAPI))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRealIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Forwarded-For", "203.0.113.50, 70.41.3.18")
	assert.Equal(t, "203.0.113.50", realIP(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	assert.Equal(t, "10.0.0.1", realIP(req))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	req.Header.Set("X-Real-IP", "not-an-ip")
	assert.Equal(t, "10.0.0.1", realIP(req))
}
