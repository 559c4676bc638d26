package router

import (
	"net/http"
	"strconv"

	"github.com/danargo/sitegate/internal/pkg/ratelimit"
)

const (
	// HeaderRateLimitRemaining reports how many requests remain in the window.
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	// HeaderRateLimitReset reports the unix second the window resets.
	HeaderRateLimitReset = "X-RateLimit-Reset"
)

// middlewareThrottle limits an endpoint per client IP. Keys are scoped by
// purpose so the same caller can hit differently-throttled endpoints without
// the windows bleeding into each other.
func middlewareThrottle(limiter *ratelimit.Limiter, purpose string, policy ratelimit.Policy) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			res := limiter.Allow(r.Context(), purpose+":"+r.RemoteAddr, policy)

			w.Header().Set(HeaderRateLimitRemaining, strconv.Itoa(res.Remaining))
			w.Header().Set(HeaderRateLimitReset, strconv.FormatInt(res.ResetTime.Unix(), 10))

			if !res.Allowed {
				w.Header().Set("Retry-After", strconv.FormatInt(res.ResetTime.Unix(), 10))
				writeJSON(w, errorResponse{Message: "Too many requests, please try again later"}, http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
