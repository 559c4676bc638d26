package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// Policy configures one fixed window.
type Policy struct {
	// Window is the length of the counting window.
	Window time.Duration
	// MaxRequests is the number of requests allowed per window.
	MaxRequests int
}

// Preset policies used by the public intake and auth endpoints. Overridable
// through configuration at wiring time.
var (
	// PolicyBooking throttles booking submissions.
	PolicyBooking = Policy{Window: time.Hour, MaxRequests: 3}
	// PolicyAuth throttles authentication attempts.
	PolicyAuth = Policy{Window: 15 * time.Minute, MaxRequests: 5}
	// PolicyAPI is the general API throttle.
	PolicyAPI = Policy{Window: time.Minute, MaxRequests: 30}
)

// Result is the outcome of one admission check.
type Result struct {
	// Allowed reports whether the request may proceed.
	Allowed bool
	// Remaining is the number of requests left in the current window.
	Remaining int
	// ResetTime is when the current window ends.
	ResetTime time.Time
}

// Record is the per-key window state held by a store.
type Record struct {
	// Count is the number of requests admitted in the current window.
	Count int
	// ResetTime is when the current window ends.
	ResetTime time.Time
}

// Store applies one fixed-window admission check for a key.
//
// The check-and-increment must be atomic with respect to concurrent calls for
// the same key. A request arriving at the limit is rejected without
// incrementing, so retried abuse cannot grow the stored count unboundedly.
type Store interface {
	Allow(ctx context.Context, key string, p Policy) (Result, error)
	Close() error
}

// Limiter answers admission checks against a primary store, degrading to an
// in-memory fallback when the primary fails.
type Limiter struct {
	primary  Store
	fallback *Memory
}

// New constructs a Limiter. fallback may be nil when primary is already the
// in-memory store.
func New(primary Store, fallback *Memory) *Limiter {
	return &Limiter{primary: primary, fallback: fallback}
}

// Allow runs the admission check for key under p. It never fails the caller:
// storage errors are logged and the check degrades to the fallback store,
// and finally to fail-open.
func (l *Limiter) Allow(ctx context.Context, key string, p Policy) Result {
	res, err := l.primary.Allow(ctx, key, p)
	if err == nil {
		return res
	}

	slog.WarnContext(ctx, "rate limit store unavailable, using fallback", "key", key, "error", err)

	if l.fallback != nil {
		res, err = l.fallback.Allow(ctx, key, p)
		if err == nil {
			return res
		}
		slog.WarnContext(ctx, "rate limit fallback failed, allowing request", "key", key, "error", err)
	}

	// Fail-open: a broken limiter must not become an outage.
	return Result{Allowed: true, Remaining: 0, ResetTime: time.Now().Add(p.Window)}
}

// Close releases both stores.
func (l *Limiter) Close() error {
	err := l.primary.Close()
	if l.fallback != nil {
		if ferr := l.fallback.Close(); err == nil {
			err = ferr
		}
	}

	return err
}
