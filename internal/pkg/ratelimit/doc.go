// Package ratelimit implements fixed-window request rate limiting keyed by an
// opaque identifier (typically "<purpose>:<client-ip>").
//
// The algorithm counts requests per key inside a window that resets at fixed
// intervals. A burst of up to 2x the configured maximum can pass in a short
// span straddling a window boundary; this imprecision is inherent to the
// fixed-window approach and accepted here in exchange for O(1) state per key.
//
// Two stores are provided: an in-process map (no persistence, single process)
// and a Redis-backed store that performs the whole check-and-increment inside
// a Lua script so concurrent processes cannot race the counter. The Limiter
// selects a primary store at construction time and degrades to the in-memory
// fallback when the primary errors.
//
// Policy on storage failure is fail-open: the limiter exists to slow abuse,
// not to take the site down with it, so when no store can decide the request
// is allowed and a warning is logged.
package ratelimit
