// Package hash groups the one-way digest implementations used by the service:
// argon2id and bcrypt for passwords, HMAC-SHA256 for server-side tokens, and
// plain SHA-256 for backup recovery codes. All implementations satisfy the
// Hash interface so callers can be wired with whichever policy requires.
package hash
