package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HMACSHA256 digests strings with a keyed HMAC-SHA256, hex-encoded. Used for
// challenge and session tokens where determinism is needed for lookups.
type HMACSHA256 struct {
	key []byte
}

// NewHMACSHA256 constructs an HMAC hasher keyed by secret.
func NewHMACSHA256(secret string) *HMACSHA256 {
	return &HMACSHA256{key: []byte(secret)}
}

// Hash returns the hex-encoded HMAC-SHA256 of str.
func (h *HMACSHA256) Hash(str string) ([]byte, error) {
	return h.sum(str), nil
}

// Verify reports whether str hashes to hashed, in constant time.
func (h *HMACSHA256) Verify(hashed, str string) bool {
	return subtle.ConstantTimeCompare([]byte(hashed), h.sum(str)) == 1
}

func (h *HMACSHA256) sum(str string) []byte {
	mac := hmac.New(sha256.New, h.key)
	mac.Write([]byte(str))
	digest := mac.Sum(nil)

	out := make([]byte, hex.EncodedLen(len(digest)))
	hex.Encode(out, digest)

	return out
}
