package hash

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SHA256 is an unkeyed one-way digest, hex-encoded (64 characters).
//
// It is used for backup recovery codes: the codes themselves carry enough
// entropy that a salt or work factor buys nothing, and the digest must be
// deterministic so a candidate code can be matched against the stored rows.
// Verification still compares in constant time out of caution.
type SHA256 struct{}

// NewSHA256 returns a SHA-256 hasher.
func NewSHA256() *SHA256 {
	return &SHA256{}
}

// Hash returns the hex-encoded SHA-256 of str.
func (s *SHA256) Hash(str string) ([]byte, error) {
	return s.sum(str), nil
}

// Verify reports whether str hashes to hashed.
func (s *SHA256) Verify(hashed, str string) bool {
	return subtle.ConstantTimeCompare([]byte(hashed), s.sum(str)) == 1
}

func (s *SHA256) sum(str string) []byte {
	digest := sha256.Sum256([]byte(str))

	out := make([]byte, hex.EncodedLen(len(digest)))
	hex.Encode(out, digest[:])

	return out
}
