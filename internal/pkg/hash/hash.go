package hash

// Hash is a one-way digest with verification.
type Hash interface {
	// Hash digests the plaintext.
	Hash(str string) ([]byte, error)
	// Verify reports whether plaintext str matches the stored digest.
	Verify(hashed, str string) bool
}
