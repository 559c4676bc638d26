package hash

import (
	"golang.org/x/crypto/bcrypt"
)

// Bcrypt hashes passwords with bcrypt. Kept alongside Argon2id so the
// password hasher is a configuration choice, and so existing bcrypt digests
// keep verifying after a migration to argon2id.
type Bcrypt struct {
	cost   int
	pepper string
}

// NewBcrypt returns a Bcrypt hasher. A cost outside bcrypt's valid range
// falls back to the library default.
func NewBcrypt(cost int, pepper string) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &Bcrypt{cost: cost, pepper: pepper}
}

// Hash digests str.
func (b *Bcrypt) Hash(str string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(str+b.pepper), b.cost)
}

// Verify reports whether str matches the stored digest.
func (b *Bcrypt) Verify(hashed, str string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(str+b.pepper)) == nil
}
