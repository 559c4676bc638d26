package mfa

import "fmt"

// Purpose scopes an encryption operation to its use.
type Purpose string

// PurposeOTPSeed marks ciphertexts holding TOTP shared secrets.
const PurposeOTPSeed Purpose = "otp-seed"

// Scope binds a ciphertext to its owner and purpose so a blob lifted from one
// row cannot be replayed on another.
type Scope struct {
	// AdminID is the owning admin account.
	AdminID int64
	// Purpose identifies what the plaintext is for.
	Purpose Purpose
}

func (s Scope) aad() []byte {
	return fmt.Appendf(nil, "admin:%d|purpose:%s", s.AdminID, s.Purpose)
}

// Encryptor encrypts and decrypts secrets at rest.
type Encryptor interface {
	Encrypt(plaintext []byte, scope Scope) ([]byte, error)
	Decrypt(ciphertext []byte, scope Scope) ([]byte, error)
}
