package mfa

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
)

const aesKeyLen = 32

var (
	// ErrInvalidKeyLength indicates the key is not 32 bytes (AES-256).
	ErrInvalidKeyLength = errors.New("mfa: key must be 32 bytes")
	// ErrCiphertextTooShort indicates a truncated ciphertext.
	ErrCiphertextTooShort = errors.New("mfa: ciphertext too short")
	// ErrDecryptFailed indicates authentication or decryption failure.
	ErrDecryptFailed = errors.New("mfa: decrypt failed")
)

// AESGCM implements Encryptor with AES-256-GCM. The scope is bound as
// additional authenticated data, and the nonce is prepended to the output.
type AESGCM struct {
	aead cipher.AEAD
}

// NewAESGCM constructs an AESGCM encryptor from a 32-byte key.
func NewAESGCM(key []byte) (*AESGCM, error) {
	if len(key) != aesKeyLen {
		return nil, ErrInvalidKeyLength
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("mfa: aes init: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("mfa: gcm init: %w", err)
	}

	return &AESGCM{aead: aead}, nil
}

// Encrypt seals plaintext under scope. Output layout: nonce || ciphertext+tag.
func (e *AESGCM) Encrypt(plaintext []byte, scope Scope) ([]byte, error) {
	if len(plaintext) == 0 {
		return nil, errors.New("mfa: plaintext is empty")
	}

	nonce := make([]byte, e.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("mfa: nonce generation: %w", err)
	}

	return e.aead.Seal(nonce, nonce, plaintext, scope.aad()), nil
}

// Decrypt opens ciphertext previously sealed under the same scope.
func (e *AESGCM) Decrypt(ciphertext []byte, scope Scope) ([]byte, error) {
	if len(ciphertext) < e.aead.NonceSize() {
		return nil, ErrCiphertextTooShort
	}

	nonce, sealed := ciphertext[:e.aead.NonceSize()], ciphertext[e.aead.NonceSize():]

	plaintext, err := e.aead.Open(nil, nonce, sealed, scope.aad())
	if err != nil {
		return nil, ErrDecryptFailed
	}

	return plaintext, nil
}
