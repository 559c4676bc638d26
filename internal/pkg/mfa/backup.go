// Package mfa holds multi-factor helpers: backup recovery code generation and
// the at-rest encryption applied to stored TOTP secrets.
package mfa

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// BackupCodeCount is the number of recovery codes issued per enrollment.
const BackupCodeCount = 10

// BackupCodeGenerator produces single-use recovery codes.
type BackupCodeGenerator interface {
	// Generate returns a full set of unique codes.
	Generate() ([]string, error)
}

// BackupCode generates recovery codes as 8 uppercase hex characters drawn
// from 4 bytes of crypto/rand. The plaintext is shown to the user exactly
// once; only a digest is ever stored.
type BackupCode struct{}

// NewBackupCode returns a BackupCode generator.
func NewBackupCode() *BackupCode {
	return &BackupCode{}
}

// Generate returns BackupCodeCount unique codes.
func (BackupCode) Generate() ([]string, error) {
	out := make([]string, 0, BackupCodeCount)
	seen := make(map[string]struct{}, BackupCodeCount)

	for len(out) < BackupCodeCount {
		var raw [4]byte
		if _, err := rand.Read(raw[:]); err != nil {
			return nil, fmt.Errorf("mfa: backup code generation: %w", err)
		}

		code := strings.ToUpper(hex.EncodeToString(raw[:]))

		// A 1-in-4-billion collision, but a duplicate code would be two
		// recovery attempts for the price of one.
		if _, dup := seen[code]; dup {
			continue
		}

		seen[code] = struct{}{}
		out = append(out, code)
	}

	return out, nil
}
