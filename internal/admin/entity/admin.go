// Package entity holds the admin domain model: back-office accounts, their
// second-factor material, and short-lived login challenges.
package entity

import (
	"time"

	"github.com/danargo/sitegate/internal/pkg/valueobject"
)

// Admin is a back-office account.
type Admin struct {
	ID       int64
	Email    string
	FullName string
	// Password is the configured hash of the login password.
	Password string
	// TOTPSecret is the AES-GCM ciphertext of the TOTP shared secret; empty
	// until enrollment is confirmed.
	TOTPSecret  []byte
	TOTPEnabled bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Challenge is a short-lived token gating a multi-step flow. Token holds the
// HMAC of the value handed to the client, never the value itself.
type Challenge struct {
	ID        int64
	AdminID   int64
	Token     string
	Purpose   ChallengePurpose
	Metadata  valueobject.JSONMap
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the challenge is past its deadline at now.
func (c Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// ChallengeAdmin is a challenge joined with its owning admin.
type ChallengeAdmin struct {
	ChallengeID       int64
	ChallengeMetadata valueobject.JSONMap
	ExpiresAt         time.Time
	AdminID           int64
	AdminEmail        string
	TOTPSecret        []byte
	TOTPEnabled       bool
}

// BackupCode is one stored recovery code digest. A row is deleted when its
// code is used, which is what makes the codes single-use.
type BackupCode struct {
	ID        int64
	AdminID   int64
	CodeHash  string
	CreatedAt time.Time
}
