package otp

import (
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// OTP is the contract for TOTP operations.
type OTP interface {
	// Generate creates a shared secret and provisioning URI for accountName.
	Generate(accountName string) (secret string, uri string, err error)
	// Validate reports whether code is valid for secret at the given time.
	Validate(code, secret string, at time.Time) bool
	// GenerateCode derives the code for secret at the given time.
	GenerateCode(secret string, at time.Time) (string, error)
}

// TOTP implements OTP with the time-based algorithm.
type TOTP struct {
	issuer string
	period uint
	skew   uint
	digits otp.Digits
}

// NewTOTP constructs a TOTP with guarded defaults: 6 digits, a 30-second
// period, and a skew of one step each direction.
func NewTOTP(issuer string, period, skew uint, digits otp.Digits) *TOTP {
	if digits != otp.DigitsSix && digits != otp.DigitsEight {
		digits = otp.DigitsSix
	}
	if period == 0 {
		period = 30
	}
	if skew == 0 {
		skew = 1
	}

	return &TOTP{issuer: issuer, period: period, skew: skew, digits: digits}
}

// Generate creates a 20-byte secret and its provisioning URI. The secret in
// the URI is base32 per RFC 6238 so standard authenticator apps can scan it.
func (t *TOTP) Generate(accountName string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      t.issuer,
		AccountName: accountName,
		Period:      t.period,
		SecretSize:  20, // 160 bits, RFC 4226 minimum
		Digits:      t.digits,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", err
	}

	return key.Secret(), key.URL(), nil
}

// Validate checks code against secret at the given time, tolerating one time
// step of drift each direction. Malformed codes simply fail validation.
func (t *TOTP) Validate(code, secret string, at time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, at, totp.ValidateOpts{
		Period:    t.period,
		Skew:      t.skew,
		Digits:    t.digits,
		Algorithm: otp.AlgorithmSHA1,
	})

	return ok && err == nil
}

// GenerateCode derives the code for secret at the given time.
func (t *TOTP) GenerateCode(secret string, at time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, at, totp.ValidateOpts{
		Period:    t.period,
		Skew:      t.skew,
		Digits:    t.digits,
		Algorithm: otp.AlgorithmSHA1,
	})
}
