package otp

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	libotp "github.com/pquerna/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTOTPGenerate_SecretAndURI(t *testing.T) {
	engine := NewTOTP("SiteGate", 30, 1, libotp.DigitsSix)

	secret, uri, err := engine.Generate("admin@example.com")
	require.NoError(t, err)

	// 20 random bytes render as 32 base32 characters.
	assert.Len(t, secret, 32)
	assert.Regexp(t, regexp.MustCompile(`^[A-Z2-7]+$`), secret)

	assert.True(t, strings.HasPrefix(uri, "otpauth://totp/"))
	assert.Contains(t, uri, "issuer=SiteGate")
	assert.Contains(t, uri, "secret="+secret)
	assert.Contains(t, uri, "admin%40example.com")
}

func TestTOTPValidate_SkewTolerance(t *testing.T) {
	engine := NewTOTP("SiteGate", 30, 1, libotp.DigitsSix)

	secret, _, err := engine.Generate("admin@example.com")
	require.NoError(t, err)

	now := time.Date(2026, 3, 14, 9, 0, 15, 0, time.UTC)

	tests := []struct {
		name   string
		offset time.Duration
		want   bool
	}{
		{name: "current step", offset: 0, want: true},
		{name: "one step behind", offset: -30 * time.Second, want: true},
		{name: "one step ahead", offset: 30 * time.Second, want: true},
		{name: "two steps behind", offset: -60 * time.Second, want: false},
		{name: "two steps ahead", offset: 60 * time.Second, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, err := engine.GenerateCode(secret, now.Add(tc.offset))
			require.NoError(t, err)

			assert.Equal(t, tc.want, engine.Validate(code, secret, now))
		})
	}
}

func TestTOTPValidate_RejectsMalformedInput(t *testing.T) {
	engine := NewTOTP("SiteGate", 30, 1, libotp.DigitsSix)

	secret, _, err := engine.Generate("admin@example.com")
	require.NoError(t, err)

	now := time.Now()
	assert.False(t, engine.Validate("", secret, now))
	assert.False(t, engine.Validate("12345", secret, now))
	assert.False(t, engine.Validate("abcdef", secret, now))
}

func TestNumericCode_FormatAndRange(t *testing.T) {
	gen := NewNumericCode()
	re := regexp.MustCompile(`^\d{6}$`)

	for range 200 {
		code, err := gen.Generate()
		require.NoError(t, err)
		require.Regexp(t, re, code)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}
