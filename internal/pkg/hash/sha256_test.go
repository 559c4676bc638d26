package hash

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSHA256_DeterministicHexDigest(t *testing.T) {
	h := NewSHA256()

	first, err := h.Hash("A1B2C3D4")
	require.NoError(t, err)
	second, err := h.Hash("A1B2C3D4")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), string(first))
}

func TestSHA256_Verify(t *testing.T) {
	h := NewSHA256()

	digest, err := h.Hash("A1B2C3D4")
	require.NoError(t, err)

	assert.True(t, h.Verify(string(digest), "A1B2C3D4"))
	assert.False(t, h.Verify(string(digest), "wrong"))
	assert.False(t, h.Verify(string(digest), ""))
}

func TestHMACSHA256_VerifyRequiresSameKey(t *testing.T) {
	a := NewHMACSHA256("key-a")
	b := NewHMACSHA256("key-b")

	digest, err := a.Hash("token")
	require.NoError(t, err)

	assert.True(t, a.Verify(string(digest), "token"))
	assert.False(t, b.Verify(string(digest), "token"))
	assert.Len(t, digest, 64)
}

func TestArgon2id_RoundTrip(t *testing.T) {
	h := NewArgon2id("pepper")

	digest, err := h.Hash("secret-password")
	require.NoError(t, err)

	assert.True(t, h.Verify(string(digest), "secret-password"))
	assert.False(t, h.Verify(string(digest), "other-password"))
	assert.False(t, NewArgon2id("other-pepper").Verify(string(digest), "secret-password"))
}

func TestBcrypt_RoundTrip(t *testing.T) {
	h := NewBcrypt(4, "pepper")

	digest, err := h.Hash("secret-password")
	require.NoError(t, err)

	assert.True(t, h.Verify(string(digest), "secret-password"))
	assert.False(t, h.Verify(string(digest), "other-password"))
}
