package signing

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSign_StableAcrossEqualPayloads(t *testing.T) {
	first, err := Sign(map[string]any{"b": 2, "a": 1}, "secret")
	require.NoError(t, err)
	second, err := Sign(map[string]any{"a": 1, "b": 2}, "secret")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{64}$`), first)
}

func TestVerify(t *testing.T) {
	payload := map[string]any{"event": "booking.created", "id": "bk_123"}

	sig, err := Sign(payload, "secret")
	require.NoError(t, err)

	assert.True(t, Verify(payload, sig, "secret"))

	tampered := map[string]any{"event": "booking.created", "id": "bk_124"}
	assert.False(t, Verify(tampered, sig, "secret"))

	assert.False(t, Verify(payload, sig, "other-secret"))
	assert.False(t, Verify(payload, "", "secret"))
}

func TestSign_RejectsUnserializablePayload(t *testing.T) {
	_, err := Sign(map[string]any{"bad": func() {}}, "secret")
	assert.Error(t, err)
}
