package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("correct-horse-battery")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse-battery", hash)

	assert.True(t, Verify("correct-horse-battery", hash))
	assert.False(t, Verify("wrong-password", hash))
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("same-input-pass")
	require.NoError(t, err)
	second, err := Hash("same-input-pass")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHashTokenIsDeterministic(t *testing.T) {
	a := HashToken("refresh-token-value")
	b := HashToken("refresh-token-value")
	c := HashToken("other-token")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}

func TestValidateLength(t *testing.T) {
	assert.False(t, Validate("short"))
	assert.True(t, Validate("eight-ch"))
}
