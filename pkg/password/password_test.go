package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", hash)

	assert.True(t, Verify("password123", hash))
	assert.False(t, Verify("wrong-password", hash))
	assert.False(t, Verify("password123", "not-a-bcrypt-hash"))
}

func TestHashIsSalted(t *testing.T) {
	h1, err := Hash("password123")
	require.NoError(t, err)
	h2, err := Hash("password123")
	require.NoError(t, err)

	// 每次哈希使用随机盐
	assert.NotEqual(t, h1, h2)
	assert.True(t, Verify("password123", h1))
	assert.True(t, Verify("password123", h2))
}
