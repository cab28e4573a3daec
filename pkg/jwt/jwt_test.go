package jwt

import (
	"testing"
	"time"

	"thoughts-system/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(secret string, expire time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:     secret,
		ExpireTime: expire,
		Issuer:     "thoughts-system",
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	svc := newTestService("test-secret", time.Hour)

	token, err := svc.GenerateToken("42", map[string]interface{}{"username": "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "alice", claims.Data["username"])
	assert.Equal(t, "thoughts-system", claims.Issuer)
}

func TestGenerateTokenRequiresUserID(t *testing.T) {
	svc := newTestService("test-secret", time.Hour)

	_, err := svc.GenerateToken("", nil)
	assert.Error(t, err)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	svc := newTestService("test-secret", time.Hour)
	other := newTestService("other-secret", time.Hour)

	token, err := svc.GenerateToken("42", nil)
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateExpiredToken(t *testing.T) {
	svc := newTestService("test-secret", -time.Minute)

	token, err := svc.GenerateToken("42", nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateEmptyToken(t *testing.T) {
	svc := newTestService("test-secret", time.Hour)

	_, err := svc.ValidateToken("")
	assert.Error(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
