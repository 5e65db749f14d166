package jwt

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-report-engine/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTService_InvalidExpiration(t *testing.T) {
	_, err := NewJWTService("secret", "soon")
	assert.Error(t, err)
}

func TestGenerateAccessToken(t *testing.T) {
	svc, err := NewJWTService("test-secret", "15m")
	require.NoError(t, err)

	token, expiresAt, err := svc.GenerateAccessToken("user-42", user.RoleFinanceStaff)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(15*time.Minute).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	userID, ok := decoded.Get(ClaimUserID)
	require.True(t, ok)
	assert.Equal(t, "user-42", userID)

	role, ok := decoded.Get(ClaimRole)
	require.True(t, ok)
	assert.Equal(t, string(user.RoleFinanceStaff), role)
}

func TestDecode_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService("secret-a", "1h")
	require.NoError(t, err)
	verifier, err := NewJWTService("secret-b", "1h")
	require.NoError(t, err)

	token, _, err := issuer.GenerateAccessToken("user-1", user.RoleAdmin)
	require.NoError(t, err)

	_, err = verifier.JWTAuth().Decode(token)
	assert.Error(t, err)
}
