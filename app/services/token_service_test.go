package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHMACTokenService(t *testing.T, accessTTL, refreshTTL time.Duration, secret string) TokenService {
	t.Helper()
	svc, err := NewTokenService(accessTTL, refreshTTL, "carbon-backend", "admin-api", false, "", "", secret)
	require.NoError(t, err)
	return svc
}

func TestNewTokenService(t *testing.T) {
	t.Run("SecretRequired", func(t *testing.T) {
		_, err := NewTokenService(time.Minute, time.Hour, "carbon-backend", "admin-api", false, "", "", "")
		assert.Error(t, err)
	})

	t.Run("RSAKeysRequired", func(t *testing.T) {
		_, err := NewTokenService(time.Minute, time.Hour, "carbon-backend", "admin-api", true, "", "", "")
		assert.Error(t, err)
	})
}

func TestGenerateAdminTokens(t *testing.T) {
	svc := newHMACTokenService(t, 15*time.Minute, 24*time.Hour, "unit-test-secret-0123456789abcdef")

	access, refresh, err := svc.GenerateAdminTokens(7)
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	t.Run("AccessClaims", func(t *testing.T) {
		claims, err := svc.ValidateAdminToken(access)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.AdminID)
		assert.Equal(t, "access", claims.TokenType)
		assert.NotEmpty(t, claims.TokenID)
		assert.True(t, claims.ExpiresAt.After(claims.IssuedAt))
	})

	t.Run("RefreshClaims", func(t *testing.T) {
		claims, err := svc.ValidateAdminToken(refresh)
		require.NoError(t, err)
		assert.Equal(t, uint(7), claims.AdminID)
		assert.Equal(t, "refresh", claims.TokenType)
	})

	t.Run("UniqueTokenIDs", func(t *testing.T) {
		accessClaims, err := svc.ValidateAdminToken(access)
		require.NoError(t, err)
		refreshClaims, err := svc.ValidateAdminToken(refresh)
		require.NoError(t, err)
		assert.NotEqual(t, accessClaims.TokenID, refreshClaims.TokenID)
	})
}

func TestValidateAdminToken(t *testing.T) {
	svc := newHMACTokenService(t, 15*time.Minute, 24*time.Hour, "unit-test-secret-0123456789abcdef")

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ValidateAdminToken("not-a-token")
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("WrongKey", func(t *testing.T) {
		other := newHMACTokenService(t, 15*time.Minute, 24*time.Hour, "a-completely-different-secret-key")
		access, _, err := other.GenerateAdminTokens(7)
		require.NoError(t, err)
		_, err = svc.ValidateAdminToken(access)
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("Expired", func(t *testing.T) {
		expired := newHMACTokenService(t, -time.Minute, -time.Minute, "unit-test-secret-0123456789abcdef")
		access, _, err := expired.GenerateAdminTokens(7)
		require.NoError(t, err)
		_, err = svc.ValidateAdminToken(access)
		assert.ErrorIs(t, err, ErrTokenExpired)
	})
}
