package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hatembr/identity-api/internal/domain"
	"github.com/hatembr/identity-api/internal/service/auth"
)

const testSigningSecret = "test-signing-secret-with-32-chars!!"

func TestNewJWTService(t *testing.T) {
	t.Run("rejects short secrets", func(t *testing.T) {
		_, err := auth.NewJWTService("too-short", time.Hour)
		assert.Error(t, err)
	})

	t.Run("accepts a sufficiently long secret", func(t *testing.T) {
		_, err := auth.NewJWTService(testSigningSecret, time.Hour)
		assert.NoError(t, err)
	})
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc, err := auth.NewJWTService(testSigningSecret, time.Hour)
	require.NoError(t, err)

	cred := &domain.Credential{
		ID:       7,
		Username: "johndoe",
		Role:     domain.RoleAdmin,
		UserID:   3,
	}

	token, expiresAt, err := svc.GenerateToken(context.Background(), cred)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.CredentialID)
	assert.Equal(t, "johndoe", claims.Username)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestJWTService_ValidateToken(t *testing.T) {
	t.Run("expired token", func(t *testing.T) {
		// A negative lifetime puts the expiry well past the clock-skew leeway.
		svc, err := auth.NewJWTService(testSigningSecret, -3*time.Hour)
		require.NoError(t, err)

		token, _, err := svc.GenerateToken(context.Background(), &domain.Credential{
			ID: 7, Username: "johndoe", Role: domain.RoleUser,
		})
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, auth.ErrExpiredToken)
	})

	t.Run("token signed with a different key", func(t *testing.T) {
		issuer, err := auth.NewJWTService("another-signing-secret-with-32-ch!!", time.Hour)
		require.NoError(t, err)
		verifier, err := auth.NewJWTService(testSigningSecret, time.Hour)
		require.NoError(t, err)

		token, _, err := issuer.GenerateToken(context.Background(), &domain.Credential{
			ID: 7, Username: "johndoe", Role: domain.RoleUser,
		})
		require.NoError(t, err)

		_, err = verifier.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("garbage input", func(t *testing.T) {
		svc, err := auth.NewJWTService(testSigningSecret, time.Hour)
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), "not.a.token")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
