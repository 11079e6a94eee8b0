package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "os-system/pkg/errors"
)

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := NewJWTService("segredo-de-teste", time.Hour, time.Hour*24, zap.NewNop())

	access, refresh, err := svc.GenerateTokens("u1", "admin", "Admin")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "Admin", claims.Name)
	assert.False(t, claims.IsRefreshToken)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	issuer := NewJWTService("segredo-a", time.Hour, time.Hour, zap.NewNop())
	verifier := NewJWTService("segredo-b", time.Hour, time.Hour, zap.NewNop())

	access, _, err := issuer.GenerateTokens("u1", "client", "Ana")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(access)
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	svc := NewJWTService("segredo-de-teste", -time.Minute, time.Hour, zap.NewNop())

	access, _, err := svc.GenerateTokens("u1", "client", "Ana")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	require.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestValidateTokenGarbage(t *testing.T) {
	svc := NewJWTService("segredo-de-teste", time.Hour, time.Hour, zap.NewNop())

	_, err := svc.ValidateToken("isto.não.é-um-jwt")
	require.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
