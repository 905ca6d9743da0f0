package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoestore/backend/internal/infrastructure/config"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "shoestore-test",
		MaxRefreshCount:        3,
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID:   userID,
		Username: "admin",
		Role:     "admin",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, TokenTypeAccess, claims.TokenType)
}

func TestJWTService_AccessTokenIsNotARefreshToken(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Username: "u"})
	require.NoError(t, err)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.Error(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.Error(t, err)
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	svc := newTestJWTService()
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: userID, Username: "u", Role: "user"})
	require.NoError(t, err)

	newPair, err := svc.RefreshTokenPair(pair.RefreshToken, "u", "admin")
	require.NoError(t, err)

	claims, err := svc.ValidateAccessToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)

	refreshClaims, err := svc.ValidateRefreshToken(newPair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshClaims.RefreshCount)
}

func TestJWTService_MaxRefreshCount(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Username: "u"})
	require.NoError(t, err)

	refreshToken := pair.RefreshToken
	for i := 0; i < 3; i++ {
		newPair, err := svc.RefreshTokenPair(refreshToken, "u", "user")
		require.NoError(t, err)
		refreshToken = newPair.RefreshToken
	}

	_, err = svc.RefreshTokenPair(refreshToken, "u", "user")
	assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
}

func TestJWTService_TamperedTokenRejected(t *testing.T) {
	svc := newTestJWTService()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Username: "u"})
	require.NoError(t, err)

	tampered := pair.AccessToken[:len(pair.AccessToken)-2] + "xx"
	_, err = svc.ValidateAccessToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ExpiredTokenRejected(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "shoestore-test",
		MaxRefreshCount:        3,
	})

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New(), Username: "u"})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}
