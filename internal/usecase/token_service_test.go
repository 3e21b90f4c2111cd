package usecase

import (
	"testing"
	"time"

	"tripvoice-service/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMintTokenClaims(t *testing.T) {
	svc := NewRoomTokenService("api-key", "api-secret", time.Hour, logger.NewNopLogger())
	svc.now = func() time.Time { return time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC) }

	signed, err := svc.MintToken("travel-room", "caller-1")
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(token *jwt.Token) (interface{}, error) {
		return []byte("api-secret"), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithoutClaimsValidation())
	require.NoError(t, err)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "api-key", claims["iss"])
	assert.Equal(t, "caller-1", claims["sub"])

	grant, ok := claims["video"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "travel-room", grant["room"])
	assert.Equal(t, true, grant["roomJoin"])
	assert.Equal(t, true, grant["canPublish"])
	assert.Equal(t, true, grant["canSubscribe"])

	nbf := int64(claims["nbf"].(float64))
	exp := int64(claims["exp"].(float64))
	assert.Equal(t, int64(3600), exp-nbf)
}

func TestMintTokenValidation(t *testing.T) {
	svc := NewRoomTokenService("", "", time.Hour, logger.NewNopLogger())
	_, err := svc.MintToken("room", "id")
	assert.Error(t, err)

	svc = NewRoomTokenService("k", "s", time.Hour, logger.NewNopLogger())
	_, err = svc.MintToken("", "id")
	assert.Error(t, err)
	_, err = svc.MintToken("room", "")
	assert.Error(t, err)
}
