package jwt

import (
	"testing"
	"time"

	jwt2 "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndParseToken(t *testing.T) {
	secret := []byte("gateway-secret")
	token, err := CreateToken(secret, &UserClaims{
		RegisteredClaims: jwt2.RegisteredClaims{
			ExpiresAt: jwt2.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "soc-analyst",
	})
	require.NoError(t, err)

	claims, err := ParseToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "soc-analyst", claims.UserID)

	_, err = ParseToken(token, []byte("other"))
	assert.Error(t, err)
}

func TestParseToken_Expired(t *testing.T) {
	secret := []byte("gateway-secret")
	token, err := CreateToken(secret, &UserClaims{
		RegisteredClaims: jwt2.RegisteredClaims{
			ExpiresAt: jwt2.NewNumericDate(time.Now().Add(-time.Minute)),
		},
		UserID: "soc-analyst",
	})
	require.NoError(t, err)

	_, err = ParseToken(token, secret)
	assert.ErrorIs(t, err, jwt2.ErrTokenExpired)
}
