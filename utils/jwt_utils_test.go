package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commerce-service/models"
)

const testSecret = "test-secret"

func signToken(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseToken_RoundTrip(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"user_id": 42,
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}, testSecret)

	actor, err := ParseToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 42, actor.ID)
	assert.Equal(t, models.RoleAdmin, actor.Role)
}

func TestParseToken_DefaultRole(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{"user_id": 7}, testSecret)

	actor, err := ParseToken(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, actor.Role)
}

func TestParseToken_WrongSecret(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{"user_id": 7}, "other-secret")

	_, err := ParseToken(signed, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Expired(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{
		"user_id": 7,
		"exp":     time.Now().Add(-time.Hour).Unix(),
	}, testSecret)

	_, err := ParseToken(signed, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_MissingUserID(t *testing.T) {
	signed := signToken(t, jwt.MapClaims{"role": "admin"}, testSecret)

	_, err := ParseToken(signed, testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken("not-a-token", testSecret)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
