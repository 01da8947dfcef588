package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateAndParseToken(t *testing.T) {
	JwtKey = []byte("test-secret")

	token, err := GenerateJWT("64f1c0ffee0000000000abcd", "shopper@example.com", "consumer")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "64f1c0ffee0000000000abcd", claims.UserID)
	assert.Equal(t, "shopper@example.com", claims.Email)
	assert.Equal(t, "consumer", claims.Role)
	assert.Greater(t, claims.ExpiresAt, int64(0))
}

func TestParseTokenRejectsWrongKey(t *testing.T) {
	JwtKey = []byte("key-one")
	token, err := GenerateJWT("id", "a@b.com", "consumer")
	assert.NoError(t, err)

	JwtKey = []byte("key-two")
	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	JwtKey = []byte("test-secret")
	_, err := ParseToken("not.a.token")
	assert.Error(t, err)
}
