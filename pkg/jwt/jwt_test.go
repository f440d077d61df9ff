package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	service := NewService("test-secret", time.Hour)

	token, err := service.GenerateToken(Claims{
		UserID:        7,
		Email:         "ana@example.com",
		FirstName:     "Ana",
		LastName:      "Pérez",
		Role:          1,
		DocumentType:  "CED",
		Document:      "0102030405",
		UpstreamToken: "upstream-bearer",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana", claims.FirstName)
	assert.Equal(t, 1, claims.Role)
	assert.Equal(t, "upstream-bearer", claims.UpstreamToken)
	assert.Equal(t, "hotelandino-booking-bff", claims.Issuer)
	assert.Equal(t, "7", claims.Subject)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewService("secret-a", time.Hour).GenerateToken(Claims{UserID: 7})
	require.NoError(t, err)

	_, err = NewService("secret-b", time.Hour).ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	service := NewService("test-secret", -time.Minute)
	token, err := service.GenerateToken(Claims{UserID: 7})
	require.NoError(t, err)

	_, err = service.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	_, err := NewService("test-secret", time.Hour).ValidateToken("not-a-token")
	assert.Error(t, err)
}
