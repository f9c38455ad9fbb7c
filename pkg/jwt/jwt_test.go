package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse(t *testing.T) {
	token, err := Generate("secret", "user-1", "ana@example.com", "invoice-docs", 5)
	require.NoError(t, err)

	claims, err := Parse("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "invoice-docs", claims.Issuer)
}

func TestParse_Errores(t *testing.T) {
	token, err := Generate("secret", "user-1", "", "invoice-docs", 5)
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err, "firma incorrecta")

	expired, err := Generate("secret", "user-1", "", "invoice-docs", -1)
	require.NoError(t, err)
	_, err = Parse("secret", expired)
	assert.Error(t, err, "token expirado")

	_, err = Parse("", token)
	assert.Error(t, err)

	_, err = Generate("secret", "", "", "invoice-docs", 5)
	assert.Error(t, err)
}
