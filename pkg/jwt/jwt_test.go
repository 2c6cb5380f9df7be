package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/kongsi/inventory-client/pkg/jwt"
)

const (
	testSecret = "test-secret-key-for-unit-tests"
	testIssuer = "kongsi-inventory-test"
)

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "admin@kongsi.test", testIssuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	email, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "admin@kongsi.test", email)
}

func TestJWT_TokenExpirado_RetornaError(t *testing.T) {
	// Expiración -1 minuto: ya vencido al parsear.
	tok, err := pkgjwt.Generate(testSecret, "admin@kongsi.test", testIssuer, -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "admin@kongsi.test", testIssuer, 60)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}

func TestJWT_SecretVacio_RetornaError(t *testing.T) {
	_, err := pkgjwt.Generate("", "admin@kongsi.test", testIssuer, 60)
	assert.Error(t, err)

	_, err = pkgjwt.Parse("", "lo-que-sea")
	assert.Error(t, err)
}
