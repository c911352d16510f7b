package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/gestion-api/pkg/jwt"
)

const secret = "test-secret-key-for-unit-tests"

func TestGenerateAndParse_ConservaIdentidad(t *testing.T) {
	in := pkgjwt.Identity{UserID: "u-1", Email: "root@example.com", Role: "admin"}
	tok, err := pkgjwt.Generate(secret, in, "gestion-api-test", 60)
	require.NoError(t, err)

	out, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, pkgjwt.Identity{UserID: "u-1", Role: "admin"}, "", -1)
	require.NoError(t, err)

	_, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", pkgjwt.Identity{UserID: "u-1"}, "", 60)
	assert.Error(t, err)
}
