package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/invetex/cortes-api/pkg/jwt"
)

const secret = "secreto-de-prueba"

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "co-1", "bodeguero", "cortes-erp", 60)
	require.NoError(t, err)

	userID, companyID, role, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "co-1", companyID)
	assert.Equal(t, "bodeguero", role)
}

func TestParse_FirmaAjena(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "co-1", "admin", "cortes-erp", 60)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secreto", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, "u-1", "co-1", "admin", "cortes-erp", -1)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "u-1", "co-1", "admin", "cortes-erp", 60)
	assert.Error(t, err)
}
