package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLogin(t *testing.T) {
	assert.Nil(t, validateLogin(loginRequest{Username: "sampleuser", Password: "samplepassword"}))
}

func TestValidateLoginMissingFields(t *testing.T) {
	errs := validateLogin(loginRequest{})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "password")
}

func TestValidateLoginBlankUsername(t *testing.T) {
	errs := validateLogin(loginRequest{Username: "   ", Password: "pw"})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "username")
	assert.NotContains(t, errs, "password")
}

func TestValidateLoginMissingPasswordOnly(t *testing.T) {
	errs := validateLogin(loginRequest{Username: "sampleuser"})
	require.NotNil(t, errs)
	assert.NotContains(t, errs, "username")
	assert.Contains(t, errs, "password")
}
