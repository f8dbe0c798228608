package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPassword(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"abcd1234!", true},
		{"p@ssw0rd", true},
		{"short1!", false},      // under 8 characters
		{"abcdefgh!", false},    // no digit
		{"abcdefgh1", false},    // no symbol
		{"12345678", false},     // no symbol
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, ValidPassword(tt.password), "password %q", tt.password)
	}
}

func TestSetPasswordStoresVerifiableHash(t *testing.T) {
	u := User{}
	require.NoError(t, u.SetPassword("abcd1234!"))

	assert.NotEqual(t, "abcd1234!", u.Password)
	assert.True(t, u.CheckPassword("abcd1234!"))
	assert.False(t, u.CheckPassword("abcd1234?"))
}

func TestNormalizeEmail(t *testing.T) {
	u := User{Email: "Pat.Doe@Example.COM"}
	u.NormalizeEmail()
	assert.Equal(t, "pat.doe@example.com", u.Email)
}

func TestUserValidate(t *testing.T) {
	u := User{FirstName: "Pat", LastName: "Doe", Email: "pat@example.com"}
	assert.Empty(t, u.Validate())

	u = User{Email: "not-an-email"}
	errs := u.Validate()
	assert.Contains(t, errs, "Please provide a first name")
	assert.Contains(t, errs, "Please provide a last name")
	assert.Contains(t, errs, "Please provide a valid email address")

	u = User{FirstName: "Pat", LastName: "Doe"}
	assert.Contains(t, u.Validate(), "An email is required")
}
