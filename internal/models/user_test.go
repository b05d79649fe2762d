package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserValidate(t *testing.T) {
	user := User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hash",
	}
	assert.NoError(t, user.Validate())
}

func TestUserValidate_Username(t *testing.T) {
	user := User{Email: "alice@example.com", PasswordHash: "hash"}
	assert.ErrorIs(t, user.Validate(), ErrUsernameRequired)
}

func TestUserValidate_Email(t *testing.T) {
	user := User{Username: "alice", PasswordHash: "hash"}
	assert.ErrorIs(t, user.Validate(), ErrEmailRequired)

	user.Email = "not-an-email"
	assert.ErrorIs(t, user.Validate(), ErrInvalidEmail)

	user.Email = "alice@example.com"
	assert.NoError(t, user.Validate())
}
