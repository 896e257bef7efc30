package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateUserRequest_Validate(t *testing.T) {
	valid := &CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "longenough"}
	assert.NoError(t, valid.Validate())

	missingName := &CreateUserRequest{Email: "ana@example.com", Password: "longenough"}
	assert.Error(t, missingName.Validate())

	badEmail := &CreateUserRequest{Name: "Ana", Email: "not-an-email", Password: "longenough"}
	assert.Error(t, badEmail.Validate())

	shortPassword := &CreateUserRequest{Name: "Ana", Email: "ana@example.com", Password: "short"}
	assert.Error(t, shortPassword.Validate())
}

func TestLoginRequest_Validate(t *testing.T) {
	valid := &LoginRequest{Email: "ana@example.com", Password: "pw"}
	assert.NoError(t, valid.Validate())

	missingPassword := &LoginRequest{Email: "ana@example.com"}
	assert.Error(t, missingPassword.Validate())

	missingEmail := &LoginRequest{Password: "pw"}
	assert.Error(t, missingEmail.Validate())
}
