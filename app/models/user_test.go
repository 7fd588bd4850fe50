package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUserIsImmediatelyActive(t *testing.T) {
	user, err := CreateUser("ama", "ama@example.com", "correct horse")
	require.NoError(t, err)

	// No confirmation step: a fresh account can log in right away.
	assert.Equal(t, STATUS_ACTIVE, user.Status)
	assert.True(t, user.IsActive())
	assert.Equal(t, ROLE_READER, user.Role)
}

func TestCreateUserHashesPassword(t *testing.T) {
	user, err := CreateUser("kofi", "kofi@example.com", "hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter22", user.Password)
	assert.True(t, user.CheckPassword("hunter22"))
	assert.False(t, user.CheckPassword("hunter23"))
}

func TestCreateUserValidatesInput(t *testing.T) {
	_, err := CreateUser("yaa", "not-an-email", "longenough")
	assert.Error(t, err)

	_, err = CreateUser("yaa", "yaa@example.com", "tiny")
	assert.Error(t, err)
}
