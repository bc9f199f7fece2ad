package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	setupTestDB(t)
	userService := NewUserService()

	userID, err := userService.Register(RegisterInput{
		Username: "bookworm",
		Password: "secret123",
		FullName: "Ann Reader",
	})
	require.NoError(t, err)
	require.NotZero(t, userID)

	token, err := userService.Login("bookworm", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolvedID, err := userService.ResolveToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, resolvedID)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	setupTestDB(t)
	userService := NewUserService()

	_, err := userService.Register(RegisterInput{Username: "bookworm", Password: "secret123"})
	require.NoError(t, err)

	_, err = userService.Register(RegisterInput{Username: "bookworm", Password: "another"})
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	setupTestDB(t)
	userService := NewUserService()

	_, err := userService.Register(RegisterInput{Username: "bookworm"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = userService.Register(RegisterInput{Password: "secret123"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLoginWrongCredentials(t *testing.T) {
	setupTestDB(t)
	userService := NewUserService()

	_, err := userService.Register(RegisterInput{Username: "bookworm", Password: "secret123"})
	require.NoError(t, err)

	_, err = userService.Login("bookworm", "wrong")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = userService.Login("nobody", "secret123")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestLogoutRevokesToken(t *testing.T) {
	setupTestDB(t)
	userService := NewUserService()

	_, err := userService.Register(RegisterInput{Username: "bookworm", Password: "secret123"})
	require.NoError(t, err)
	token, err := userService.Login("bookworm", "secret123")
	require.NoError(t, err)

	require.NoError(t, userService.Logout(token))

	_, err = userService.ResolveToken(token)
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestResolveTokenUnknown(t *testing.T) {
	setupTestDB(t)
	userService := NewUserService()

	_, err := userService.ResolveToken("")
	assert.ErrorIs(t, err, ErrNotAuthorized)

	_, err = userService.ResolveToken("deadbeef")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestSearchUsers(t *testing.T) {
	setupTestDB(t)
	userService := NewUserService()

	callerID, err := userService.Register(RegisterInput{Username: "reader_one", Password: "secret123"})
	require.NoError(t, err)
	_, err = userService.Register(RegisterInput{Username: "reader_two", Password: "secret123"})
	require.NoError(t, err)
	_, err = userService.Register(RegisterInput{Username: "collector", Password: "secret123"})
	require.NoError(t, err)

	// Сам вызывающий исключается из выдачи
	profiles, err := userService.SearchUsers(callerID, "reader")
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	assert.Equal(t, "reader_two", profiles[0].Username)

	_, err = userService.SearchUsers(callerID, "")
	assert.ErrorIs(t, err, ErrValidation)
}
