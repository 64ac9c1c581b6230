package service

import (
	"testing"

	"github.com/eventum/eventum/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserServiceCRUD(t *testing.T) {
	setupDB(t)
	s := &UserService{}

	u, err := s.CreateUser("Test User", "user@te.st", "", "user123")
	require.NoError(t, err)
	assert.Equal(t, model.UserTypeUser, u.UserType)

	ed, err := s.CreateUser("Test Editor", "editor@te.st", model.UserTypeEditor, "editor123")
	require.NoError(t, err)

	got, err := s.GetByIdentityToken("editor123")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, ed.Id, got.Id)

	missing, err := s.GetByIdentityToken("nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	empty, err := s.GetByIdentityToken("")
	require.NoError(t, err)
	assert.Nil(t, empty)

	updated, err := s.UpdateUserType(u.Id, model.UserTypePublisher)
	require.NoError(t, err)
	assert.Equal(t, model.UserTypePublisher, updated.UserType)

	users, err := s.ListUsers()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, u.Id, users[0].Id)

	require.NoError(t, s.DeleteUser(ed.Id))
	assert.ErrorIs(t, s.DeleteUser(ed.Id), ErrUserNotFound)
	_, err = s.GetById(ed.Id)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserServiceRejectsUnknownType(t *testing.T) {
	setupDB(t)
	s := &UserService{}

	_, err := s.CreateUser("Root", "root@te.st", model.UserType("root"), "root123")
	assert.ErrorIs(t, err, ErrUnknownUserType)

	u, err := s.CreateUser("Test User", "user@te.st", "", "user123")
	require.NoError(t, err)
	_, err = s.UpdateUserType(u.Id, model.UserType("root"))
	assert.ErrorIs(t, err, ErrUnknownUserType)

	_, err = s.CreateUser("", "x@te.st", "", "x")
	assert.Error(t, err)
}

func TestUserServiceDuplicateToken(t *testing.T) {
	setupDB(t)
	s := &UserService{}

	_, err := s.CreateUser("A", "a@te.st", "", "same")
	require.NoError(t, err)
	_, err = s.CreateUser("B", "b@te.st", "", "same")
	assert.Error(t, err)
}

func TestDeleteAllUsers(t *testing.T) {
	setupDB(t)
	s := &UserService{}

	for _, tok := range []string{"a", "b", "c"} {
		_, err := s.CreateUser(tok, tok+"@te.st", "", tok)
		require.NoError(t, err)
	}
	deleted, err := s.DeleteAllUsers()
	require.NoError(t, err)
	assert.EqualValues(t, 3, deleted)

	count, err := s.CountUsers()
	require.NoError(t, err)
	assert.Zero(t, count)
}
