package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetUserNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetUser(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddUserUpsert(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddUser(User{ID: 1, Username: "old", Balance: 100}))
	require.NoError(t, s.AddUser(User{ID: 1, Username: "new", Balance: 200}))

	users, err := s.AllUsers()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "new", users[0].Username)
	assert.Equal(t, 200.0, users[0].Balance)
}

func TestUpdateUser(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddUser(User{ID: 1, Username: "alice"}))

	require.NoError(t, s.UpdateUser(1, func(u *User) { u.Username = "bob" }))
	user, err := s.GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)

	assert.ErrorIs(t, s.UpdateUser(99, func(u *User) {}), ErrNotFound)
}

func TestBanUnbanUser(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddUser(User{ID: 1}))

	require.NoError(t, s.BanUser(1))
	user, err := s.GetUser(1)
	require.NoError(t, err)
	assert.True(t, user.Banned)

	require.NoError(t, s.UnbanUser(1))
	user, err = s.GetUser(1)
	require.NoError(t, err)
	assert.False(t, user.Banned)
}

func TestAddMoney(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.AddUser(User{ID: 1, Balance: 1000}))

	balance, err := s.AddMoney(1, 500)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, balance)

	_, err = s.AddMoney(99, 500)
	assert.ErrorIs(t, err, ErrNotFound)
}
