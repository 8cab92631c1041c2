package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAccountsSkipsEmptyLines(t *testing.T) {
	s := newTestStore(t)

	added, err := s.AddAccounts(1, []string{"a:1", "", "b:2"})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	count, err := s.CountAvailable(1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestAddAccountsNothingToAdd(t *testing.T) {
	s := newTestStore(t)
	added, err := s.AddAccounts(1, []string{"", ""})
	require.NoError(t, err)
	assert.Zero(t, added)
}

func TestDuplicateLinesAreSeparateStock(t *testing.T) {
	s := newTestStore(t)
	added, err := s.AddAccounts(1, []string{"same:cred", "same:cred"})
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	first, err := s.DrawAccount(1)
	require.NoError(t, err)
	second, err := s.DrawAccount(1)
	require.NoError(t, err)
	assert.Equal(t, "same:cred", first.Data)
	assert.Equal(t, "same:cred", second.Data)

	_, err = s.DrawAccount(1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDrawAccountMarksSold(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddAccounts(1, []string{"a:1"})
	require.NoError(t, err)

	acc, err := s.DrawAccount(1)
	require.NoError(t, err)
	assert.Equal(t, "a:1", acc.Data)
	assert.True(t, acc.Sold)

	count, err := s.CountAvailable(1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDrawAccountIgnoresOtherProducts(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddAccounts(2, []string{"other:1"})
	require.NoError(t, err)

	_, err = s.DrawAccount(1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReleaseAccount(t *testing.T) {
	s := newTestStore(t)
	_, err := s.AddAccounts(1, []string{"a:1"})
	require.NoError(t, err)

	acc, err := s.DrawAccount(1)
	require.NoError(t, err)

	require.NoError(t, s.ReleaseAccount(1, acc.Data))
	count, err := s.CountAvailable(1)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// непроданную запись вернуть нельзя
	assert.ErrorIs(t, s.ReleaseAccount(1, acc.Data), ErrNotFound)
}
