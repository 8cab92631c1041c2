package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestNewInitializesCollections(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	for _, name := range []string{"users.json", "products.json", "accounts.json"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, "[]", string(data))
	}

	settings, err := s.Settings()
	require.NoError(t, err)
	assert.True(t, settings.ShowPremium)
}

func TestNewKeepsExistingData(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	require.NoError(t, s.AddUser(User{ID: 1, Username: "alice"}))

	// повторное открытие не должно затирать коллекции
	s2, err := New(dir)
	require.NoError(t, err)
	user, err := s2.GetUser(1)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestCorruptFileFailsFast(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	p := filepath.Join(dir, "products.json")
	require.NoError(t, os.WriteFile(p, []byte("{not json"), 0o644))

	_, err = s.AllProducts()
	var serr *StorageError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, p, serr.Path)

	// повреждённый файл не перезаписывается
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestWriteIsWholeFileRewrite(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.AddUser(User{ID: 1, Username: "a", CreatedAt: time.Now().Format(time.RFC3339)}))
	require.NoError(t, s.AddUser(User{ID: 2, Username: "b", CreatedAt: time.Now().Format(time.RFC3339)}))

	data, err := os.ReadFile(filepath.Join(dir, "users.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"a"`)
	assert.Contains(t, string(data), `"b"`)
}

func TestToggleShowPremium(t *testing.T) {
	s := newTestStore(t)

	show, err := s.ToggleShowPremium()
	require.NoError(t, err)
	assert.False(t, show)

	settings, err := s.Settings()
	require.NoError(t, err)
	assert.False(t, settings.ShowPremium)

	show, err = s.ToggleShowPremium()
	require.NoError(t, err)
	assert.True(t, show)
}
