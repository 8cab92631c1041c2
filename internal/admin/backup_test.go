package admin

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupDataArchivesJSONOnly(t *testing.T) {
	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "users.json"), []byte("[]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "products.json"), []byte("[]"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "bot.log"), []byte("log"), 0o644))

	archive := filepath.Join(t.TempDir(), "backup_test.zip")
	require.NoError(t, BackupData(dataDir, archive))

	zr, err := zip.OpenReader(archive)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"users.json", "products.json"}, names)
}

func TestCleanOldBackups(t *testing.T) {
	dir := t.TempDir()

	oldFile := filepath.Join(dir, "autobackup_20240101_000000.zip")
	freshFile := filepath.Join(dir, "autobackup_20260901_000000.zip")
	require.NoError(t, os.WriteFile(oldFile, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(freshFile, []byte("x"), 0o644))

	past := time.Now().Add(-60 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(oldFile, past, past))

	require.NoError(t, CleanOldBackups(dir, 31*24*time.Hour))

	_, err := os.Stat(oldFile)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(freshFile)
	assert.NoError(t, err)
}
