package admin

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"time"

	"Account-Shop-Telegram-bot/internal/logger"

	"go.uber.org/zap"
)

// BackupData создаёт zip-архив всех JSON-коллекций каталога данных
func BackupData(dataDir, filename string) error {
	out, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	defer zw.Close()

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		src, err := os.Open(filepath.Join(dataDir, e.Name()))
		if err != nil {
			return err
		}
		w, err := zw.Create(e.Name())
		if err != nil {
			src.Close()
			return err
		}
		if _, err := io.Copy(w, src); err != nil {
			src.Close()
			return err
		}
		src.Close()
	}
	return nil
}

// CleanOldBackups удаляет все архивы старше maxAge в директории бэкапов
func CleanOldBackups(dir string, maxAge time.Duration) error {
	files, err := filepath.Glob(filepath.Join(dir, "*backup_*.zip"))
	if err != nil {
		return err
	}
	cutoff := time.Now().Add(-maxAge)
	for _, f := range files {
		info, err := os.Stat(f)
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			_ = os.Remove(f)
		}
	}
	return nil
}

// AutoBackupData запускает ночной бэкап и чистку старых архивов
func AutoBackupData(dataDir, backupDir string) {
	os.MkdirAll(backupDir, 0o755)
	filename := filepath.Join(backupDir, "autobackup_"+time.Now().Format("20060102_150405")+".zip")
	if err := BackupData(dataDir, filename); err != nil {
		logger.Error("auto backup failed", zap.Error(err))
		return
	}
	CleanOldBackups(backupDir, 31*24*time.Hour)
	logger.Info("auto backup created", zap.String("file", filename))
}
