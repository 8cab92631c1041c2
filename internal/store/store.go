package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	usersFile    = "users.json"
	productsFile = "products.json"
	accountsFile = "accounts.json"
	settingsFile = "settings.json"
)

// ErrNotFound возвращается, когда запись с указанным идентификатором отсутствует в коллекции.
var ErrNotFound = errors.New("store: record not found")

// StorageError — файл коллекции существует, но не читается или не парсится.
// Такой файл никогда не перезаписывается пустой коллекцией.
type StorageError struct {
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error on %s: %v", e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Store хранит коллекции users/products/accounts/settings в JSON-файлах.
// Один мьютекс на все коллекции: каждая операция чтения-изменения-записи атомарна.
type Store struct {
	mu  sync.RWMutex
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{dir: dir}
	for _, name := range []string{usersFile, productsFile, accountsFile} {
		if err := s.initFile(name, []byte("[]")); err != nil {
			return nil, err
		}
	}
	defaults, _ := json.MarshalIndent(defaultSettings(), "", "    ")
	if err := s.initFile(settingsFile, defaults); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Dir() string { return s.dir }

func (s *Store) path(name string) string { return filepath.Join(s.dir, name) }

// initFile создаёт файл с содержимым по умолчанию, только если его ещё нет
func (s *Store) initFile(name string, content []byte) error {
	p := s.path(name)
	if _, err := os.Stat(p); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return &StorageError{Path: p, Err: err}
	}
	return writeFileAtomic(p, content)
}

func readJSON[T any](s *Store, name string, out *T) error {
	p := s.path(name)
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			// коллекция ещё не создавалась
			return nil
		}
		return &StorageError{Path: p, Err: err}
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &StorageError{Path: p, Err: err}
	}
	return nil
}

func writeJSON[T any](s *Store, name string, v T) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return &StorageError{Path: s.path(name), Err: err}
	}
	return writeFileAtomic(s.path(name), data)
}

// writeFileAtomic пишет во временный файл и переименовывает:
// упавшая на середине запись не обрезает коллекцию
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return &StorageError{Path: path, Err: err}
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return &StorageError{Path: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return &StorageError{Path: path, Err: err}
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return &StorageError{Path: path, Err: err}
	}
	return nil
}
