package authenticator

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// FileStorage implements Storage as one file per key inside a directory.
// Values are written with 0600 permissions since they may contain secrets.
type FileStorage struct {
	dir string
}

// NewFileStorage creates a file-backed storage rooted at dir. The directory is
// created on the first write, not here, so a read-only run never touches disk.
func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

// Get reads the value stored under key, or ErrKeyNotFound if the file does not exist.
func (f *FileStorage) Get(ctx context.Context, key string) (string, error) {
	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrKeyNotFound
		}
		return "", err
	}
	return string(data), nil
}

// Set writes the value for key, creating the directory if needed.
func (f *FileStorage) Set(ctx context.Context, key, value string) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path(key), []byte(value), 0o600)
}

// path maps a storage key to a file name, replacing separators that would
// escape the storage directory.
func (f *FileStorage) path(key string) string {
	sanitized := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(f.dir, sanitized)
}
