package receipt

import (
	"fmt"
	"os"
	"path/filepath"
)

// Storage keeps copies of processed documents
type Storage interface {
	// Save stores data under name and returns the key to read it back
	Save(name string, data []byte) (string, error)

	// Get retrieves a stored file by key
	Get(key string) ([]byte, error)

	// Delete removes a stored file
	Delete(key string) error
}

// LocalStorage implements the Storage interface on a local directory
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates the directory if needed
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// path maps a key into the base directory; keys never escape it
func (l *LocalStorage) path(key string) string {
	return filepath.Join(l.basePath, filepath.Base(key))
}

// Save writes the file into the storage directory
func (l *LocalStorage) Save(name string, data []byte) (string, error) {
	key := filepath.Base(name)
	if err := os.WriteFile(l.path(key), data, 0644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return key, nil
}

// Get reads a stored file
func (l *LocalStorage) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(l.path(key))
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	return data, nil
}

// Delete removes a stored file
func (l *LocalStorage) Delete(key string) error {
	if err := os.Remove(l.path(key)); err != nil {
		return fmt.Errorf("deleting file: %w", err)
	}
	return nil
}
