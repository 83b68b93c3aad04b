package papertrade

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Storage is the narrow key-value persistence capability the application
// consumes. Save marshals value to JSON under key; Load unmarshals the
// stored blob into 'into' and reports false when the key has never been
// saved. A corrupted blob is an error, not an absent key.
type Storage interface {
	Save(key string, value any) error
	Load(key string, into any) (bool, error)
	Delete(key string) error
}

// FileStorage stores each key as a pretty-printed JSON file in a base
// directory.
type FileStorage struct {
	dir string
}

// NewFileStorage creates the base directory if needed and returns a store
// on it.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create storage directory %q: %w", dir, err)
	}
	return &FileStorage{dir: dir}, nil
}

// path maps a key to its file, flattening path separators so a key cannot
// escape the base directory.
func (s *FileStorage) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_").Replace(key)
	return filepath.Join(s.dir, safe+".json")
}

func (s *FileStorage) Save(key string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal value for key %q: %w", key, err)
	}
	if err := os.WriteFile(s.path(key), data, 0o644); err != nil {
		return fmt.Errorf("cannot save key %q: %w", key, err)
	}
	return nil
}

func (s *FileStorage) Load(key string, into any) (bool, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cannot load key %q: %w", key, err)
	}
	if err := json.Unmarshal(data, into); err != nil {
		return false, fmt.Errorf("corrupted data for key %q: %w", key, err)
	}
	return true, nil
}

func (s *FileStorage) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
