package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore implements Store on top of a single JSON file. It backs the
// durable scope: values survive process restarts. Writes go through a
// temp-file rename so a crash mid-write never corrupts the previous state.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// NewFileStore opens (or creates) the store at path. Parent directories are
// created as needed.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty file path", ErrStoreUnavailable)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	s := &FileStore{path: abs, values: make(map[string]string)}

	data, err := os.ReadFile(abs)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// Fresh store.
	case err != nil:
		return nil, errors.Join(ErrStoreUnavailable, err)
	default:
		if len(data) > 0 {
			if err := json.Unmarshal(data, &s.values); err != nil {
				return nil, errors.Join(ErrStoreUnavailable, err)
			}
		}
	}

	return s, nil
}

func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	val, ok := s.values[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return val, nil
}

func (s *FileStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return s.flush()
}

func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flush()
}

func (s *FileStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = make(map[string]string)
	return s.flush()
}

// flush writes the current map atomically. Callers must hold the mutex.
func (s *FileStore) flush() error {
	data, err := json.Marshal(s.values)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}
