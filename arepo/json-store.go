package arepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var _ Store = (*JSONStore)(nil)

// JSONStore is a naive implementation of a Store.
// It persists the data as a human-readable JSON file per name in dir.
// JSONStore is not schema aware and uses the standard go marshalling.
// CAUTION: Be aware if you change your structs, this can lead to data loss!
type JSONStore struct {
	dir string

	mu sync.Mutex
}

// NewJSONStore returns a JSONStore writing into dir. The directory is created if it does not exist.
func NewJSONStore(dir string) (*JSONStore, error) {
	err := os.MkdirAll(dir, 0o750)
	if err != nil {
		return nil, fmt.Errorf("%w: could not create dir %s: %v", ErrStore, dir, err)
	}

	return &JSONStore{dir: dir, mu: sync.Mutex{}}, nil
}

func (s *JSONStore) Store(_ context.Context, name string, data any) error {
	if data == nil {
		return nil
	}

	if name == "" {
		return fmt.Errorf("%w: missing name", ErrStore)
	}

	b, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// write to a temporary file first, so a failing write does not truncate existing data
	tmp := filepath.Join(s.dir, "."+name+".tmp")

	err = os.WriteFile(tmp, b, 0o600)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	err = os.Rename(tmp, filepath.Join(s.dir, name))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	return nil
}

func (s *JSONStore) Load(_ context.Context, name string, data any) error {
	if name == "" {
		return fmt.Errorf("%w: missing name", ErrLoad)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrNoData, err)
	}

	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoad, err)
	}

	return nil
}
