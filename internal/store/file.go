package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fitcoach/apiserver/types"
)

// FileStore persists the whole user collection as a single JSON file. Every
// mutation rewrites the file wholesale; there is no incremental mode.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore constructs a store backed by the file at path. The file does
// not need to exist yet; a missing file loads as an empty collection.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load reads the persisted collection. A missing file is not an error and
// yields an empty slice; malformed content yields ErrCorrupt.
func (s *FileStore) Load() ([]types.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []types.User{}, nil
		}
		return nil, fmt.Errorf("read users file: %w", err)
	}
	if len(data) == 0 {
		return []types.User{}, nil
	}

	var users []types.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return users, nil
}

// Save serializes the full collection and replaces the file contents. The
// write goes to a temp file in the same directory, then renames over the
// target, so a reader in this process never observes a partial write.
func (s *FileStore) Save(users []types.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".users-*.json")
	if err != nil {
		return fmt.Errorf("create temp users file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write users file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close users file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace users file: %w", err)
	}
	return nil
}

// Mutate runs fn under the store lock with the freshly loaded collection and
// saves whatever fn returns. All mutating operations must go through here:
// holding the lock across load, mutate and save is what keeps two
// interleaving requests from silently discarding each other's writes.
func (s *FileStore) Mutate(fn func(users []types.User) ([]types.User, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.Load()
	if err != nil {
		return err
	}
	updated, err := fn(users)
	if err != nil {
		return err
	}
	return s.Save(updated)
}

// NextID returns one greater than the maximum id present, or 1 for an empty
// collection. Computed from the maximum rather than the count so that ids
// are never reused after a delete.
func NextID(users []types.User) int {
	highest := 0
	for _, u := range users {
		if u.ID > highest {
			highest = u.ID
		}
	}
	return highest + 1
}
