package localstore

import (
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps one file per key under a directory. Writes go through
// a temp file and rename so a crash mid-write leaves the previous blob
// intact (last-write-wins, never a torn read).
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &PersistenceError{Key: dir, Op: "mkdir", Err: err}
	}
	return &FileStore{dir: dir}, nil
}

// keys may contain characters the filesystem dislikes; hex keeps the
// mapping total and reversible.
func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, hex.EncodeToString([]byte(key))+".json")
}

func (s *FileStore) Get(key string) ([]byte, error) {
	b, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &PersistenceError{Key: key, Op: "get", Err: err}
	}
	return b, nil
}

func (s *FileStore) Set(key string, value []byte) error {
	p := s.path(key)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, value, 0644); err != nil {
		return &PersistenceError{Key: key, Op: "set", Err: err}
	}
	if err := os.Rename(tmp, p); err != nil {
		return &PersistenceError{Key: key, Op: "set", Err: err}
	}
	return nil
}

func (s *FileStore) Remove(key string) error {
	err := os.Remove(s.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &PersistenceError{Key: key, Op: "remove", Err: err}
	}
	return nil
}
