// Package store persists small integer records such as the high score.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrInvalidKey is returned by Set for an empty or blank key.
var ErrInvalidKey = errors.New("store: invalid key")

// FileStore keeps a JSON object of integers on disk. Reads are served from
// memory; every Set rewrites the file atomically.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]int
}

// DefaultPath returns scores.json under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("store: config dir: %w", err)
	}
	return filepath.Join(dir, "snakely", "scores.json"), nil
}

// OpenFileStore loads path if it exists. A missing file is an empty store; a
// corrupt one is logged and treated as empty so it gets replaced on the next
// write.
func OpenFileStore(path string) (*FileStore, error) {
	fs := &FileStore{path: path, values: make(map[string]int)}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fs, nil
	case err != nil:
		return nil, fmt.Errorf("store: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &fs.values); err != nil {
		log.Printf("store: ignoring unreadable %s: %v", path, err)
		fs.values = make(map[string]int)
	}
	return fs, nil
}

// Path returns the backing file.
func (fs *FileStore) Path() string { return fs.path }

// Get returns the stored value or 0.
func (fs *FileStore) Get(key string) int {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.values[key]
}

// Set stores value under key and flushes to disk. On a write error the
// in-memory value is kept so the session still sees it.
func (fs *FileStore) Set(key string, value int) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	fs.mu.Lock()
	defer fs.mu.Unlock()
	fs.values[key] = value
	return fs.flush()
}

func (fs *FileStore) flush() error {
	data, err := json.MarshalIndent(fs.values, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode: %w", err)
	}
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".scores-*.tmp")
	if err != nil {
		return fmt.Errorf("store: temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("store: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("store: close: %w", err)
	}
	if err := os.Rename(tmpPath, fs.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("store: rename: %w", err)
	}
	return nil
}

// MemoryStore is a FileStore without the file, for tests and for sessions
// where the config directory is unavailable.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]int
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]int)}
}

// Get returns the stored value or 0.
func (ms *MemoryStore) Get(key string) int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.values[key]
}

// Set stores value under key.
func (ms *MemoryStore) Set(key string, value int) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.values[key] = value
	return nil
}

// Open returns a FileStore at path, or at DefaultPath when path is empty.
// Any failure falls back to a MemoryStore so the game can still run.
func Open(path string) (Store, string) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			log.Printf("store: %v; high scores will not persist", err)
			return NewMemoryStore(), ""
		}
		path = p
	}
	fs, err := OpenFileStore(path)
	if err != nil {
		log.Printf("%v; high scores will not persist", err)
		return NewMemoryStore(), ""
	}
	return fs, fs.Path()
}

// Store is the read/write surface shared by FileStore and MemoryStore.
type Store interface {
	Get(key string) int
	Set(key string, value int) error
}
