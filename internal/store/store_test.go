package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Garsondee/Snakely/internal/snake"
)

var (
	_ snake.HighScoreStore = (*FileStore)(nil)
	_ snake.HighScoreStore = (*MemoryStore)(nil)
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "scores.json")
	fs, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if fs.Get(snake.HighScoreKey) != 0 {
		t.Fatal("fresh store should read 0")
	}
	if err := fs.Set(snake.HighScoreKey, 17); err != nil {
		t.Fatalf("set: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	var onDisk map[string]int
	if err := json.Unmarshal(data, &onDisk); err != nil || onDisk["snakeHighScore"] != 17 {
		t.Fatalf("file contents %q (%v)", data, err)
	}

	again, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if again.Get(snake.HighScoreKey) != 17 {
		t.Fatalf("reopened value = %d", again.Get(snake.HighScoreKey))
	}
}

func TestFileStore_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	fs, _ := OpenFileStore(filepath.Join(dir, "scores.json"))
	for i := 0; i < 5; i++ {
		if err := fs.Set("k", i); err != nil {
			t.Fatal(err)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "scores.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("dir contents = %v", names)
	}
}

func TestFileStore_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	fs, err := OpenFileStore(path)
	if err != nil {
		t.Fatalf("corrupt file should not fail open: %v", err)
	}
	if fs.Get(snake.HighScoreKey) != 0 {
		t.Fatal("corrupt file should read as empty")
	}
	if err := fs.Set(snake.HighScoreKey, 3); err != nil {
		t.Fatal(err)
	}
	again, _ := OpenFileStore(path)
	if again.Get(snake.HighScoreKey) != 3 {
		t.Fatal("corrupt file was not replaced")
	}
}

func TestFileStore_InvalidKey(t *testing.T) {
	fs, _ := OpenFileStore(filepath.Join(t.TempDir(), "s.json"))
	if err := fs.Set("  ", 1); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("err = %v, want ErrInvalidKey", err)
	}
	if err := NewMemoryStore().Set("", 1); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("memory err = %v, want ErrInvalidKey", err)
	}
}

func TestFileStore_WriteFailureKeepsValue(t *testing.T) {
	sub := filepath.Join(t.TempDir(), "sub")
	fs, err := OpenFileStore(filepath.Join(sub, "scores.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// A regular file where the directory should be makes MkdirAll fail.
	if err := os.WriteFile(sub, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := fs.Set("k", 9); err == nil {
		t.Fatal("expected write error under a regular file")
	}
	if fs.Get("k") != 9 {
		t.Fatal("in-memory value lost after write failure")
	}
}

func TestOpen_FallsBackToMemory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ok.json")
	s, got := Open(path)
	if _, ok := s.(*FileStore); !ok || got != path {
		t.Fatalf("Open(%q) = %T %q", path, s, got)
	}
	// A directory in place of the file makes ReadFile fail with a non-ENOENT error.
	s, got = Open(dir)
	if _, ok := s.(*MemoryStore); !ok || got != "" {
		t.Fatalf("Open(dir) = %T %q, want memory fallback", s, got)
	}
}

func TestEngineUsesFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.json")
	fs, _ := OpenFileStore(path)
	sim := snake.NewSim(
		snake.WithEngine(snake.WithHighScores(fs)),
		snake.WithFood(snake.Cell{X: 220, Y: 200}),
	)
	sim.Engine.Step()
	again, _ := OpenFileStore(path)
	if again.Get(snake.HighScoreKey) != 1 {
		t.Fatalf("persisted high score = %d, want 1", again.Get(snake.HighScoreKey))
	}
}
