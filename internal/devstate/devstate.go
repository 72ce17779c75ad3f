// Package devstate persists the development-mode authentication flag. The
// flag bypasses backend authentication and switches the app to demo behavior
// when the backend is unreachable. It is the one piece of local state the
// app keeps, stored as a single file under the configured state directory.
package devstate

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Key is the name of the flag file inside the state directory.
const Key = "dev_admin_authenticated"

// Store reads and writes the development authentication flag.
type Store struct {
	mu   sync.Mutex
	path string
}

// New returns a Store rooted at dir. The directory is created on first
// write, not here.
func New(dir string) *Store {
	return &Store{path: filepath.Join(dir, Key)}
}

// Enabled reports whether development mode is active. A missing or
// unreadable flag file counts as inactive.
func (s *Store) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "true"
}

// Enable marks development mode active.
func (s *Store) Enable() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte("true"), 0600)
}

// Clear deactivates development mode. Clearing an already-clear flag is not
// an error.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
