package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/queuedesk/queuedesk-go/internal/errors"
)

// MemoryStore implements in-memory session storage.
//
// This is suitable for embedding applications and tests. The CLI uses
// FileStore so sessions survive between invocations.
type MemoryStore struct {
	mu      sync.RWMutex
	session *Session
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Current returns the cached session, if any.
func (m *MemoryStore) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// Save replaces the cached session.
func (m *MemoryStore) Save(s Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s.UpdatedAt = time.Now()
	m.session = &s
	return nil
}

// Reset clears the session.
func (m *MemoryStore) Reset(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = nil
	return nil
}

// FileStore persists the session as JSON on disk.
//
// The file is written with 0600 permissions since it carries bearer tokens.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// DefaultPath returns the per-user session file location
// (~/.queuedesk/session.json).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSessionStoreFailed, "cannot resolve home directory", err)
	}
	return filepath.Join(home, ".queuedesk", "session.json"), nil
}

// NewFileStore creates a file-backed session store at the given path
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Current returns the persisted session, if any.
func (f *FileStore) Current() (Session, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		return Session{}, false
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, false
	}

	return s, true
}

// Save writes the session to disk.
func (f *FileStore) Save(s Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s.UpdatedAt = time.Now()

	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeSessionStoreFailed, "cannot create session directory", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeSessionStoreFailed, "cannot encode session", err)
	}

	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeSessionStoreFailed, "cannot write session file", err)
	}

	return nil
}

// Reset removes the session file. Missing files are not an error.
func (f *FileStore) Reset(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeSessionStoreFailed, "cannot remove session file", err)
	}
	return nil
}
