// Package session persists the client-side state that survives restarts:
// the bearer token and the theme preference. It is the terminal analogue of
// the browser's localStorage: at most one token at a time, overwritten on
// login and removed on logout or detected invalidity.
package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Theme preference values.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Store holds the persisted client state. Absence of a token means the user
// is anonymous.
type Store interface {
	// SetToken persists the bearer token, replacing any prior value.
	SetToken(token string) error
	// Token returns the current token. ok is false when none is stored.
	Token() (token string, ok bool)
	// ClearToken removes the stored token. Clearing an absent token is a no-op.
	ClearToken() error

	// SetTheme persists the theme preference.
	SetTheme(theme string) error
	// Theme returns the stored preference, defaulting to ThemeLight.
	Theme() string
}

const (
	tokenFileName = "token"
	themeFileName = "theme"
)

// FileStore keeps each value in its own file under a state directory.
// Concurrent readers see either the previous or the new value, never a
// partial write, because values are written whole.
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// NewFileStore creates the state directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(filepath.Join(s.dir, tokenFileName), []byte(token), 0o600)
}

func (s *FileStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(filepath.Join(s.dir, tokenFileName))
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

func (s *FileStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := os.Remove(filepath.Join(s.dir, tokenFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *FileStore) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return os.WriteFile(filepath.Join(s.dir, themeFileName), []byte(theme), 0o600)
}

func (s *FileStore) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, err := os.ReadFile(filepath.Join(s.dir, themeFileName))
	if err != nil {
		return ThemeLight
	}
	theme := strings.TrimSpace(string(data))
	if theme != ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// MemStore is an in-memory Store for tests.
type MemStore struct {
	mu    sync.RWMutex
	token string
	has   bool
	theme string
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.has = token, true
	return nil
}

func (s *MemStore) Token() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.has || s.token == "" {
		return "", false
	}
	return s.token, true
}

func (s *MemStore) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.has = "", false
	return nil
}

func (s *MemStore) SetTheme(theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theme
	return nil
}

func (s *MemStore) Theme() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.theme != ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
