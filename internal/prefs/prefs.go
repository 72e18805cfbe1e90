// Package prefs persists the dashboard's small local state: the signed-in
// user and the colour theme.
package prefs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/preston-bernstein/dashboard-service/internal/domain/users"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

var ErrInvalidTheme = errors.New("theme must be light or dark")

// ParseTheme accepts light or dark, case-insensitively.
func ParseTheme(raw string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(raw))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	default:
		return "", ErrInvalidTheme
	}
}

// Toggle flips between light and dark.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// State is the persisted document.
type State struct {
	User  *users.Account `json:"user,omitempty"`
	Theme Theme          `json:"theme"`
}

type document struct {
	User  json.RawMessage `json:"user,omitempty"`
	Theme string          `json:"theme"`
}

// FileStore keeps State in memory and mirrors every change to a JSON file.
// An empty path keeps state in memory only.
type FileStore struct {
	path string

	mu    sync.RWMutex
	state State
}

// Open reads path once. A missing file starts from defaults; an unreadable
// user entry is dropped and an unknown theme falls back to light.
func Open(path string) (*FileStore, error) {
	s := &FileStore{path: path, state: State{Theme: ThemeLight}}
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		// corrupt file: start over and overwrite on the next change
		return s, nil
	}
	if theme, err := ParseTheme(doc.Theme); err == nil {
		s.state.Theme = theme
	}
	if len(doc.User) > 0 && !bytes.Equal(doc.User, []byte("null")) {
		var account users.Account
		if err := json.Unmarshal(doc.User, &account); err == nil && account.Email != "" {
			s.state.User = &account
		} else if err := s.persist(s.state); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Path returns the backing file, empty when in-memory.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

func (s *FileStore) SetTheme(theme Theme) error {
	if _, err := ParseTheme(string(theme)); err != nil {
		return err
	}
	return s.update(func(st *State) { st.Theme = theme })
}

func (s *FileStore) SetUser(account users.Account) error {
	return s.update(func(st *State) { st.User = &account })
}

// ClearUser removes the session user, as on logout.
func (s *FileStore) ClearUser() error {
	return s.update(func(st *State) { st.User = nil })
}

func (s *FileStore) update(fn func(*State)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state
	fn(&next)
	if err := s.persist(next); err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *FileStore) persist(st State) error {
	if s.path == "" {
		return nil
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if existing, err := os.ReadFile(s.path); err == nil && bytes.Equal(existing, data) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	return nil
}
