package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"threadline/internal/core"
)

// Store is the durable local key-value cache: the authenticated user blob
// plus bearer token, and the per-thread expanded-state flags. The expanded
// flags are a convenience cache only, losing them is always safe.
type Store struct {
	Config *core.Config

	mu    sync.Mutex
	path  string
	state state
}

type state struct {
	Session  *core.Session              `json:"session,omitempty"`
	Expanded map[string]map[string]bool `json:"expanded,omitempty"`
}

func (s *Store) Init(_ context.Context) error {
	s.path = s.Config.SessionPath
	if s.path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return err
		}
		s.path = filepath.Join(dir, "threadline", "session.json")
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	// A corrupt cache file is treated as logged out, not as a fatal error.
	if err := json.Unmarshal(raw, &s.state); err != nil {
		s.state = state{}
	}
	return nil
}

func (s *Store) Current() (core.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Session == nil {
		return core.Session{}, false
	}
	return *s.state.Session, true
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Session == nil {
		return ""
	}
	return s.state.Session.Token
}

func (s *Store) Save(session core.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Session = &session
	return s.flush()
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Session = nil
	return s.flush()
}

func (s *Store) LoadExpanded(entityKey string) map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expanded := make(map[string]bool, len(s.state.Expanded[entityKey]))
	for id, open := range s.state.Expanded[entityKey] {
		expanded[id] = open
	}
	return expanded
}

// SaveExpanded is best effort: the flags carry no server truth, so write
// failures are deliberately swallowed.
func (s *Store) SaveExpanded(entityKey string, expanded map[string]bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Expanded == nil {
		s.state.Expanded = map[string]map[string]bool{}
	}
	s.state.Expanded[entityKey] = expanded

	_ = s.flush()
}

func (s *Store) flush() error {
	raw, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	// The file holds a bearer token, keep it owner-only.
	return os.WriteFile(s.path, raw, 0o600)
}
