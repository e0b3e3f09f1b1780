package client

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Session holds the admin token for one console. It is passed to the
// client explicitly; nothing reads it from package state.
type Session struct {
	mu    sync.RWMutex
	token string
	path  string
}

// NewSession returns an in-memory session.
func NewSession() *Session { return &Session{} }

// OpenSession returns a session persisted at path, loading any saved token.
func OpenSession(path string) (*Session, error) {
	s := &Session{path: path}
	b, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	s.token = strings.TrimSpace(string(b))
	return s, nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Authenticated reports whether a token is held. The server still decides
// whether it is valid.
func (s *Session) Authenticated() bool { return s.Token() != "" }

func (s *Session) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = strings.TrimSpace(token)
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(s.token), 0o600)
}

func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
