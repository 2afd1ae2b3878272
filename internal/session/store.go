// Package session holds the admin bearer token for the lifetime of the
// process and mirrors it to a file so it survives restarts, the same role
// localStorage plays for a browser client.
package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store is the process-wide session state. Exactly one instance exists;
// callers receive it by injection, never through package globals, so the
// 401-triggered teardown stays testable in isolation.
type Store struct {
	mu      sync.RWMutex
	token   string
	path    string // empty means memory-only
	expired []func()
}

// NewMemory returns a store with no durable backing.
func NewMemory() *Store {
	return &Store{}
}

// NewFile returns a store backed by the file at path. An existing token is
// loaded immediately; a missing or unreadable file just means logged out.
func NewFile(path string) *Store {
	s := &Store{path: path}
	if b, err := os.ReadFile(path); err == nil {
		s.token = strings.TrimSpace(string(b))
	}
	return s
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Active reports whether a token is held.
func (s *Store) Active() bool {
	return s.Token() != ""
}

// Set stores a new token in memory and on disk.
func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if s.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0o600)
}

// Clear drops the token from memory and disk. Used by logout and by the
// API client when the backend answers 401.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if s.path != "" {
		os.Remove(s.path)
	}
}

// OnExpired registers fn to run whenever Expire is called. Registration is
// not concurrency-safe with Expire; wire handlers during startup.
func (s *Store) OnExpired(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expired = append(s.expired, fn)
}

// Expire is the asynchronous session-invalidation signal: it clears the
// token and notifies every registered handler, regardless of which in-flight
// request observed the 401.
func (s *Store) Expire() {
	s.Clear()
	s.mu.RLock()
	handlers := s.expired
	s.mu.RUnlock()
	for _, fn := range handlers {
		fn()
	}
}
