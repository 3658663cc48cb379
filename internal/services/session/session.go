// Package session holds the Vapi credentials for the lifetime of one
// login. Nothing here ever touches disk: the store is created empty,
// filled at login, and wiped at logout.
package session

import (
	"sync"

	"vapi-dashboard-tui/internal/models"
)

// Store is a mutex-guarded holder for the session credentials.
// Downstream consumers only ever read.
type Store struct {
	mu    sync.RWMutex
	creds models.Credentials
	live  bool
}

// NewStore creates an empty, logged-out store.
func NewStore() *Store {
	return &Store{}
}

// Login stores the credentials for the session.
func (s *Store) Login(creds models.Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	s.live = true
}

// Logout wipes the credentials.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = models.Credentials{}
	s.live = false
}

// Credentials returns the current credentials and whether a session
// is active.
func (s *Store) Credentials() (models.Credentials, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds, s.live
}

// Active reports whether a login has happened and not been undone.
func (s *Store) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.live
}
