// Package session holds the client's bearer credential in one of two
// storage scopes: a session scope that lives only as long as the process,
// and a remembered scope persisted to a file so the operator stays signed
// in across restarts. Reads fall back from session to remembered; at most
// one credential is authoritative at a time.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// nowFn is a test seam for expiry checks.
var nowFn = time.Now

type Store struct {
	mu   sync.Mutex
	mem  *Credential
	path string
}

// NewStore builds a store whose remembered scope is the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save stores the credential in the scope named by its Persistence field.
// Saving into one scope clears the other so only one credential is live.
func (s *Store) Save(cred Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cred.Persistence == ScopeRemembered {
		s.mem = nil
		return s.writeFile(cred)
	}

	s.mem = &cred
	return s.removeFile()
}

// Current returns the live credential: session scope first, then the
// remembered file. An expired remembered credential is discarded on read.
func (s *Store) Current() (Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mem != nil {
		return *s.mem, true
	}

	cred, err := s.readFile()
	if err != nil {
		return Credential{}, false
	}
	if cred.Expired(nowFn()) {
		_ = s.removeFile()
		return Credential{}, false
	}
	return cred, true
}

// Authenticated reports whether any credential is currently live.
func (s *Store) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

// Clear wipes both scopes. Used on logout and whenever the service answers
// with 401.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mem = nil
	_ = s.removeFile()
}

func (s *Store) writeFile(cred Credential) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cred, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

func (s *Store) readFile() (Credential, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Credential{}, err
	}
	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return Credential{}, err
	}
	cred.Persistence = ScopeRemembered
	return cred, nil
}

func (s *Store) removeFile() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
