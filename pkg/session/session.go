// Package session persists the signed-in credential pair (token plus
// user snapshot) for API consumers such as the CLI.
//
// The store keeps the pair in a pluggable Backend. The file backend
// survives restarts; the memory backend backs tests. The two values are
// written atomically as one document so a reader can never observe a
// token without its user or vice versa.
//
// Reads are forgiving: a missing, unreadable, or corrupt document is
// reported as "not signed in", never as an error. Clear always succeeds
// from the caller's point of view.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// User is the snapshot of the signed-in account stored beside the token.
type User struct {
	ID        uint   `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

// Credentials is the pair the store persists.
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Backend is the persistence strategy for the credential document.
type Backend interface {
	// Read returns the raw document, or os.ErrNotExist when absent.
	Read() ([]byte, error)
	// Write replaces the document atomically.
	Write(data []byte) error
	// Remove deletes the document. Removing an absent document is not
	// an error.
	Remove() error
}

// Store holds the credential pair behind a Backend.
type Store struct {
	mu      sync.Mutex
	backend Backend
}

// New returns a Store over the given backend.
func New(backend Backend) *Store {
	return &Store{backend: backend}
}

// Save persists the token and user as one atomic write.
func (s *Store) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}
	return s.backend.Write(data)
}

// Load returns the stored credentials. ok is false when no valid
// session exists; a corrupt or unreadable document counts as absent.
func (s *Store) Load() (creds Credentials, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.backend.Read()
	if err != nil {
		return Credentials{}, false
	}

	// The token and user are a pair: a document holding only one half,
	// or an unparseable one, is dropped so the next Load starts clean.
	if err := json.Unmarshal(data, &creds); err != nil || creds.Token == "" || creds.User == (User{}) {
		_ = s.backend.Remove()
		return Credentials{}, false
	}

	return creds, true
}

// Token returns just the stored token, or "" when signed out.
func (s *Store) Token() string {
	creds, ok := s.Load()
	if !ok {
		return ""
	}
	return creds.Token
}

// Clear removes the stored pair. Clearing an absent session succeeds.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.Remove()
}

// ------------------- File backend -------------------

// FileBackend stores the document in a single JSON file, written via a
// temp file and rename so a crash mid-write never leaves a torn pair.
type FileBackend struct {
	Path string
}

// DefaultPath returns the per-user session file location.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "ecotrack", "session.json")
}

func (f *FileBackend) Read() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, os.ErrNotExist
		}
		return nil, err
	}
	return data, nil
}

func (f *FileBackend) Write(data []byte) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, f.Path)
}

func (f *FileBackend) Remove() error {
	err := os.Remove(f.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// ------------------- Memory backend -------------------

// MemoryBackend keeps the document in process memory. Used in tests and
// for short-lived clients that should not persist a session.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte
}

func (m *MemoryBackend) Read() ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, os.ErrNotExist
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

func (m *MemoryBackend) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	return nil
}

func (m *MemoryBackend) Remove() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}
