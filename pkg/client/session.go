package client

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
)

// Session is the client-side auth state: the bearer token and the role the
// server reported at login. It lives on the Client and in the injected
// SessionStore, never in package globals.
type Session struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

func (s Session) Valid() bool {
	return s.Token != ""
}

// SessionStore persists a session between runs. Load on a store with no
// saved session returns a zero Session and no error.
type SessionStore interface {
	Load() (Session, error)
	Save(Session) error
	Clear() error
}

// FileSessionStore keeps the session as a JSON file, the CLI equivalent of
// the two browser localStorage keys.
type FileSessionStore struct {
	path string
}

func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

func (f *FileSessionStore) Load() (Session, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Session{}, nil
		}
		return Session{}, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return Session{}, err
	}
	return s, nil
}

func (f *FileSessionStore) Save(s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

func (f *FileSessionStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// MemorySessionStore holds the session in memory only. Useful in tests and
// for callers that manage persistence themselves.
type MemorySessionStore struct {
	session Session
}

func (m *MemorySessionStore) Load() (Session, error)  { return m.session, nil }
func (m *MemorySessionStore) Save(s Session) error    { m.session = s; return nil }
func (m *MemorySessionStore) Clear() error            { m.session = Session{}; return nil }
