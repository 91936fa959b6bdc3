package client

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Session is the single slot of client auth state: either nil (anonymous) or
// the username and token of the logged-in user.
type Session struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// SessionStore persists the session across client restarts.
type SessionStore interface {
	Load() (*Session, error)
	Save(*Session) error
	Clear() error
}

// FileStore keeps the session as a JSON file at a fixed path.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}
	if sess.Token == "" {
		return nil, nil
	}
	return &sess, nil
}

func (s *FileStore) Save(sess *Session) error {
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore is an in-process SessionStore, mainly for tests.
type MemoryStore struct {
	sess *Session
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) Load() (*Session, error) { return s.sess, nil }

func (s *MemoryStore) Save(sess *Session) error {
	s.sess = sess
	return nil
}

func (s *MemoryStore) Clear() error {
	s.sess = nil
	return nil
}
