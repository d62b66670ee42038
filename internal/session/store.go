// internal/session/store.go
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"shopfront/internal/auth"
)

// record is the on-disk shape of a persisted session: exactly the
// identity and its token, nothing else.
type record struct {
	User  auth.Identity `json:"user"`
	Token string        `json:"token"`
}

// Store is a file-backed session mirror implementing auth.SessionStore.
// Writes go through a temp file and rename so a crash mid-write leaves
// either the old session or the new one, never a torn file.
type Store struct {
	path string
}

// NewStore creates a session store persisting to the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Save persists the identity/token pair, replacing any previous one.
func (s *Store) Save(id auth.Identity, token string) error {
	data, err := json.Marshal(record{User: id, Token: token})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "session-*.tmp")
	if err != nil {
		return fmt.Errorf("creating session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing session file: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("restricting session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing session file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replacing session file: %w", err)
	}
	return nil
}

// Load restores the persisted pair. A missing, unreadable or incomplete
// session reports ok=false; the caller treats that as anonymous.
func (s *Store) Load() (auth.Identity, string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return auth.Identity{}, "", false
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return auth.Identity{}, "", false
	}
	if rec.Token == "" || rec.User.ID == 0 {
		return auth.Identity{}, "", false
	}
	return rec.User, rec.Token, true
}

// Clear removes the persisted session. A session that was never saved
// is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}
