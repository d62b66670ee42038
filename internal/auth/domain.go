// internal/auth/domain.go
package auth

import "errors"

// Identity represents the signed-in user.
type Identity struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// ErrInvalidCredentials is returned when the remote service rejects a
// username/password pair.
var ErrInvalidCredentials = errors.New("invalid username or password")

// SessionStore is the durable mirror for the identity/token pair. The
// auth store is its only reader and writer.
type SessionStore interface {
	// Save persists the identity and token, replacing any previous pair.
	Save(id Identity, token string) error
	// Load restores the persisted pair. ok is false when either entry is
	// missing or unreadable, which callers must treat as anonymous.
	Load() (id Identity, token string, ok bool)
	// Clear removes the persisted pair.
	Clear() error
}
