// internal/auth/store.go
package auth

import (
	"context"
	"sync"
)

// State is an immutable snapshot of the authentication state. Loading
// covers login, SignupLoading covers signup; both share one error
// message since the two flows are never pending at once in practice.
type State struct {
	User            *Identity
	Token           string
	Loading         bool
	SignupLoading   bool
	Error           string
	IsAuthenticated bool
}

// Store orchestrates login and signup through a Service and keeps the
// session mirror in sync. The persisted identity/token pair is written
// and removed exclusively here.
type Store struct {
	svc      Service
	sessions SessionStore

	mu        sync.Mutex
	state     State
	loginSeq  uint64
	signupSeq uint64
}

// NewStore creates an auth store initialized from the session mirror:
// if a persisted identity and token are both present the store starts
// authenticated, otherwise anonymous.
func NewStore(svc Service, sessions SessionStore) *Store {
	s := &Store{svc: svc, sessions: sessions}
	if id, token, ok := sessions.Load(); ok {
		s.state.User = &id
		s.state.Token = token
		s.state.IsAuthenticated = true
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state
	if s.state.User != nil {
		u := *s.state.User
		snap.User = &u
	}
	return snap
}

// Login authenticates with the remote service. On success the derived
// identity and token are stored and mirrored into the session store; on
// failure the store stays anonymous with a human-readable error.
func (s *Store) Login(ctx context.Context, username, password string) {
	s.mu.Lock()
	s.loginSeq++
	seq := s.loginSeq
	s.state.Loading = true
	s.state.Error = ""
	s.mu.Unlock()

	token, err := s.svc.Login(ctx, username, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.loginSeq {
		return
	}
	s.state.Loading = false
	if err != nil {
		s.state.Error = errorMessage(err, "invalid username or password")
		return
	}

	id := identityFromToken(token, username)
	s.setAuthenticated(id, token)
}

// Signup registers a new account. The remote response carries the full
// identity, unlike login.
func (s *Store) Signup(ctx context.Context, username, email, password string) {
	s.mu.Lock()
	s.signupSeq++
	seq := s.signupSeq
	s.state.SignupLoading = true
	s.state.Error = ""
	s.mu.Unlock()

	res, err := s.svc.Signup(ctx, username, email, password)

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.signupSeq {
		return
	}
	s.state.SignupLoading = false
	if err != nil {
		s.state.Error = errorMessage(err, "failed to create account")
		return
	}
	s.setAuthenticated(res.Identity, res.Token)
}

// Logout clears the identity, token and authenticated flag and removes
// the persisted mirror. No network call is made. Any login or signup
// still in flight is invalidated so its late response cannot
// re-authenticate a store the user has already left.
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loginSeq++
	s.signupSeq++
	s.state.Loading = false
	s.state.SignupLoading = false
	s.state.User = nil
	s.state.Token = ""
	s.state.IsAuthenticated = false
	_ = s.sessions.Clear()
}

// ClearError resets the error message only.
func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Error = ""
}

// setAuthenticated commits a successful login or signup. The in-memory
// state is authoritative; mirroring into the session store is
// best-effort and a write failure only costs session continuity.
func (s *Store) setAuthenticated(id Identity, token string) {
	s.state.User = &id
	s.state.Token = token
	s.state.IsAuthenticated = true
	_ = s.sessions.Save(id, token)
}

func errorMessage(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
