// internal/auth/service.go
package auth

import "context"

// SignupResult is the remote response to a successful signup: the new
// identity plus its access token.
type SignupResult struct {
	Identity Identity
	Token    string
}

// Service defines the remote authentication operations the store
// depends on. Login returns only a token; the identity behind it is
// derived by the store (see Store.Login).
type Service interface {
	Login(ctx context.Context, username, password string) (token string, err error)
	Signup(ctx context.Context, username, email, password string) (*SignupResult, error)
}
