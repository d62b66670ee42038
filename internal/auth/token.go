// internal/auth/token.go
package auth

import "github.com/golang-jwt/jwt/v5"

// TokenClaims are the registered JWT claims plus the identity fields
// the storefront embeds in its access tokens.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"user_id"`
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

// identityFromToken derives the signed-in identity from a login
// response. The login endpoint returns only a token, so when the token
// is a JWT carrying identity claims those are trusted as the source;
// otherwise the submitted username is echoed back as a stand-in
// identity, which matches the remote API's observable behavior.
func identityFromToken(token, username string) Identity {
	claims := &TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err == nil && claims.UserID != 0 {
		id := Identity{ID: claims.UserID, Email: claims.Email, Username: claims.Username}
		if id.Username == "" {
			id.Username = username
		}
		if id.Email == "" {
			id.Email = id.Username
		}
		return id
	}
	return Identity{ID: 1, Email: username, Username: username}
}
