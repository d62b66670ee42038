// internal/fakestore/token.go
package fakestore

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"shopfront/internal/auth"
)

// issueToken signs an access token carrying the identity claims the
// client derives the signed-in user from.
func issueToken(id auth.Identity, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := auth.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "fakestore",
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:   id.ID,
		Username: id.Username,
		Email:    id.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
