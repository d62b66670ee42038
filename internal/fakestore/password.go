// internal/fakestore/password.go
package fakestore

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters per the OWASP low-memory recommendation.
const (
	argonTime    = 2
	argonMemory  = 19 * 1024
	argonThreads = 1
	argonKeyLen  = 32
	argonSaltLen = 16
)

var errBadCredential = errors.New("malformed stored credential")

// hashPassword derives a single storable credential string of the form
// "<base64 salt>.<base64 key>".
func hashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return base64.RawStdEncoding.EncodeToString(salt) + "." +
		base64.RawStdEncoding.EncodeToString(key), nil
}

// verifyPassword reports whether password matches a stored credential.
// The key comparison runs in constant time.
func verifyPassword(password, credential string) (bool, error) {
	saltPart, keyPart, found := strings.Cut(credential, ".")
	if !found {
		return false, errBadCredential
	}

	salt, err := base64.RawStdEncoding.DecodeString(saltPart)
	if err != nil {
		return false, errBadCredential
	}
	key, err := base64.RawStdEncoding.DecodeString(keyPart)
	if err != nil {
		return false, errBadCredential
	}

	candidate := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, candidate) == 1, nil
}
