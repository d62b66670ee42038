// internal/fakestore/password_test.go
package fakestore

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordRoundtrip(t *testing.T) {
	credential, err := hashPassword("m38rmF$")
	require.NoError(t, err)
	require.Contains(t, credential, ".")

	match, err := verifyPassword("m38rmF$", credential)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = verifyPassword("wrong", credential)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestHashPasswordSaltsEachCredential(t *testing.T) {
	first, err := hashPassword("secret1")
	require.NoError(t, err)
	second, err := hashPassword("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestVerifyPasswordMalformedCredential(t *testing.T) {
	for _, credential := range []string{"", "no-separator", "!badbase64.AAAA", strings.Repeat(".", 3)} {
		_, err := verifyPassword("secret1", credential)
		assert.Error(t, err, "credential %q", credential)
	}
}
