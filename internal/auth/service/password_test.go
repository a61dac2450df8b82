package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasher_RoundTrip(t *testing.T) {
	hasher := NewPasswordHasher()

	digest, err := hasher.Hash("Passw0rd!")
	require.NoError(t, err)
	assert.NotEqual(t, "Passw0rd!", digest)
	assert.True(t, strings.HasPrefix(digest, "$2"))

	assert.True(t, hasher.Verify("Passw0rd!", digest))
	assert.False(t, hasher.Verify("passw0rd!", digest))
	assert.False(t, hasher.Verify("", digest))
}

func TestPasswordHasher_SaltedDigests(t *testing.T) {
	hasher := NewPasswordHasher()

	a, err := hasher.Hash("Passw0rd!")
	require.NoError(t, err)
	b, err := hasher.Hash("Passw0rd!")
	require.NoError(t, err)

	// Same plaintext, different salt, different digest.
	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_VerifyGarbageDigest(t *testing.T) {
	hasher := NewPasswordHasher()

	assert.False(t, hasher.Verify("Passw0rd!", "not-a-bcrypt-digest"))
}
