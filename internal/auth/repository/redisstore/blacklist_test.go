package redisstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihabgit/auth-service/internal/auth/repository/redisstore"
)

func newTestBlacklist(t *testing.T) (*redisstore.TokenBlacklist, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redisstore.NewTokenBlacklist(client), mr
}

func TestTokenBlacklist_AddAndContains(t *testing.T) {
	bl, _ := newTestBlacklist(t)
	ctx := context.Background()

	require.NoError(t, bl.Add(ctx, "some-access-token", time.Minute))

	found, err := bl.Contains(ctx, "some-access-token")
	require.NoError(t, err)
	assert.True(t, found)

	found, err = bl.Contains(ctx, "another-token")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTokenBlacklist_EntryExpiresWithTTL(t *testing.T) {
	bl, mr := newTestBlacklist(t)
	ctx := context.Background()

	require.NoError(t, bl.Add(ctx, "short-lived", 30*time.Second))

	found, err := bl.Contains(ctx, "short-lived")
	require.NoError(t, err)
	assert.True(t, found)

	// Past the token's own expiry the entry is gone without any cleanup.
	mr.FastForward(31 * time.Second)

	found, err = bl.Contains(ctx, "short-lived")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTokenBlacklist_NonPositiveTTLIsNoop(t *testing.T) {
	bl, _ := newTestBlacklist(t)
	ctx := context.Background()

	require.NoError(t, bl.Add(ctx, "already-expired", 0))
	require.NoError(t, bl.Add(ctx, "already-expired", -time.Minute))

	found, err := bl.Contains(ctx, "already-expired")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTokenBlacklist_EmptyToken(t *testing.T) {
	bl, _ := newTestBlacklist(t)
	ctx := context.Background()

	require.NoError(t, bl.Add(ctx, "", time.Minute))

	found, err := bl.Contains(ctx, "")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTokenBlacklist_Clear(t *testing.T) {
	bl, _ := newTestBlacklist(t)
	ctx := context.Background()

	require.NoError(t, bl.Add(ctx, "token-a", time.Minute))
	require.NoError(t, bl.Add(ctx, "token-b", time.Minute))

	require.NoError(t, bl.Clear(ctx))

	for _, token := range []string{"token-a", "token-b"} {
		found, err := bl.Contains(ctx, token)
		require.NoError(t, err)
		assert.False(t, found)
	}
}
