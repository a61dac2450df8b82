package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistPrefix = "blacklist:token:"

// TokenBlacklist stores revoked access tokens as Redis keys whose TTL equals
// the token's remaining lifetime. Redis expiry does the cleanup, so the set
// never outgrows the number of simultaneously-valid revoked tokens.
type TokenBlacklist struct {
	client redis.UniversalClient
}

func NewTokenBlacklist(client redis.UniversalClient) *TokenBlacklist {
	return &TokenBlacklist{client: client}
}

// Add inserts the token for the given TTL. A non-positive TTL means the
// token has already expired and there is nothing to protect against.
func (b *TokenBlacklist) Add(ctx context.Context, token string, ttl time.Duration) error {
	if token == "" || ttl <= 0 {
		return nil
	}

	if err := b.client.Set(ctx, blacklistPrefix+token, "revoked", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token: %w", err)
	}

	return nil
}

func (b *TokenBlacklist) Contains(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	n, err := b.client.Exists(ctx, blacklistPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check blacklist: %w", err)
	}

	return n > 0, nil
}

// Clear wipes every blacklist entry. Maintenance only, not part of any
// request flow.
func (b *TokenBlacklist) Clear(ctx context.Context) error {
	iter := b.client.Scan(ctx, 0, blacklistPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := b.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to clear blacklist: %w", err)
		}
	}

	return iter.Err()
}
