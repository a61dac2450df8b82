package domain

import (
	"context"
	"time"
)

//go:generate mockgen -destination=../../mocks/mock_user_repository.go -package=mocks github.com/mihabgit/auth-service/internal/auth/domain UserRepository,TokenBlacklist

// UserRepository is the persistence surface the auth services depend on.
// Get* methods return (nil, nil) when the record does not exist.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, user *User) error
	Update(ctx context.Context, user *User) error

	StoreRefreshToken(ctx context.Context, rt *RefreshToken) error
	GetRefreshToken(ctx context.Context, token string) (*RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) (int64, error)
	GetActiveSessions(ctx context.Context, userID string, now time.Time) ([]RefreshToken, error)
	DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error)

	RecordLoginAttempt(ctx context.Context, email, ip string, success bool) error
}

// TokenBlacklist holds access tokens that must be rejected before their
// natural expiry. Entries self-expire; there is no explicit removal.
type TokenBlacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
	Clear(ctx context.Context) error
}
