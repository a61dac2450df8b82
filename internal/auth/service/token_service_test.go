package service

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	autherror "github.com/mihabgit/auth-service/internal/errors"
)

const (
	testSecret = "test-signing-secret"
	testIssuer = "auth-service-test"
)

func newTestTokenService(accessMinutes, refreshMinutes int) *TokenService {
	return NewTokenService(testSecret, testIssuer, accessMinutes, refreshMinutes)
}

func TestNewTokenService(t *testing.T) {
	ts := newTestTokenService(15, 10080)

	assert.NotNil(t, ts)
	assert.Equal(t, 15*time.Minute, ts.AccessTokenTTL())
	assert.Equal(t, 10080*time.Minute, ts.RefreshTokenTTL())
}

func TestTokenService_GenerateAccessToken(t *testing.T) {
	tests := []struct {
		name     string
		userID   string
		email    string
		username string
		role     string
	}{
		{
			name:     "regular user",
			userID:   "user-123",
			email:    "alice@example.com",
			username: "alice",
			role:     "user",
		},
		{
			name:     "admin user",
			userID:   "admin-456",
			email:    "admin@example.com",
			username: "admin",
			role:     "admin",
		},
	}

	ts := newTestTokenService(15, 10080)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := ts.GenerateAccessToken(tt.userID, tt.email, tt.username, tt.role)
			require.NoError(t, err)
			require.NotEmpty(t, token)

			// Compact JWS: three dot-separated segments.
			assert.Len(t, strings.Split(token, "."), 3)

			claims, err := ts.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, tt.userID, claims.Subject)
			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.username, claims.Username)
			assert.Equal(t, tt.role, claims.Roles)
			assert.Equal(t, testIssuer, claims.Issuer)
			assert.WithinDuration(t, time.Now().Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
		})
	}
}

func TestTokenService_GenerateRefreshToken_MinimalClaims(t *testing.T) {
	ts := newTestTokenService(15, 10080)

	token, expiresAt, err := ts.GenerateRefreshToken("user-123")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(10080*time.Minute), expiresAt, 5*time.Second)

	claims, err := ts.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.Subject)

	// Refresh tokens must not leak identity attributes.
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.Username)
	assert.Empty(t, claims.Roles)
}

func TestTokenService_Verify_ErrorKinds(t *testing.T) {
	ts := newTestTokenService(15, 10080)

	expiredTS := newTestTokenService(-1, 10080)
	expiredToken, err := expiredTS.GenerateAccessToken("user-123", "a@x.com", "alice", "user")
	require.NoError(t, err)

	otherTS := NewTokenService("a-different-secret", testIssuer, 15, 10080)
	forgedToken, err := otherTS.GenerateAccessToken("user-123", "a@x.com", "alice", "user")
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-123",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "malformed", token: "not-a-jwt", wantErr: autherror.ErrTokenMalformed},
		{name: "expired", token: expiredToken, wantErr: autherror.ErrTokenExpired},
		{name: "forged signature", token: forgedToken, wantErr: autherror.ErrTokenInvalid},
		{name: "unsupported algorithm", token: noneToken, wantErr: autherror.ErrTokenUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ts.Verify(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTokenService_ExpiryOf(t *testing.T) {
	ts := newTestTokenService(15, 10080)

	t.Run("valid token", func(t *testing.T) {
		token, err := ts.GenerateAccessToken("user-123", "a@x.com", "alice", "user")
		require.NoError(t, err)

		expiry, err := ts.ExpiryOf(token)
		require.NoError(t, err)
		assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiry, 5*time.Second)
	})

	t.Run("expired token still yields its expiry", func(t *testing.T) {
		expiredTS := newTestTokenService(-1, 10080)
		token, err := expiredTS.GenerateAccessToken("user-123", "a@x.com", "alice", "user")
		require.NoError(t, err)

		expiry, err := expiredTS.ExpiryOf(token)
		require.NoError(t, err)
		assert.True(t, expiry.Before(time.Now()))
	})

	t.Run("forged token rejected", func(t *testing.T) {
		otherTS := NewTokenService("a-different-secret", testIssuer, 15, 10080)
		token, err := otherTS.GenerateAccessToken("user-123", "a@x.com", "alice", "user")
		require.NoError(t, err)

		// A forged expiry must not be able to stretch blacklist TTLs.
		_, err = ts.ExpiryOf(token)
		assert.Error(t, err)
	})
}
