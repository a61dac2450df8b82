package errors

import (
	"errors"
)

// Registration conflicts.
var (
	ErrEmailAlreadyInUse    = errors.New("email already in use")
	ErrUsernameAlreadyTaken = errors.New("username already taken")
)

// Authentication failures. ErrInvalidCredentials deliberately covers both
// "unknown email" and "wrong password" so callers cannot probe for accounts.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is locked, try again later")
)

// Access-token verification failures, one per codec outcome.
var (
	ErrTokenMalformed     = errors.New("malformed token")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenUnsupported   = errors.New("unsupported token")
	ErrTokenInvalidClaims = errors.New("unparseable token claims")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")
)

// Refresh-token store failures.
var (
	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenRevoked  = errors.New("refresh token revoked")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
)

// ErrUserNotFound signals a stale session or internal inconsistency: the
// token verified but the account it names no longer resolves.
var ErrUserNotFound = errors.New("user not found")
