package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/mihabgit/auth-service/internal/auth/service TokenGenerator

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	autherror "github.com/mihabgit/auth-service/internal/errors"
)

// TokenGenerator is the codec surface the orchestrator and handlers use.
type TokenGenerator interface {
	GenerateAccessToken(userID, email, username, role string) (string, error)
	GenerateRefreshToken(userID string) (string, time.Time, error)
	Verify(tokenString string) (*JWTCustomClaims, error)
	ExpiryOf(tokenString string) (time.Time, error)
	AccessTokenTTL() time.Duration
	RefreshTokenTTL() time.Duration
}

// JWTCustomClaims is the access-token claim set. Refresh tokens carry only
// the registered claims so a replayed refresh token leaks no identity
// attributes.
type JWTCustomClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
	Roles    string `json:"roles,omitempty"`
}

// TokenService signs and verifies HS256 tokens with a single symmetric key.
// The key is set once at construction and only ever read afterwards, so it
// is safe for concurrent use.
type TokenService struct {
	signingKey         []byte
	issuer             string
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

func NewTokenService(secret, issuer string, accessMinutes, refreshMinutes int) *TokenService {
	return &TokenService{
		signingKey:         []byte(secret),
		issuer:             issuer,
		accessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
		refreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
	}
}

func (ts *TokenService) GenerateAccessToken(userID, email, username, role string) (string, error) {
	now := time.Now()

	claims := JWTCustomClaims{
		Email:    email,
		Username: username,
		Roles:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    ts.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.accessTokenExpiry)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.signingKey)
}

func (ts *TokenService) GenerateRefreshToken(userID string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.refreshTokenExpiry)

	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    ts.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.signingKey)
	if err != nil {
		return "", time.Time{}, err
	}

	return token, expiresAt, nil
}

// Verify checks signature and expiry, returning a distinct error for each
// failure mode so callers can report them apart.
func (ts *TokenService) Verify(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, ts.keyFunc)
	if err != nil {
		return nil, mapJWTError(err)
	}

	if !token.Valid {
		return nil, autherror.ErrTokenInvalid
	}

	return claims, nil
}

// ExpiryOf extracts the expiry claim without requiring the token to still
// be within its validity window. The signature is still verified; otherwise
// a forged expiry could be used to stretch blacklist TTLs.
func (ts *TokenService) ExpiryOf(tokenString string) (time.Time, error) {
	claims := &JWTCustomClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	if _, err := parser.ParseWithClaims(tokenString, claims, ts.keyFunc); err != nil {
		return time.Time{}, mapJWTError(err)
	}

	if claims.ExpiresAt == nil {
		return time.Time{}, autherror.ErrTokenInvalidClaims
	}

	return claims.ExpiresAt.Time, nil
}

func (ts *TokenService) AccessTokenTTL() time.Duration {
	return ts.accessTokenExpiry
}

func (ts *TokenService) RefreshTokenTTL() time.Duration {
	return ts.refreshTokenExpiry
}

func (ts *TokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, autherror.ErrTokenUnsupported
	}
	return ts.signingKey, nil
}

func mapJWTError(err error) error {
	switch {
	case errors.Is(err, autherror.ErrTokenUnsupported):
		return autherror.ErrTokenUnsupported
	case errors.Is(err, jwt.ErrTokenMalformed):
		return autherror.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenExpired):
		return autherror.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return autherror.ErrTokenUnsupported
	case errors.Is(err, jwt.ErrTokenInvalidClaims):
		return autherror.ErrTokenInvalidClaims
	default:
		return autherror.ErrTokenInvalid
	}
}
