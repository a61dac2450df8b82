package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mihabgit/auth-service/internal/auth/domain"
	"github.com/mihabgit/auth-service/internal/auth/dto"
	autherror "github.com/mihabgit/auth-service/internal/errors"
	"github.com/mihabgit/auth-service/pkg/constant"
)

// UserService composes the hasher, token codec, lockout tracker, refresh
// store and blacklist into the register/login/logout/validate flows. It is
// the only place business rules live.
type UserService struct {
	repo      domain.UserRepository
	tokens    TokenGenerator
	blacklist domain.TokenBlacklist
	hasher    *PasswordHasher
	lockout   *LockoutTracker
	log       *zap.Logger
}

func NewUserService(
	repo domain.UserRepository,
	tokens TokenGenerator,
	blacklist domain.TokenBlacklist,
	lockout *LockoutTracker,
	log *zap.Logger,
) *UserService {
	return &UserService{
		repo:      repo,
		tokens:    tokens,
		blacklist: blacklist,
		hasher:    NewPasswordHasher(),
		lockout:   lockout,
		log:       log,
	}
}

// Register creates a new active account. Both uniqueness checks run before
// any write so a duplicate reports the precise conflict. No tokens are
// issued; the caller logs in separately.
func (s *UserService) Register(ctx context.Context, input dto.RegisterInput) (*dto.RegisterOutput, error) {
	existing, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrEmailAlreadyInUse
	}

	existing, err = s.repo.GetByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, autherror.ErrUsernameAlreadyTaken
	}

	hashed, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	verificationExpiry := now.Add(constant.EmailVerificationValidity * time.Hour)

	user := &domain.User{
		ID:                      uuid.NewString(),
		Email:                   input.Email,
		Username:                input.Username,
		PasswordHash:            hashed,
		FirstName:               input.FirstName,
		LastName:                input.LastName,
		Status:                  constant.StatusActive,
		Role:                    constant.DefaultUserRole,
		FailedLoginAttempts:     0,
		EmailVerificationToken:  uuid.NewString(),
		EmailVerificationExpiry: &verificationExpiry,
		CreatedAt:               now,
		UpdatedAt:               now,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("user_id", user.ID))

	return &dto.RegisterOutput{
		ID:      user.ID,
		Email:   user.Email,
		Message: "Registration successful. Please verify your email.",
	}, nil
}

// Login authenticates an email/password pair and issues a token pair. The
// whole read-verify-write sequence holds the per-account lock so concurrent
// attempts cannot under-count failures.
func (s *UserService) Login(ctx context.Context, input dto.LoginInput) (*dto.TokenResponse, error) {
	release := s.lockout.Acquire(input.Email)
	defer release()

	user, err := s.repo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Same error as a wrong password; account existence stays hidden.
		s.recordAttempt(ctx, input.Email, input.IPAddress, false)
		return nil, autherror.ErrInvalidCredentials
	}

	now := time.Now()

	// A locked account never reaches the hasher: no wasted work, and the
	// caller gets a signal distinct from bad credentials.
	if s.lockout.IsLocked(user, now) {
		s.recordAttempt(ctx, input.Email, input.IPAddress, false)
		return nil, autherror.ErrAccountLocked
	}

	// Suspended accounts report the same error as bad credentials.
	if !user.IsEnabled() {
		s.recordAttempt(ctx, input.Email, input.IPAddress, false)
		return nil, autherror.ErrInvalidCredentials
	}

	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		if locked := s.lockout.RegisterFailure(user, now); locked {
			s.log.Warn("account locked after repeated failures",
				zap.String("user_id", user.ID),
				zap.Int("failed_attempts", user.FailedLoginAttempts))
		}
		if err := s.repo.Update(ctx, user); err != nil {
			s.log.Error("failed to persist failed-attempt counter",
				zap.String("user_id", user.ID), zap.Error(err))
		}
		s.recordAttempt(ctx, input.Email, input.IPAddress, false)
		return nil, autherror.ErrInvalidCredentials
	}

	s.lockout.Reset(user)
	user.LastLogin = &now
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	tokenPair, err := s.issueTokens(ctx, user, input.IPAddress, input.UserAgent)
	if err != nil {
		return nil, err
	}

	s.recordAttempt(ctx, input.Email, input.IPAddress, true)

	tokenPair.User = mapToUserOutput(user)

	return tokenPair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The presented
// token is revoked, so each refresh token is single-use.
func (s *UserService) Refresh(ctx context.Context, input dto.RefreshInput) (*dto.TokenResponse, error) {
	record, err := s.repo.GetRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, autherror.ErrRefreshTokenNotFound
	}
	if record.Revoked {
		return nil, autherror.ErrRefreshTokenRevoked
	}
	if record.IsExpired(time.Now()) {
		return nil, autherror.ErrRefreshTokenExpired
	}

	if err := s.repo.RevokeRefreshToken(ctx, record.Token); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, record.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	return s.issueTokens(ctx, user, input.IPAddress, input.UserAgent)
}

// Logout revokes the refresh token and blacklists the access token for the
// remainder of its lifetime. Blacklisting is best-effort: a transient
// blacklist failure does not fail the logout, it only leaves the access
// token usable until its (short) natural expiry.
func (s *UserService) Logout(ctx context.Context, input dto.LogoutInput) (*dto.MessageOutput, error) {
	record, err := s.repo.GetRefreshToken(ctx, input.RefreshToken)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, autherror.ErrRefreshTokenNotFound
	}

	if err := s.repo.RevokeRefreshToken(ctx, record.Token); err != nil {
		return nil, err
	}

	if input.AccessToken != "" {
		s.blacklistAccessToken(ctx, input.AccessToken)
	}

	return &dto.MessageOutput{Message: "Successfully logged out."}, nil
}

// LogoutAll revokes every active refresh token for the account and
// blacklists the presented access token.
func (s *UserService) LogoutAll(ctx context.Context, userID, accessToken string) (*dto.MessageOutput, error) {
	revoked, err := s.repo.RevokeAllForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if accessToken != "" {
		s.blacklistAccessToken(ctx, accessToken)
	}

	s.log.Info("revoked all sessions",
		zap.String("user_id", userID), zap.Int64("count", revoked))

	return &dto.MessageOutput{Message: "All sessions revoked."}, nil
}

// ValidateSession verifies the access token and rejects blacklisted ones.
// Claims are the authenticated identity; the account row is not re-read on
// every request.
func (s *UserService) ValidateSession(ctx context.Context, accessToken string) (*JWTCustomClaims, error) {
	claims, err := s.tokens.Verify(accessToken)
	if err != nil {
		return nil, err
	}

	revoked, err := s.blacklist.Contains(ctx, accessToken)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, autherror.ErrTokenRevoked
	}

	return claims, nil
}

// GetCurrentUser returns the public summary for a previously validated
// session.
func (s *UserService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserOutput, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, autherror.ErrUserNotFound
	}

	return mapToUserOutput(user), nil
}

// GetSessions lists the account's active refresh-token records, one per
// login that has not been revoked or expired.
func (s *UserService) GetSessions(ctx context.Context, userID string) ([]dto.SessionOutput, error) {
	records, err := s.repo.GetActiveSessions(ctx, userID, time.Now())
	if err != nil {
		return nil, err
	}

	sessions := make([]dto.SessionOutput, 0, len(records))
	for _, rt := range records {
		sessions = append(sessions, dto.SessionOutput{
			ID:        rt.ID,
			IPAddress: rt.IPAddress,
			UserAgent: rt.UserAgent,
			CreatedAt: rt.CreatedAt,
			ExpiresAt: rt.ExpiresAt,
		})
	}

	return sessions, nil
}

// PurgeExpiredTokens deletes refresh-token rows past expiry. Storage
// hygiene only; expired rows already fail every validity check.
func (s *UserService) PurgeExpiredTokens(ctx context.Context) error {
	deleted, err := s.repo.DeleteExpiredTokens(ctx, time.Now())
	if err != nil {
		return err
	}

	if deleted > 0 {
		s.log.Info("purged expired refresh tokens", zap.Int64("count", deleted))
	}

	return nil
}

func (s *UserService) issueTokens(ctx context.Context, user *domain.User, ip, userAgent string) (*dto.TokenResponse, error) {
	accessToken, err := s.tokens.GenerateAccessToken(user.ID, user.Email, user.Username, user.Role)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExpiry, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	record := &domain.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Token:     refreshToken,
		IPAddress: ip,
		UserAgent: userAgent,
		ExpiresAt: refreshExpiry,
		CreatedAt: time.Now(),
		Revoked:   false,
	}

	if err := s.repo.StoreRefreshToken(ctx, record); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    constant.TokenTypeBearer,
		ExpiresIn:    int64(s.tokens.AccessTokenTTL().Seconds()),
	}, nil
}

func (s *UserService) blacklistAccessToken(ctx context.Context, accessToken string) {
	expiry, err := s.tokens.ExpiryOf(accessToken)
	if err != nil {
		s.log.Warn("skipping blacklist of unverifiable access token", zap.Error(err))
		return
	}

	if err := s.blacklist.Add(ctx, accessToken, time.Until(expiry)); err != nil {
		s.log.Warn("failed to blacklist access token", zap.Error(err))
	}
}

func (s *UserService) recordAttempt(ctx context.Context, email, ip string, success bool) {
	if err := s.repo.RecordLoginAttempt(ctx, email, ip, success); err != nil {
		s.log.Warn("failed to record login attempt",
			zap.String("email", email), zap.Error(err))
	}
}

func mapToUserOutput(user *domain.User) *dto.UserOutput {
	return &dto.UserOutput{
		ID:         user.ID,
		Email:      user.Email,
		Username:   user.Username,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Status:     user.Status,
		Role:       user.Role,
		LastLogin:  user.LastLogin,
		MfaEnabled: user.MfaEnabled,
		CreatedAt:  user.CreatedAt,
	}
}
