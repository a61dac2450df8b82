package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mihabgit/auth-service/internal/auth/domain"
	autherror "github.com/mihabgit/auth-service/internal/errors"
)

// PgxIface is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type PgxIface interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PostgresRepository struct {
	db PgxIface
}

func NewPostgresRepository(db PgxIface) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, username, password_hash, first_name, last_name, status, role,
		failed_login_attempts, locked_until, last_login,
		email_verification_token, email_verification_expiry, mfa_enabled,
		created_at, updated_at`

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE email = $1 LIMIT 1`, userColumns)
	return r.scanUser(r.db.QueryRow(ctx, query, email))
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE username = $1 LIMIT 1`, userColumns)
	return r.scanUser(r.db.QueryRow(ctx, query, username))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1 LIMIT 1`, userColumns)
	return r.scanUser(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.Status, &user.Role,
		&user.FailedLoginAttempts, &user.LockedUntil, &user.LastLogin,
		&user.EmailVerificationToken, &user.EmailVerificationExpiry, &user.MfaEnabled,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	return &user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, email, username, password_hash, first_name, last_name,
			status, role, failed_login_attempts, email_verification_token,
			email_verification_expiry, mfa_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, user.ID, user.Email, user.Username, user.PasswordHash, user.FirstName,
		user.LastName, user.Status, user.Role, user.FailedLoginAttempts,
		user.EmailVerificationToken, user.EmailVerificationExpiry, user.MfaEnabled,
		user.CreatedAt, user.UpdatedAt)

	return err
}

// Update persists the mutable authentication fields: lockout counter, lock
// window and last login.
func (r *PostgresRepository) Update(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `
		UPDATE users
		SET failed_login_attempts = $1, locked_until = $2, last_login = $3, updated_at = now()
		WHERE id = $4
	`, user.FailedLoginAttempts, user.LockedUntil, user.LastLogin, user.ID)

	return err
}

func (r *PostgresRepository) StoreRefreshToken(ctx context.Context, rt *domain.RefreshToken) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token, ip_address, user_agent,
			expires_at, created_at, revoked)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, rt.ID, rt.UserID, rt.Token, rt.IPAddress, rt.UserAgent,
		rt.ExpiresAt, rt.CreatedAt, rt.Revoked)

	return err
}

func (r *PostgresRepository) GetRefreshToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, user_id, token, ip_address, user_agent, expires_at, created_at, revoked, revoked_at
		FROM refresh_tokens
		WHERE token = $1
		LIMIT 1
	`, token)

	var rt domain.RefreshToken
	err := row.Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.IPAddress, &rt.UserAgent,
		&rt.ExpiresAt, &rt.CreatedAt, &rt.Revoked, &rt.RevokedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return &rt, nil
}

// RevokeRefreshToken marks the token revoked. Revoking an already-revoked
// token matches the row and counts as success, which keeps logout
// idempotent.
func (r *PostgresRepository) RevokeRefreshToken(ctx context.Context, token string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked = TRUE, revoked_at = COALESCE(revoked_at, now())
		WHERE token = $1
	`, token)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return autherror.ErrRefreshTokenNotFound
	}

	return nil
}

func (r *PostgresRepository) RevokeAllForUser(ctx context.Context, userID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE refresh_tokens
		SET revoked = TRUE, revoked_at = now()
		WHERE user_id = $1 AND revoked = FALSE
	`, userID)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (r *PostgresRepository) GetActiveSessions(ctx context.Context, userID string, now time.Time) ([]domain.RefreshToken, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, token, ip_address, user_agent, expires_at, created_at, revoked, revoked_at
		FROM refresh_tokens
		WHERE user_id = $1 AND revoked = FALSE AND expires_at > $2
		ORDER BY created_at DESC
	`, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.RefreshToken
	for rows.Next() {
		var rt domain.RefreshToken
		if err := rows.Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.IPAddress, &rt.UserAgent,
			&rt.ExpiresAt, &rt.CreatedAt, &rt.Revoked, &rt.RevokedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, rt)
	}

	return sessions, rows.Err()
}

func (r *PostgresRepository) DeleteExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM refresh_tokens WHERE expires_at < $1
	`, now)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (r *PostgresRepository) RecordLoginAttempt(ctx context.Context, email, ip string, success bool) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO login_attempts (id, email, ip_address, attempt_time, successful)
		VALUES (gen_random_uuid(), $1, $2, now(), $3)
	`, email, ip, success)

	return err
}
