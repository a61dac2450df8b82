package domain

import "time"

type User struct {
	ID                      string
	Email                   string
	Username                string
	PasswordHash            string
	FirstName               string
	LastName                string
	Status                  string
	Role                    string
	FailedLoginAttempts     int
	LockedUntil             *time.Time
	LastLogin               *time.Time
	EmailVerificationToken  string
	EmailVerificationExpiry *time.Time
	MfaEnabled              bool
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsLocked reports whether the account is under a lockout window at the
// given instant. A nil or elapsed LockedUntil means unlocked; the lock
// lapses by wall clock, no state change required.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// IsEnabled reports whether the account may authenticate at all.
func (u *User) IsEnabled() bool {
	return u.Status == "ACTIVE"
}

type RefreshToken struct {
	ID        string
	UserID    string
	Token     string
	IPAddress string
	UserAgent string
	ExpiresAt time.Time
	CreatedAt time.Time
	Revoked   bool
	RevokedAt *time.Time
}

// IsExpired reports whether the token is past its expiry.
func (rt *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(rt.ExpiresAt)
}

type LoginAttempt struct {
	ID          string
	Email       string
	IPAddress   string
	AttemptTime time.Time
	Successful  bool
}
