package dto

import (
	"time"
)

// UserOutput is the public account summary. It never carries the password
// digest or lockout internals.
type UserOutput struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	FirstName  string     `json:"first_name,omitempty"`
	LastName   string     `json:"last_name,omitempty"`
	Status     string     `json:"status"`
	Role       string     `json:"role"`
	LastLogin  *time.Time `json:"last_login,omitempty"`
	MfaEnabled bool       `json:"mfa_enabled"`
	CreatedAt  time.Time  `json:"created_at"`
}

type SessionOutput struct {
	ID        string    `json:"id"`
	IPAddress string    `json:"ip_address"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
