package constant

// Account statuses.
const (
	StatusPending   = "PENDING"
	StatusActive    = "ACTIVE"
	StatusSuspended = "SUSPENDED"
)

// Roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// DefaultUserRole is assigned to every newly registered account.
const DefaultUserRole = RoleUser

// TokenTypeBearer is the token_type value returned with every issued pair.
const TokenTypeBearer = "Bearer"

// EmailVerificationValidity bounds how long a registration verification
// token stays usable, in hours.
const EmailVerificationValidity = 24
