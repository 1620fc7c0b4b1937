package models

// Role segments the storefront's dashboards.
type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleBranch  Role = "branch"
	RoleCompany Role = "company"
)

// ParseRole maps the backend's ROLE_* names onto storefront roles,
// defaulting to the plain shopper role.
func ParseRole(s string) Role {
	switch s {
	case "ROLE_ADMIN", string(RoleAdmin):
		return RoleAdmin
	case "ROLE_EMPLOYEE", string(RoleBranch):
		return RoleBranch
	case "ROLE_COMPANY", string(RoleCompany):
		return RoleCompany
	default:
		return RoleUser
	}
}

// Profile is the signed-in shopper.
type Profile struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      Role   `json:"role"`
}

// SessionPhase is the session's tri-state flag collapsed to its two
// meaningful values; a missing or partial persisted triple reads as anonymous.
type SessionPhase string

const (
	PhaseAnonymous     SessionPhase = "anonymous"
	PhaseAuthenticated SessionPhase = "authenticated"
)

// SessionState is what the gate exposes to its consumers.
type SessionState struct {
	Phase   SessionPhase `json:"phase"`
	Profile *Profile     `json:"profile,omitempty"`
	GuestID string       `json:"guestId,omitempty"`
}

// LoginRequest carries sign-in credentials. Validation runs locally before
// any network call.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// SignUpRequest carries the client sign-up form. ConfirmPassword never
// leaves the process; a mismatch is a local validation failure.
type SignUpRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" validate:"required,eqfield=Password"`
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName,omitempty"`
	Phone           string `json:"phone,omitempty"`
}
