package models

import "strings"

// Keys of the persisted client state.
const (
	TokenStorageKey = "financeFlowToken"
	UserStorageKey  = "financeFlowUser"
)

// Role decides which dashboard a session may reach.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole normalizes a role name; an empty string means RoleUser.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "user", "customer":
		return RoleUser, nil
	case "admin", "administrator":
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// HomeRoute is the dashboard path for the role.
func (r Role) HomeRoute() string {
	if r == RoleAdmin {
		return "/admin"
	}
	return "/dashboard"
}

// User is the identity record persisted under UserStorageKey.
type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	AccountNumber string `json:"accountNumber"`
	Role          Role   `json:"role"`
}

// SessionState is the state of the session store.
type SessionState int

const (
	StateUnauthenticated SessionState = iota
	StateAuthenticating
	StateAuthenticated
)

func (s SessionState) String() string {
	switch s {
	case StateAuthenticating:
		return "authenticating"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// MarshalText renders the state by name in JSON bodies.
func (s SessionState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Session is a snapshot of the session store.
// swagger:model Session
type Session struct {
	State SessionState `json:"state" swaggertype:"string" example:"authenticated"`
	User  *User        `json:"user,omitempty"`
	Token string       `json:"-"`
}

// Authenticated reports whether the snapshot carries a usable identity.
func (s Session) Authenticated() bool {
	return s.State == StateAuthenticated && s.User != nil
}

// AccountNumber returns the signed-in account or "".
func (s Session) AccountNumber() string {
	if s.User == nil {
		return ""
	}
	return s.User.AccountNumber
}

// HasRole reports whether the session is authenticated with the given role.
func (s Session) HasRole(role Role) bool {
	return s.Authenticated() && s.User.Role == role
}
