package auth

import "github.com/spec-kit/pizza-service/internal/domain"

// AuthState describes what the auth pipeline learned about a request.
type AuthState uint8

const (
	// StateAbsent means no usable credentials: no header, or a token without a live session.
	StateAbsent AuthState = iota
	// StateInvalid means a token was presented but failed verification.
	StateInvalid
	// StateAuthenticated means the token verified and its session is live.
	StateAuthenticated
)

func (s AuthState) String() string {
	switch s {
	case StateInvalid:
		return "invalid"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "absent"
	}
}

// AuthUser is the request-scoped view of the caller.
type AuthUser struct {
	domain.Identity
}

// NewAuthUser copies the identity so later mutation of the source cannot change the roles.
func NewAuthUser(identity domain.Identity) AuthUser {
	roles := make([]domain.RoleAssignment, len(identity.Roles))
	copy(roles, identity.Roles)
	identity.Roles = roles
	return AuthUser{Identity: identity}
}

// IsRole reports whether the user holds role in any scope.
func (u AuthUser) IsRole(role domain.Role) bool {
	for _, assignment := range u.Roles {
		if assignment.Role == role {
			return true
		}
	}
	return false
}

// Diner returns the identity subset forwarded with orders.
func (u AuthUser) Diner() domain.Diner {
	return domain.Diner{ID: u.ID, Name: u.Name, Email: u.Email}
}

// Authentication is the tagged outcome stored on each request. User is set only when
// State is StateAuthenticated.
type Authentication struct {
	State AuthState
	User  *AuthUser
	Token string
}

// Authenticated reports whether the request carries a live, verified session.
func (a Authentication) Authenticated() bool {
	return a.State == StateAuthenticated && a.User != nil
}
