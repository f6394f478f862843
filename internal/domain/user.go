package domain

// Role represents a user's capability within the pizza service.
type Role string

const (
	RoleDiner      Role = "diner"
	RoleFranchisee Role = "franchisee"
	RoleAdmin      Role = "admin"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleDiner, RoleFranchisee, RoleAdmin:
		return true
	}
	return false
}

// RoleAssignment binds a role to a user, optionally scoped to an object.
// Franchisee assignments carry the franchise id in ObjectID.
type RoleAssignment struct {
	Role     Role   `json:"role"`
	ObjectID *int64 `json:"objectId,omitempty"`
}

// User is the domain model for accounts. PasswordHash never leaves the repository layer.
type User struct {
	ID           int64            `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Roles        []RoleAssignment `json:"roles"`
	PasswordHash string           `json:"-"`
}

// Identity returns the claim set embedded into issued tokens.
func (u *User) Identity() Identity {
	roles := make([]RoleAssignment, len(u.Roles))
	copy(roles, u.Roles)
	return Identity{ID: u.ID, Name: u.Name, Email: u.Email, Roles: roles}
}

// UserPatch carries the optional fields of a user update.
type UserPatch struct {
	Name     string
	Email    string
	Password string
}
