package domain

// Identity is the claim set signed into a token. It is immutable once signed.
type Identity struct {
	ID    int64            `json:"id"`
	Name  string           `json:"name"`
	Email string           `json:"email"`
	Roles []RoleAssignment `json:"roles"`
}

// Diner is the subset of an identity forwarded to the factory.
type Diner struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
