package domain

// FranchiseAdmin is a user allowed to manage a franchise.
type FranchiseAdmin struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

// Store is a physical location belonging to a franchise.
type Store struct {
	ID           int64    `json:"id"`
	FranchiseID  int64    `json:"franchiseId,omitempty"`
	Name         string   `json:"name"`
	TotalRevenue *float64 `json:"totalRevenue,omitempty"`
}

// Franchise groups stores under a set of administrators.
type Franchise struct {
	ID     int64            `json:"id"`
	Name   string           `json:"name"`
	Admins []FranchiseAdmin `json:"admins"`
	Stores []Store          `json:"stores"`
}

// HasAdmin reports whether userID appears in the franchise admin list.
func (f *Franchise) HasAdmin(userID int64) bool {
	if f == nil {
		return false
	}
	for _, admin := range f.Admins {
		if admin.ID == userID {
			return true
		}
	}
	return false
}

// ListQuery holds paging and a name filter. A Name of "*" matches everything.
type ListQuery struct {
	Page  int
	Limit int
	Name  string
}
