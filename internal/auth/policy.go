package auth

import "github.com/spec-kit/pizza-service/internal/domain"

// IsAdmin reports whether the user holds the global admin role.
func IsAdmin(user *AuthUser) bool {
	return user != nil && user.IsRole(domain.RoleAdmin)
}

// CanActOnUser allows users to act on their own account, and admins on any account.
func CanActOnUser(user *AuthUser, targetUserID int64) bool {
	if user == nil {
		return false
	}
	return user.ID == targetUserID || IsAdmin(user)
}

// CanManageFranchise allows admins and the franchise's own admins. A nil franchise is denied
// to everyone.
func CanManageFranchise(user *AuthUser, franchise *domain.Franchise) bool {
	if user == nil || franchise == nil {
		return false
	}
	return IsAdmin(user) || franchise.HasAdmin(user.ID)
}
