package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/pizza-service/internal/domain"
)

// FranchiseAdminRef names a franchise admin by email.
type FranchiseAdminRef struct {
	Email string `json:"email"`
}

// CreateFranchiseRequest payload.
type CreateFranchiseRequest struct {
	Name   string              `json:"name"`
	Admins []FranchiseAdminRef `json:"admins"`
}

// Validate requires a name.
func (r CreateFranchiseRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
	)
}

// Franchise converts the request to a domain franchise.
func (r CreateFranchiseRequest) Franchise() domain.Franchise {
	admins := make([]domain.FranchiseAdmin, 0, len(r.Admins))
	for _, admin := range r.Admins {
		admins = append(admins, domain.FranchiseAdmin{Email: admin.Email})
	}
	return domain.Franchise{Name: r.Name, Admins: admins}
}

// CreateStoreRequest payload.
type CreateStoreRequest struct {
	Name string `json:"name"`
}

// Validate requires a name.
func (r CreateStoreRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
	)
}

// FranchiseListResponse is one page of franchises.
type FranchiseListResponse struct {
	Franchises []domain.Franchise `json:"franchises"`
	More       bool               `json:"more"`
}
