package dto

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/spec-kit/pizza-service/internal/domain"
)

// MenuItemRequest adds a pizza to the menu.
type MenuItemRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
	Price       float64 `json:"price"`
}

// Validate requires a title and a non-negative price.
func (r MenuItemRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required),
		validation.Field(&r.Price, validation.Min(0.0)),
	)
}

// MenuItem converts the request to a domain item.
func (r MenuItemRequest) MenuItem() domain.MenuItem {
	return domain.MenuItem{Title: r.Title, Description: r.Description, Image: r.Image, Price: r.Price}
}

// CreateOrderRequest payload.
type CreateOrderRequest struct {
	FranchiseID int64              `json:"franchiseId"`
	StoreID     int64              `json:"storeId"`
	Items       []domain.OrderItem `json:"items"`
}

// Validate requires a store and at least one item.
func (r CreateOrderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FranchiseID, validation.Required),
		validation.Field(&r.StoreID, validation.Required),
		validation.Field(&r.Items, validation.Required),
	)
}

// OrderRequest converts the request to a domain order request.
func (r CreateOrderRequest) OrderRequest() domain.OrderRequest {
	return domain.OrderRequest{FranchiseID: r.FranchiseID, StoreID: r.StoreID, Items: r.Items}
}

// OrderResponse is returned after the factory accepts an order.
type OrderResponse struct {
	Order                *domain.Order `json:"order"`
	FollowLinkToEndChaos string        `json:"followLinkToEndChaos,omitempty"`
	JWT                  string        `json:"jwt"`
}
