package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pizza-service/internal/api/dto"
	"github.com/spec-kit/pizza-service/internal/domain"
	"github.com/spec-kit/pizza-service/internal/service"
)

// FranchiseHandler exposes franchise and store endpoints.
type FranchiseHandler struct {
	franchises  *service.FranchiseService
	listPerPage int
}

// NewFranchiseHandler constructs handler.
func NewFranchiseHandler(franchises *service.FranchiseService, listPerPage int) *FranchiseHandler {
	if listPerPage <= 0 {
		listPerPage = 10
	}
	return &FranchiseHandler{franchises: franchises, listPerPage: listPerPage}
}

// List handles GET /api/franchise. Pages start at 0.
func (h *FranchiseHandler) List(c *fiber.Ctx) error {
	query := domain.ListQuery{
		Page:  queryInt(c, "page", 0),
		Limit: queryInt(c, "limit", h.listPerPage),
		Name:  c.Query("name", "*"),
	}
	franchises, more, err := h.franchises.ListFranchises(c.UserContext(), currentUser(c), query)
	if err != nil {
		return err
	}
	return c.JSON(dto.FranchiseListResponse{Franchises: franchises, More: more})
}

// ListForUser handles GET /api/franchise/:userId.
func (h *FranchiseHandler) ListForUser(c *fiber.Ctx) error {
	userID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	franchises, err := h.franchises.UserFranchises(c.UserContext(), currentUser(c), userID)
	if err != nil {
		return err
	}
	return c.JSON(franchises)
}

// Create handles POST /api/franchise.
func (h *FranchiseHandler) Create(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateFranchiseRequest
	if err := parseAndValidate(c, &req, ""); err != nil {
		return err
	}
	franchise, err := h.franchises.CreateFranchise(c.UserContext(), user, req.Franchise())
	if err != nil {
		return err
	}
	return c.JSON(franchise)
}

// Delete handles DELETE /api/franchise/:franchiseId.
func (h *FranchiseHandler) Delete(c *fiber.Ctx) error {
	franchiseID, err := paramID(c, "franchiseId")
	if err != nil {
		return err
	}
	if err := h.franchises.DeleteFranchise(c.UserContext(), franchiseID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "franchise deleted"})
}

// CreateStore handles POST /api/franchise/:franchiseId/store.
func (h *FranchiseHandler) CreateStore(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	franchiseID, err := paramID(c, "franchiseId")
	if err != nil {
		return err
	}
	var req dto.CreateStoreRequest
	if err := parseAndValidate(c, &req, ""); err != nil {
		return err
	}
	store, err := h.franchises.CreateStore(c.UserContext(), user, franchiseID, domain.Store{Name: req.Name})
	if err != nil {
		return err
	}
	return c.JSON(store)
}

// DeleteStore handles DELETE /api/franchise/:franchiseId/store/:storeId.
func (h *FranchiseHandler) DeleteStore(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	franchiseID, err := paramID(c, "franchiseId")
	if err != nil {
		return err
	}
	storeID, err := paramID(c, "storeId")
	if err != nil {
		return err
	}
	if err := h.franchises.DeleteStore(c.UserContext(), user, franchiseID, storeID); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "store deleted"})
}
