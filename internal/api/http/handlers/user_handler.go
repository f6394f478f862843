package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pizza-service/internal/api/dto"
	"github.com/spec-kit/pizza-service/internal/domain"
	"github.com/spec-kit/pizza-service/internal/service"
)

// UserHandler exposes profile endpoints.
type UserHandler struct {
	users       *service.UserService
	listPerPage int
}

// NewUserHandler constructs handler.
func NewUserHandler(users *service.UserService, listPerPage int) *UserHandler {
	if listPerPage <= 0 {
		listPerPage = 10
	}
	return &UserHandler{users: users, listPerPage: listPerPage}
}

// Me handles GET /api/user/me.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	return c.JSON(user.Identity)
}

// Update handles PUT /api/user/:userId.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	targetID, err := paramID(c, "userId")
	if err != nil {
		return err
	}
	var req dto.UpdateUserRequest
	if err := parseAndValidate(c, &req, ""); err != nil {
		return err
	}

	updated, token, err := h.users.UpdateUser(c.UserContext(), user, targetID, req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(dto.AuthResponse{User: updated, Token: token})
}

// Delete handles DELETE /api/user/:userId. Account deletion is not offered.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	return c.JSON(dto.MessageResponse{Message: "not implemented"})
}

// List handles GET /api/user.
func (h *UserHandler) List(c *fiber.Ctx) error {
	query := domain.ListQuery{
		Page:  queryInt(c, "page", 1),
		Limit: queryInt(c, "limit", h.listPerPage),
		Name:  c.Query("name", "*"),
	}
	users, more, err := h.users.ListUsers(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(dto.UserListResponse{Users: users, More: more})
}
