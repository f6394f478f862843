package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pizza-service/internal/api/dto"
	"github.com/spec-kit/pizza-service/internal/service"
)

// OrderHandler exposes menu and order endpoints.
type OrderHandler struct {
	orders *service.OrderService
}

// NewOrderHandler constructs handler.
func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Menu handles GET /api/order/menu.
func (h *OrderHandler) Menu(c *fiber.Ctx) error {
	menu, err := h.orders.Menu(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(menu)
}

// AddMenuItem handles PUT /api/order/menu.
func (h *OrderHandler) AddMenuItem(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	var req dto.MenuItemRequest
	if err := parseAndValidate(c, &req, ""); err != nil {
		return err
	}
	menu, err := h.orders.AddMenuItem(c.UserContext(), user, req.MenuItem())
	if err != nil {
		return err
	}
	return c.JSON(menu)
}

// List handles GET /api/order.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	page, err := h.orders.Orders(c.UserContext(), user, queryInt(c, "page", 1))
	if err != nil {
		return err
	}
	return c.JSON(page)
}

// Create handles POST /api/order.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	var req dto.CreateOrderRequest
	if err := parseAndValidate(c, &req, ""); err != nil {
		return err
	}
	placed, err := h.orders.PlaceOrder(c.UserContext(), user, req.OrderRequest())
	if err != nil {
		return err
	}
	return c.JSON(dto.OrderResponse{Order: placed.Order, FollowLinkToEndChaos: placed.ReportURL, JWT: placed.JWT})
}
