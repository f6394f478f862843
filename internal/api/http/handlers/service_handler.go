package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pizza-service/internal/api/dto"
)

// ServiceHandler serves the root greeting, the endpoint docs and the unknown-route fallback.
type ServiceHandler struct {
	version string
	config  dto.DocsConfig
	docs    func() []dto.EndpointDoc
}

// NewServiceHandler constructs handler. docs is read on every request so routes registered
// after construction are listed.
func NewServiceHandler(version string, config dto.DocsConfig, docs func() []dto.EndpointDoc) *ServiceHandler {
	return &ServiceHandler{version: version, config: config, docs: docs}
}

// Root handles GET /.
func (h *ServiceHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "welcome to JWT Pizza",
		"version": h.version,
	})
}

// Docs handles GET /api/docs.
func (h *ServiceHandler) Docs(c *fiber.Ctx) error {
	endpoints := []dto.EndpointDoc{}
	if h.docs != nil {
		endpoints = append(endpoints, h.docs()...)
	}
	return c.JSON(dto.DocsResponse{Version: h.version, Endpoints: endpoints, Config: h.config})
}

// NotFound answers any unmatched route.
func (h *ServiceHandler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.MessageResponse{Message: "unknown endpoint"})
}
