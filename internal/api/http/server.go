package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NewServer builds the fiber app with the global middlewares and every route.
func NewServer(appName string, middlewares MiddlewareConfig, routes RouteConfig) *fiber.App {
	if middlewares.Logger == nil {
		middlewares.Logger = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		AppName:               appName,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(middlewares.Logger),
	})
	RegisterMiddlewares(app, middlewares)
	RegisterRoutes(app, routes)
	return app
}
