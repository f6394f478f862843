package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/pizza-service/internal/api/dto"
	"github.com/spec-kit/pizza-service/internal/api/http/handlers"
	"github.com/spec-kit/pizza-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Version        string
	DocsConfig     dto.DocsConfig
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UserHandler
	Franchises     *handlers.FranchiseHandler
	Orders         *handlers.OrderHandler
	AuthMiddleware *auth.AuthMiddleware
}

// docRegistry registers routes and records them for GET /api/docs.
type docRegistry struct {
	endpoints []dto.EndpointDoc
}

func (r *docRegistry) handle(router fiber.Router, prefix, method, path string, doc dto.EndpointDoc, chain ...fiber.Handler) {
	router.Add(method, path, chain...)
	doc.Method = method
	doc.Path = prefix + path
	r.endpoints = append(r.endpoints, doc)
}

func (r *docRegistry) list() []dto.EndpointDoc {
	out := make([]dto.EndpointDoc, len(r.endpoints))
	copy(out, r.endpoints)
	return out
}

// RegisterRoutes wires HTTP routes. Every request first passes through DeriveUser; routes that
// need a caller add RequireAuthenticated.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	docs := &docRegistry{}
	service := handlers.NewServiceHandler(cfg.Version, cfg.DocsConfig, docs.list)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Use(cfg.AuthMiddleware.DeriveUser)
	authed := cfg.AuthMiddleware.RequireAuthenticated
	admin := auth.RequireAdmin()

	app.Get("/", service.Root)
	app.Get("/api/docs", service.Docs)

	authGroup := app.Group("/api/auth")
	docs.handle(authGroup, "/api/auth", fiber.MethodPost, "", dto.EndpointDoc{
		Description: "Register a new user",
		Example:     `curl -X POST localhost:3000/api/auth -d '{"name":"pizza diner", "email":"d@jwt.com", "password":"diner"}' -H 'Content-Type: application/json'`,
		Response:    fiber.Map{"user": fiber.Map{"id": 2, "name": "pizza diner", "email": "d@jwt.com", "roles": []fiber.Map{{"role": "diner"}}}, "token": "tttttt"},
	}, cfg.Auth.Register)
	docs.handle(authGroup, "/api/auth", fiber.MethodPut, "", dto.EndpointDoc{
		Description: "Login existing user",
		Example:     `curl -X PUT localhost:3000/api/auth -d '{"email":"a@jwt.com", "password":"admin"}' -H 'Content-Type: application/json'`,
		Response:    fiber.Map{"user": fiber.Map{"id": 1, "name": "常用名字", "email": "a@jwt.com", "roles": []fiber.Map{{"role": "admin"}}}, "token": "tttttt"},
	}, cfg.Auth.Login)
	docs.handle(authGroup, "/api/auth", fiber.MethodDelete, "", dto.EndpointDoc{
		RequiresAuth: true,
		Description:  "Logout a user",
		Example:      `curl -X DELETE localhost:3000/api/auth -H 'Authorization: Bearer tttttt'`,
		Response:     dto.MessageResponse{Message: "logout successful"},
	}, authed, cfg.Auth.Logout)

	userGroup := app.Group("/api/user")
	docs.handle(userGroup, "/api/user", fiber.MethodGet, "/me", dto.EndpointDoc{
		RequiresAuth: true,
		Description:  "Get authenticated user",
		Example:      `curl -X GET localhost:3000/api/user/me -H 'Authorization: Bearer tttttt'`,
		Response:     fiber.Map{"id": 1, "name": "常用名字", "email": "a@jwt.com", "roles": []fiber.Map{{"role": "admin"}}},
	}, authed, cfg.Users.Me)
	docs.handle(userGroup, "/api/user", fiber.MethodPut, "/:userId", dto.EndpointDoc{
		RequiresAuth: true,
		Description:  "Update user",
		Example:      `curl -X PUT localhost:3000/api/user/1 -d '{"name":"常用名字", "email":"a@jwt.com", "password":"admin"}' -H 'Content-Type: application/json' -H 'Authorization: Bearer tttttt'`,
		Response:     fiber.Map{"user": fiber.Map{"id": 1, "name": "常用名字", "email": "a@jwt.com", "roles": []fiber.Map{{"role": "admin"}}}, "token": "tttttt"},
	}, authed, cfg.Users.Update)
	docs.handle(userGroup, "/api/user", fiber.MethodDelete, "/:userId", dto.EndpointDoc{
		RequiresAuth: true,
		Description:  "Delete user",
		Example:      `curl -X DELETE localhost:3000/api/user/1 -H 'Authorization: Bearer tttttt'`,
		Response:     dto.MessageResponse{Message: "not implemented"},
	}, authed, cfg.Users.Delete)
	docs.handle(userGroup, "/api/user", fiber.MethodGet, "", dto.EndpointDoc{
		RequiresAuth: true,
		Description:  "Gets a list of users",
		Example:      `curl -X GET 'localhost:3000/api/user?page=1&limit=10&name=*' -H 'Authorization: Bearer tttttt'`,
		Response:     fiber.Map{"users": []fiber.Map{{"id": 1, "name": "常用名字", "email": "a@jwt.com", "roles": []fiber.Map{{"role": "admin"}}}}, "more": false},
	}, authed, cfg.Users.List)

	franchiseGroup := app.Group("/api/franchise")
	docs.handle(franchiseGroup, "/api/franchise", fiber.MethodGet, "", dto.EndpointDoc{
		Description: "List all the franchises",
		Example:     `curl 'localhost:3000/api/franchise?page=0&limit=10&name=pizzaPocket'`,
		Response:    fiber.Map{"franchises": []fiber.Map{{"id": 1, "name": "pizzaPocket", "admins": []fiber.Map{{"id": 4, "name": "pizza franchisee", "email": "f@jwt.com"}}, "stores": []fiber.Map{{"id": 1, "name": "SLC", "totalRevenue": 0}}}}, "more": false},
	}, cfg.Franchises.List)
	docs.handle(franchiseGroup, "/api/franchise", fiber.MethodGet, "/:userId", dto.EndpointDoc{
		RequiresAuth: true,
		Description:  "List a user's franchises",
		Example:      `curl localhost:3000/api/franchise/4 -H 'Authorization: Bearer tttttt'`,
		Response:     []fiber.Map{{"id": 2, "name": "pizzaPocket", "admins": []fiber.Map{{"id": 4, "name": "pizza franchisee", "email": "f@jwt.com"}}, "stores": []fiber.Map{{"id": 4, "name": "SLC", "totalRevenue": 0}}}},
	}, authed, cfg.Franchises.ListForUser)
	docs.handle(franchiseGroup, "/api/franchise", fiber.MethodPost, "", dto.EndpointDoc{
		RequiresAuth: true,
		Description:  "Create a new franchise",
		Example:      `curl -X POST localhost:3000/api/franchise -H 'Content-Type: application/json' -H 'Authorization: Bearer tttttt' -d '{"name": "pizzaPocket", "admins": [{"email": "f@jwt.com"}]}'`,
		Response:     fiber.Map{"name": "pizzaPocket", "admins": []fiber.Map{{"email": "f@jwt.com", "id": 4, "name": "pizza franchisee"}}, "id": 1},
	}, authed, admin, cfg.Franchises.Create)
	docs.handle(franchiseGroup, "/api/franchise", fiber.MethodDelete, "/:franchiseId", dto.EndpointDoc{
		Description: "Delete a franchise",
		Example:     `curl -X DELETE localhost:3000/api/franchise/1 -H 'Authorization: Bearer tttttt'`,
		Response:    dto.MessageResponse{Message: "franchise deleted"},
	}, cfg.Franchises.Delete)
	docs.handle(franchiseGroup, "/api/franchise", fiber.MethodPost, "/:franchiseId/store", dto.EndpointDoc{
		RequiresAuth: true,
		Description:  "Create a new franchise store",
		Example:      `curl -X POST localhost:3000/api/franchise/1/store -H 'Content-Type: application/json' -d '{"franchiseId": 1, "name":"SLC"}' -H 'Authorization: Bearer tttttt'`,
		Response:     fiber.Map{"id": 1, "name": "SLC", "totalRevenue": 0},
	}, authed, cfg.Franchises.CreateStore)
	docs.handle(franchiseGroup, "/api/franchise", fiber.MethodDelete, "/:franchiseId/store/:storeId", dto.EndpointDoc{
		RequiresAuth: true,
		Description:  "Delete a store",
		Example:      `curl -X DELETE localhost:3000/api/franchise/1/store/1 -H 'Authorization: Bearer tttttt'`,
		Response:     dto.MessageResponse{Message: "store deleted"},
	}, authed, cfg.Franchises.DeleteStore)

	orderGroup := app.Group("/api/order")
	docs.handle(orderGroup, "/api/order", fiber.MethodGet, "/menu", dto.EndpointDoc{
		Description: "Get the pizza menu",
		Example:     `curl localhost:3000/api/order/menu`,
		Response:    []fiber.Map{{"id": 1, "title": "Veggie", "image": "pizza1.png", "price": 0.0038, "description": "A garden of delight"}},
	}, cfg.Orders.Menu)
	docs.handle(orderGroup, "/api/order", fiber.MethodPut, "/menu", dto.EndpointDoc{
		RequiresAuth: true,
		Description:  "Add an item to the menu",
		Example:      `curl -X PUT localhost:3000/api/order/menu -H 'Content-Type: application/json' -d '{ "title":"Student", "description": "No topping, no sauce, just carbs", "image":"pizza9.png", "price": 0.0001 }'  -H 'Authorization: Bearer tttttt'`,
		Response:     []fiber.Map{{"id": 1, "title": "Student", "description": "No topping, no sauce, just carbs", "image": "pizza9.png", "price": 0.0001}},
	}, authed, admin, cfg.Orders.AddMenuItem)
	docs.handle(orderGroup, "/api/order", fiber.MethodGet, "", dto.EndpointDoc{
		RequiresAuth: true,
		Description:  "Get the orders for the authenticated user",
		Example:      `curl -X GET localhost:3000/api/order  -H 'Authorization: Bearer tttttt'`,
		Response:     fiber.Map{"dinerId": 4, "orders": []fiber.Map{{"id": 1, "franchiseId": 1, "storeId": 1, "date": "2024-06-05T05:14:40.000Z", "items": []fiber.Map{{"id": 1, "menuId": 1, "description": "Veggie", "price": 0.05}}}}, "page": 1},
	}, authed, cfg.Orders.List)
	docs.handle(orderGroup, "/api/order", fiber.MethodPost, "", dto.EndpointDoc{
		RequiresAuth: true,
		Description:  "Create a order for the authenticated user",
		Example:      `curl -X POST localhost:3000/api/order -H 'Content-Type: application/json' -d '{"franchiseId": 1, "storeId":1, "items":[{ "menuId": 1, "description": "Veggie", "price": 0.05 }]}'  -H 'Authorization: Bearer tttttt'`,
		Response:     fiber.Map{"order": fiber.Map{"franchiseId": 1, "storeId": 1, "items": []fiber.Map{{"menuId": 1, "description": "Veggie", "price": 0.05}}, "id": 1}, "jwt": "1111111111"},
	}, authed, cfg.Orders.Create)

	app.Use(service.NotFound)
}
