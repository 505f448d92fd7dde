package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/coffee-shop-service/internal/api/http/handlers"
)

// RouteConfig bundles the handlers served by the dispatch table.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Menu   *handlers.MenuHandler
	Orders *handlers.OrdersHandler
	Users  *handlers.UsersHandler
}

// RouteTable returns the dispatch table in match order. /menu/search must
// precede /menu/:id.
func RouteTable(cfg RouteConfig) []Route {
	return []Route{
		{Method: fiber.MethodGet, Pattern: "/categories", Name: "categories.list", Handler: cfg.Menu.Categories},
		{Method: fiber.MethodGet, Pattern: "/menu/search", Name: "menu.search", Handler: cfg.Menu.Search},
		{Method: fiber.MethodGet, Pattern: "/menu/:id", Name: "menu.show", MissingParam: "Menu ID required", Handler: cfg.Menu.Show},
		{Method: fiber.MethodGet, Pattern: "/menu", Name: "menu.list", Handler: cfg.Menu.List},
		{Method: fiber.MethodGet, Pattern: "/orders/:userId", Name: "orders.by_user", MissingParam: "User ID required", Handler: cfg.Orders.ListByUser},
		{Method: fiber.MethodPost, Pattern: "/register", Name: "users.register", Body: true, Handler: cfg.Users.Register},
		{Method: fiber.MethodPost, Pattern: "/login", Name: "users.login", Body: true, Handler: cfg.Users.Login},
		{Method: fiber.MethodPost, Pattern: "/order", Name: "orders.create", Body: true, Handler: cfg.Orders.Create},
		{Method: fiber.MethodGet, Pattern: "/health/live", Name: "health.live", Handler: cfg.Health.Live},
		{Method: fiber.MethodGet, Pattern: "/health/ready", Name: "health.ready", Handler: cfg.Health.Ready},
	}
}
