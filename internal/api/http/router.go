package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/issue-tracker/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Users  *handlers.UsersHandler
	Issues *handlers.IssuesHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	api.Post("/users", cfg.Users.CreateUser)
	api.Get("/users", cfg.Users.ListUsers)

	api.Post("/issues", cfg.Issues.CreateIssue)
	api.Get("/issues", cfg.Issues.ListIssues)
	api.Get("/issues/:id", cfg.Issues.GetIssue)
	api.Put("/issues/:id/assign", cfg.Issues.AssignIssue)
	api.Put("/issues/:id/status", cfg.Issues.UpdateStatus)
}
