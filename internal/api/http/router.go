package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/blog-service/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Users  *handlers.UsersHandler
	Posts  *handlers.PostsHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	users := app.Group("/users")
	users.Post("/", cfg.Users.Create)
	users.Get("/", cfg.Users.List)
	users.Get("/:user_id", cfg.Users.Get)
	users.Patch("/:user_id", cfg.Users.Update)
	users.Delete("/:user_id", cfg.Users.Delete)

	posts := app.Group("/posts")
	posts.Post("/", cfg.Posts.Create)
	posts.Get("/", cfg.Posts.List)
	posts.Get("/:post_id", cfg.Posts.Get)
	posts.Patch("/:post_id", cfg.Posts.Update)
	posts.Delete("/:post_id", cfg.Posts.Delete)
}
