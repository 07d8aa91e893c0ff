package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taskboard-hq/taskboard-backend/internal/config"
	"github.com/taskboard-hq/taskboard-backend/internal/handlers"
	"github.com/taskboard-hq/taskboard-backend/internal/middleware"
	"github.com/taskboard-hq/taskboard-backend/internal/store"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	users store.UserStore,
	authHandler *handlers.AuthHandler,
	taskHandler *handlers.TaskHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api/v1")

	api.Get("/health", healthHandler.Check)

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/create-admin", authHandler.CreateAdmin)

	tasks := api.Group("/tasks", middleware.JWTProtected(cfg))
	// /tasks/users must be mounted before /tasks/:id.
	tasks.Get("/users", middleware.AdminRequired(users), taskHandler.ListUsers)
	tasks.Get("/", taskHandler.List)
	tasks.Post("/", taskHandler.Create)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)
}
