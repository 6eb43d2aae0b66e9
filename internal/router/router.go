package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/maum-go-api/internal/config"
	"github.com/noah-isme/maum-go-api/internal/handler"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler          *handler.AuthHandler
	ChatHandler          *handler.ChatHandler
	ActivityHandler      *handler.ActivityHandler
	AdminActivityHandler *handler.AdminActivityHandler
	JWTMiddleware        fiber.Handler
	AdminMiddleware      fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	adminMiddleware := deps.AdminMiddleware
	if adminMiddleware == nil {
		adminMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	// Session gate
	if deps.AuthHandler != nil {
		auth := api.Group("/auth", jwtMiddleware)
		deps.AuthHandler.Register(auth)
	}

	// Student workflow: conversation then submission
	if deps.ChatHandler != nil {
		chat := api.Group("/chat", jwtMiddleware)
		deps.ChatHandler.Register(chat)
	}

	if deps.ActivityHandler != nil {
		activities := api.Group("/activities", jwtMiddleware)
		deps.ActivityHandler.Register(activities)
	}

	// Reviewer monitor
	if deps.AdminActivityHandler != nil {
		admin := app.Group("/api/admin/activities", jwtMiddleware, adminMiddleware)
		deps.AdminActivityHandler.Register(admin)
	}
}
