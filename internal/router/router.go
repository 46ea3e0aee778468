package router

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"

	"github.com/gridiron-labs/trivia-exam/internal/config"
	"github.com/gridiron-labs/trivia-exam/internal/handler"
	"github.com/gridiron-labs/trivia-exam/internal/middleware"
	"github.com/gridiron-labs/trivia-exam/internal/observability"
	"github.com/gridiron-labs/trivia-exam/internal/view"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	ExamPages *handler.ExamPageHandler
	ExamAPI   *handler.ExamAPIHandler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.ExamAPI != nil {
		deps.ExamAPI.Register(api)
	}

	app.Get("/metrics", observability.MetricsHandler())
	app.Use("/static", filesystem.New(filesystem.Config{Root: view.Static()}))

	if deps.ExamPages != nil {
		deps.ExamPages.Register(app, middleware.RateLimit("submit", 20, time.Minute))
	}
}
