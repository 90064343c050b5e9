package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tkaraca/newsdesk/internal/config"
	"github.com/tkaraca/newsdesk/internal/notify"
	"github.com/tkaraca/newsdesk/internal/store"
	"github.com/tkaraca/newsdesk/internal/syncer"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(app *fiber.App, cfg *config.Config, coordinator *syncer.Coordinator, settings *store.Settings, st store.Store, notices *notify.Ring) {
	handlers := NewHandlers(coordinator, settings, st, notices)

	app.Use(RequestLogger())

	// API group with versioning
	api := app.Group("/api/v1")

	api.Get("/health", handlers.HealthCheck)
	api.Get("/articles", handlers.GetArticles)
	api.Post("/refresh", handlers.Refresh)
	api.Get("/notices", handlers.GetNotices)

	settingsGroup := api.Group("/settings")
	{
		settingsGroup.Get("/cache", handlers.GetCacheSetting)
		settingsGroup.Put("/cache", handlers.PutCacheSetting)
	}

	admin := api.Group("/admin", AdminOnly(cfg.AdminAPIKey))
	{
		admin.Post("/flush", handlers.FlushStore)
	}

	// 404 Handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Endpoint not found",
		})
	})
}
