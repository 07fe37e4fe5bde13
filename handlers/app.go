package handlers

import (
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"player-registry/middleware"
)

type AppConfig struct {
	Logger         *slog.Logger
	AllowedOrigins []string
	Players        *PlayerHandler
}

// NewApp builds the fiber app with middleware and every route registered.
func NewApp(cfg AppConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "player-registry",
		DisableStartupMessage: true,
		BodyLimit:             64 * 1024,
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger(cfg.Logger))

	if len(cfg.AllowedOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:  strings.Join(cfg.AllowedOrigins, ","),
			AllowMethods:  "GET,POST,PATCH,DELETE,OPTIONS",
			AllowHeaders:  "Origin, Content-Type, Accept, X-Request-ID",
			ExposeHeaders: "Content-Length, Content-Type, X-Request-ID",
			MaxAge:        86400,
		}))
	}

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	SetupPlayerRoutes(app, cfg.Players)
	return app
}
