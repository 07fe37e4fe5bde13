package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"player-registry/models"
)

// writeError maps a service error to its status code and JSON body.
func writeError(c *fiber.Ctx, logger *slog.Logger, err error) error {
	switch {
	case errors.Is(err, models.ErrInvalidID),
		errors.Is(err, models.ErrInvalidPlayer),
		errors.Is(err, models.ErrInvalidQuery):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, models.ErrPlayerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "player not found"})
	default:
		logger.Error("request failed",
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.String("error", err.Error()),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}
