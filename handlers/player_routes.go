// handlers/player_routes.go
package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"player-registry/models"
	"player-registry/services"
)

type PlayerHandler struct {
	service         *services.PlayerService
	logger          *slog.Logger
	defaultPageSize int
}

func NewPlayerHandler(service *services.PlayerService, logger *slog.Logger, defaultPageSize int) *PlayerHandler {
	if defaultPageSize < 1 {
		defaultPageSize = services.DefaultPageSize
	}
	return &PlayerHandler{service: service, logger: logger, defaultPageSize: defaultPageSize}
}

func SetupPlayerRoutes(app *fiber.App, h *PlayerHandler) {
	players := app.Group("/rest/players")

	players.Get("/", h.List)
	players.Get("/count", h.Count)
	players.Get("/:id", h.Get)
	players.Post("/", h.Create)
	players.Post("/:id", h.Update)
	players.Patch("/:id", h.Update)
	players.Delete("/:id", h.Delete)
}

func (h *PlayerHandler) List(c *fiber.Ctx) error {
	q, err := parseListQuery(c, h.defaultPageSize)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	players, err := h.service.List(c.UserContext(), q)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(players)
}

func (h *PlayerHandler) Count(c *fiber.Ctx) error {
	filter, err := parseFilter(c)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	n, err := h.service.Count(c.UserContext(), filter)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(n)
}

func (h *PlayerHandler) Get(c *fiber.Ctx) error {
	id, err := services.ParseID(c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	p, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(p)
}

func (h *PlayerHandler) Create(c *fiber.Ctx) error {
	var in models.PlayerInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid JSON",
			"cause": err.Error(),
		})
	}
	p, err := h.service.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(p)
}

func (h *PlayerHandler) Update(c *fiber.Ctx) error {
	id, err := services.ParseID(c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	var in models.PlayerInput
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid JSON",
			"cause": err.Error(),
		})
	}
	p, err := h.service.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(p)
}

func (h *PlayerHandler) Delete(c *fiber.Ctx) error {
	id, err := services.ParseID(c.Params("id"))
	if err != nil {
		return writeError(c, h.logger, err)
	}
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return writeError(c, h.logger, err)
	}
	return c.JSON(fiber.Map{"id": id, "deleted": true})
}
