package category

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
)

type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app fiber.Router) {
	app.Get("/api/categories", h.getCategories)
}

func (h *Handler) getCategories(c *fiber.Ctx) error {
	limit := 100
	if l := c.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	env, err := envelope.OK(h.service.List(limit))
	if err != nil {
		return err
	}
	return c.JSON(env)
}
