package sandbox

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
)

// RegisterRoutes serves the backend in the spreadsheet script's shape: a
// single POST endpoint with the table as a query parameter.
func (b *Backend) RegisterRoutes(app fiber.Router) {
	app.Post("/", b.exec)
	app.Post("/exec", b.exec)
}

func (b *Backend) exec(c *fiber.Ctx) error {
	req := new(envelope.Request)
	if err := c.BodyParser(req); err != nil {
		return c.JSON(envelope.Fail("Permintaan tidak valid"))
	}
	env, err := b.Call(c.UserContext(), envelope.Resource(c.Query("table")), *req)
	if err != nil {
		return err
	}
	return c.JSON(env)
}
