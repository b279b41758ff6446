package relay

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/proxy"
)

// serveStatic serves the built bundle and falls back to index.html for
// client-side routes.
func serveStatic(app *fiber.App, dir string) {
	app.Static("/", dir)
	index := filepath.Join(dir, "index.html")
	app.Get("/*", func(c *fiber.Ctx) error {
		return c.SendFile(index)
	})
}

// serveDev proxies every non-API request to the asset dev server.
func serveDev(app *fiber.App, devURL string) {
	app.Use(func(c *fiber.Ctx) error {
		return proxy.Do(c, devURL+c.OriginalURL())
	})
}
