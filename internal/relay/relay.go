// Package relay is the HTTP surface in front of the marketplace backend. It
// forwards /api calls, issues session tokens and serves the web bundle.
package relay

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/wichananm65/upj-marketplace/internal/category"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"go.uber.org/zap"
)

type Config struct {
	Development  bool
	StaticDir    string
	DevServerURL string
	JWTSecret    string
	TokenTTL     time.Duration
	// Categories backs /api/categories. Nil serves the built-in list.
	Categories category.Repository
}

// New builds the relay app. Routes outside /api serve the static bundle, or
// the dev server in development.
func New(cfg Config, backend envelope.Caller, log *zap.Logger) *fiber.App {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 72 * time.Hour
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(log),
	})
	app.Use(requestLogger(log))
	app.Use(recover.New())
	setupCORS(app)

	app.Get("/api/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if cfg.Categories == nil {
		cfg.Categories = category.StaticRepository{}
	}
	category.NewHandler(category.NewService(cfg.Categories)).RegisterPublicRoutes(app)

	h := &api{backend: backend, secret: []byte(cfg.JWTSecret), ttl: cfg.TokenTTL, log: log}
	h.RegisterRoutes(app)

	app.All("/api/*", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "Route tidak ditemukan")
	})

	if cfg.Development {
		serveDev(app, cfg.DevServerURL)
	} else {
		serveStatic(app, cfg.StaticDir)
	}
	return app
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

// errorHandler answers with {"message": ...} and the status of a
// *fiber.Error, 500 otherwise. Server errors are logged in full and answered
// with the bare status text.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", code),
				zap.Error(err))
		}
		msg := err.Error()
		if code >= fiber.StatusInternalServerError {
			msg = utils.StatusMessage(code)
		}
		return c.Status(code).JSON(fiber.Map{"message": msg})
	}
}

func isAPI(path string) bool {
	return path == "/api" || strings.HasPrefix(path, "/api/")
}
