package relay

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const maxLogLine = 80

// requestLogger logs /api requests as "METHOD path status in Nms :: body".
// Errors are rendered here so the logged status is the one sent.
func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().Config().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		path := c.Path()
		if !isAPI(path) {
			return nil
		}
		latency := time.Since(start)
		status := c.Response().StatusCode()
		line := fmt.Sprintf("%s %s %d in %dms", c.Method(), path, status, latency.Milliseconds())
		if body := c.Response().Body(); len(body) > 0 {
			line += " :: " + string(body)
		}
		log.Info(truncate(line, maxLogLine),
			zap.String("method", c.Method()),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("latency", latency))
		return nil
	}
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max-1]) + "…"
}
