package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/wichananm65/upj-marketplace/internal/config"
	"github.com/wichananm65/upj-marketplace/internal/identity"
	"github.com/wichananm65/upj-marketplace/internal/logger"
	"github.com/wichananm65/upj-marketplace/internal/sandbox"
	"go.uber.org/zap"
)

// sandbox serves the local backend in the spreadsheet script's shape so the
// relay can run with BACKEND=script against it.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	aliases, err := identity.ParseAliases(cfg.LegacyIdentities)
	if err != nil {
		log.Fatal("invalid LEGACY_IDENTITIES", zap.Error(err))
	}
	backend, closeDB, err := sandbox.Open(cfg.SandboxDatabaseURL, aliases, log)
	if err != nil {
		log.Fatal("sandbox backend", zap.Error(err))
	}
	defer closeDB()

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	backend.RegisterRoutes(app)

	log.Info("sandbox listening",
		zap.String("addr", cfg.SandboxAddr),
		zap.Bool("postgres", cfg.SandboxDatabaseURL != ""))
	if err := app.Listen(cfg.SandboxAddr); err != nil {
		log.Fatal("sandbox stopped", zap.Error(err))
	}
}
