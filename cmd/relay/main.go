package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/wichananm65/upj-marketplace/internal/category"
	"github.com/wichananm65/upj-marketplace/internal/config"
	"github.com/wichananm65/upj-marketplace/internal/envelope"
	"github.com/wichananm65/upj-marketplace/internal/identity"
	"github.com/wichananm65/upj-marketplace/internal/logger"
	"github.com/wichananm65/upj-marketplace/internal/relay"
	"github.com/wichananm65/upj-marketplace/internal/sandbox"
	"github.com/wichananm65/upj-marketplace/internal/scriptapi"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel, cfg.Development())
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	aliases, err := identity.ParseAliases(cfg.LegacyIdentities)
	if err != nil {
		log.Fatal("invalid LEGACY_IDENTITIES", zap.Error(err))
	}

	backend, closeBackend := mustBackend(cfg, aliases, log)
	defer closeBackend()

	var categories category.Repository
	if b, ok := backend.(*sandbox.Backend); ok {
		categories = b.Categories()
	}

	app := relay.New(relay.Config{
		Development:  cfg.Development(),
		StaticDir:    cfg.StaticDir,
		DevServerURL: cfg.DevServerURL,
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.TokenTTL,
		Categories:   categories,
	}, backend, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		_ = app.Shutdown()
	}()

	log.Info("relay listening",
		zap.String("addr", cfg.RelayAddr),
		zap.String("backend", cfg.Backend),
		zap.Bool("development", cfg.Development()))
	if err := app.Listen(cfg.RelayAddr); err != nil {
		log.Fatal("relay stopped", zap.Error(err))
	}
}

func mustBackend(cfg config.Config, aliases identity.Aliases, log *zap.Logger) (envelope.Caller, func()) {
	switch cfg.Backend {
	case config.BackendScript:
		c, err := scriptapi.New(cfg.ScriptURL, cfg.ScriptTimeout, log.Named("script"))
		if err != nil {
			log.Fatal("script backend", zap.Error(err))
		}
		return c, func() {}
	case config.BackendSandbox:
		b, closeDB, err := sandbox.Open(cfg.SandboxDatabaseURL, aliases, log.Named("sandbox"))
		if err != nil {
			log.Fatal("sandbox backend", zap.Error(err))
		}
		return b, func() { _ = closeDB() }
	default:
		log.Fatal("unknown BACKEND", zap.String("backend", cfg.Backend))
		return nil, nil
	}
}
