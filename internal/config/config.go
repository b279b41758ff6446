package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

const (
	BackendScript  = "script"
	BackendSandbox = "sandbox"
)

type Config struct {
	Env          string
	RelayAddr    string
	StaticDir    string
	DevServerURL string

	Backend       string
	ScriptURL     string
	ScriptTimeout time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	LegacyIdentities   string
	SandboxDatabaseURL string
	SandboxAddr        string

	RedisAddr string
	CacheTTL  time.Duration

	LogLevel       string
	MarketRelayURL string
}

func Load() Config {
	cfg := Config{
		Env:                getenv("APP_ENV", "production"),
		RelayAddr:          getenv("RELAY_ADDR", "127.0.0.1:5000"),
		StaticDir:          getenv("STATIC_DIR", "./dist/public"),
		DevServerURL:       getenv("DEV_SERVER_URL", "http://127.0.0.1:5173"),
		ScriptURL:          os.Getenv("SCRIPT_URL"),
		ScriptTimeout:      duration("SCRIPT_TIMEOUT", 30*time.Second),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TokenTTL:           duration("TOKEN_TTL", 72*time.Hour),
		LegacyIdentities:   os.Getenv("LEGACY_IDENTITIES"),
		SandboxDatabaseURL: os.Getenv("SANDBOX_DATABASE_URL"),
		SandboxAddr:        getenv("SANDBOX_ADDR", "127.0.0.1:5050"),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		CacheTTL:           duration("CACHE_TTL", 0),
		LogLevel:           getenv("LOG_LEVEL", "info"),
		MarketRelayURL:     getenv("MARKET_RELAY_URL", "http://127.0.0.1:5000"),
	}

	def := BackendSandbox
	if cfg.ScriptURL != "" {
		def = BackendScript
	}
	cfg.Backend = strings.ToLower(getenv("BACKEND", def))
	return cfg
}

// Development reports whether assets are served by the dev server.
func (c Config) Development() bool {
	return c.Env == "development"
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// duration accepts Go durations ("90s") or a bare number of seconds.
func duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := cast.ToInt64E(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
