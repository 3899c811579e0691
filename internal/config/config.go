package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	applog "workmarket/internal/log"
)

type Config struct {
	Port      string `envconfig:"PORT" default:"4000"`
	APIPrefix string `envconfig:"API_PREFIX" default:"/api"`

	StoreDriver string `envconfig:"STORE_DRIVER" default:"file"`
	DBPath      string `envconfig:"DB_PATH" default:"./data/db.json"`
	DBDSN       string `envconfig:"DB_DSN" default:"workmarket.db"`
	RedisURL    string `envconfig:"REDIS_URL"`
	RedisKey    string `envconfig:"REDIS_KEY" default:"workmarket:document"`
	SeedDemo    bool   `envconfig:"SEED_DEMO" default:"true"`

	LogFile  string `envconfig:"LOG_FILE"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	JWTSecret   string        `envconfig:"JWT_SECRET" default:"dev-only-secret"`
	TokenTTL    time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	EmailDomain string        `envconfig:"ALLOWED_EMAIL_DOMAIN"`

	// TemplatesDir serves admin templates from disk with reload; empty uses
	// the copies embedded in the binary.
	TemplatesDir string `envconfig:"TEMPLATES_DIR"`
	CORSOrigins  string `envconfig:"CORS_ORIGINS" default:"*"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	switch cfg.StoreDriver {
	case "file", "sqlite", "redis", "memory":
	default:
		return Config{}, fmt.Errorf("STORE_DRIVER must be file, sqlite, redis or memory, got %q", cfg.StoreDriver)
	}
	if cfg.StoreDriver == "redis" && cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("REDIS_URL is required when STORE_DRIVER=redis")
	}
	if cfg.TokenTTL <= 0 {
		return Config{}, fmt.Errorf("TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}

	applog.L().Info().
		Str("port", cfg.Port).
		Str("store", cfg.StoreDriver).
		Str("db_path", cfg.DBPath).
		Str("log_file", cfg.LogFile).
		Str("email_domain", cfg.EmailDomain).
		Msg("config loaded")
	return cfg, nil
}
