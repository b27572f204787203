package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config holds all process configuration, loaded from environment variables.
type Config struct {
	Port         string   `env:"PORT,          default=8080"`
	Env          string   `env:"APP_ENV,       default=development"`
	SecretKey    string   `env:"SECRET_KEY,    default=dev-secret-key-change-in-production"`
	LogLevel     string   `env:"LOG_LEVEL,     default=info"`
	LogPretty    bool     `env:"LOG_PRETTY,    default=false"`
	DatabasePath string   `env:"DATABASE_PATH, default=app.db"`
	CORSOrigins  []string `env:"CORS_ALLOWED_ORIGINS, default=*"`
}

// Load reads configuration from the environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	return &cfg, nil
}

// IsDevelopment reports whether the development profile is active.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
