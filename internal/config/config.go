package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all process configuration, loaded from environment variables.
type Config struct {
	Port    string `env:"PORT" envDefault:"8000"`
	Mode    string `env:"APP_MODE" envDefault:"development"`
	DBPath  string `env:"DB_PATH" envDefault:"data/humorpedia.db"`
	LogMode string `env:"LOG_MODE" envDefault:"dev"`

	JWTSecret string `env:"JWT_SECRET" envDefault:"change-me-in-production"`

	UploadDir     string `env:"UPLOAD_DIR" envDefault:"data/uploads"`
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	AdminEmail    string `env:"ADMIN_EMAIL" envDefault:"admin@humorpedia.ru"`
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:""`
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Mode == "production" || c.Mode == "prod"
}
