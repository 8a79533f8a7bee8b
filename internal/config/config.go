package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all process-wide configuration. It is loaded once in main
// and passed explicitly to the components that need it.
type Config struct {
	ServerAddr  string `env:"SERVER_ADDR" envDefault:":8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"tracker"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"tracker_dev_password"`
	DBName     string `env:"DB_NAME" envDefault:"tracker"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	JWTAccessSecret  string        `env:"JWT_ACCESS_SECRET"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"15m"`
	RefreshTokenTTL  time.Duration `env:"REFRESH_TOKEN_TTL" envDefault:"168h"`
	BcryptCost       int           `env:"BCRYPT_COST" envDefault:"12"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load parses configuration from the environment. Missing JWT secrets get
// random per-process values so development works out of the box; every
// restart then invalidates outstanding tokens. Production must set the
// secrets explicitly.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.JWTAccessSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_ACCESS_SECRET is required in production")
		}
		cfg.JWTAccessSecret = randomSecret()
	}
	if cfg.JWTRefreshSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("JWT_REFRESH_SECRET is required in production")
		}
		cfg.JWTRefreshSecret = randomSecret()
	}

	return cfg, nil
}

// IsProduction reports whether the process runs with production settings
// (secure cookies, no error details in responses).
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// DSN builds the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func randomSecret() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "dev-secret-change-in-production"
	}
	return hex.EncodeToString(bytes)
}
