package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs session tokens and derives the credential
	// encryption key. The process refuses to boot without it.
	JWTSecret string `env:"JWT_SECRET"`

	// RegistrationEnabled opens POST /auth/register; accounts are normally
	// provisioned by admins and the endpoint answers 410 Gone.
	RegistrationEnabled bool `env:"REGISTRATION_ENABLED, default=false"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=client_dashboard"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("config: JWT_SECRET is required")
	}
	return &cfg, nil
}

// IsProduction reports whether the process runs with production settings
// (secure cookies, JSON logs).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
