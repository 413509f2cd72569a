package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWT      JWTConfig
	Mongo    MongoConfig
	Redis    RedisConfig
	Throttle ThrottleConfig
	Audit    AuditConfig
}

type JWTConfig struct {
	Secret     string `env:"JWT_SECRET"`
	Issuer     string `env:"JWT_ISSUER,      default=identity-system"`
	TTLMinutes int    `env:"JWT_TTL_MINUTES, default=60"`
}

// TTL returns the token lifetime as a duration.
func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.TTLMinutes) * time.Minute
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type ThrottleConfig struct {
	MaxAttempts   int `env:"LOGIN_MAX_ATTEMPTS,           default=10"`
	WindowMinutes int `env:"LOGIN_THROTTLE_WINDOW_MINUTES, default=15"`
}

// Window returns the throttle window as a duration.
func (c ThrottleConfig) Window() time.Duration {
	return time.Duration(c.WindowMinutes) * time.Minute
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: load: %w", err)
	}
	return &cfg, nil
}

// Validate enforces the fail-fast startup checks. A misconfigured signing key
// must abort the process before it serves a single request.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("config: JWT_SECRET must not be empty")
	}
	if c.JWT.TTLMinutes <= 0 {
		return errors.New("config: JWT_TTL_MINUTES must be positive")
	}
	if c.Mongo.URI == "" || c.Mongo.Database == "" {
		return errors.New("config: MONGO_URI and MONGO_DB must be set")
	}
	return nil
}
