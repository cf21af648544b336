// Package config handles configuration loading for the stores service.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const minJWTSecretLength = 32

// Config holds all configuration for the API server.
type Config struct {
	DatabaseURL      string        `env:"DATABASE_URL" envDefault:"sqlite://data.sqlite"`
	RedisURL         string        `env:"REDIS_URL,required,notEmpty"`
	EmailQueue       string        `env:"EMAIL_QUEUE" envDefault:"emails"`
	JWTSecret        string        `env:"JWT_SECRET,required,notEmpty"`
	JWTAccessExpiry  time.Duration `env:"JWT_ACCESS_EXPIRY" envDefault:"15m"`
	JWTRefreshExpiry time.Duration `env:"JWT_REFRESH_EXPIRY" envDefault:"720h"`
	PasswordRounds   int           `env:"PASSWORD_ROUNDS" envDefault:"29000"`
	Port             string        `env:"PORT" envDefault:"5001"`
	Environment      string        `env:"ENVIRONMENT" envDefault:"development"`
	LogFormat        string        `env:"LOG_FORMAT" envDefault:"json"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
}

// WorkerConfig holds configuration for the email worker.
type WorkerConfig struct {
	RedisURL        string `env:"REDIS_URL,required,notEmpty"`
	EmailQueue      string `env:"EMAIL_QUEUE" envDefault:"emails"`
	SendGridAPIKey  string `env:"SENDGRID_API_KEY,required,notEmpty"`
	EmailSender     string `env:"EMAIL_SENDER" envDefault:"no-reply@stores.local"`
	EmailSenderName string `env:"EMAIL_SENDER_NAME" envDefault:"Stores REST API"`
	LogFormat       string `env:"LOG_FORMAT" envDefault:"json"`
	LogLevel        string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load reads API configuration from the environment, after applying an
// optional .env file from the working directory.
func Load() (*Config, error) {
	loadDotEnv()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadWorker reads worker configuration from the environment.
func LoadWorker() (*WorkerConfig, error) {
	loadDotEnv()

	var cfg WorkerConfig
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse worker config: %w", err)
	}
	return &cfg, nil
}

// Validate checks values that cannot be expressed as struct tags.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < minJWTSecretLength {
		return fmt.Errorf("JWT_SECRET must be at least %d bytes", minJWTSecretLength)
	}
	if c.JWTAccessExpiry <= 0 || c.JWTRefreshExpiry <= 0 {
		return errors.New("JWT expiries must be positive")
	}
	if c.PasswordRounds < 1000 {
		return errors.New("PASSWORD_ROUNDS must be at least 1000")
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func loadDotEnv() {
	// Missing .env is the normal case outside local development.
	_ = godotenv.Load()
}
