package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the process-wide configuration, built once in main and passed
// into the components that need it.
type Config struct {
	HTTP     HTTPConfig
	Database DatabaseConfig
	CORS     CORSConfig
}

type HTTPConfig struct {
	Port         int           `env:"PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type DatabaseConfig struct {
	Host     string `env:"TODO_DB_HOST" env-default:"localhost"`
	Port     int    `env:"TODO_DB_PORT" env-default:"5432"`
	Username string `env:"TODO_DB_USERNAME" env-default:"postgres"`
	Password string `env:"TODO_DB_PASSWORD" env-default:"postgres"`
	Database string `env:"TODO_DB_DATABASE" env-default:"todo"`
	SSLMode  string `env:"TODO_DB_SSLMODE" env-default:"disable"`
}

// DSN renders the keyword/value connection string GORM's postgres driver
// expects.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
		c.Host, c.Username, c.Password, c.Database, c.Port, c.SSLMode)
}

type CORSConfig struct {
	// AllowedOrigin is the single front-end origin permitted to call the API.
	AllowedOrigin string `env:"CORS_ALLOWED_ORIGIN" env-default:"http://localhost:3000"`
}

// Load reads the configuration from the environment. A .env file, if any,
// has already been applied by godotenv's autoload in main.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read config from environment: %w", err)
	}
	return &cfg, nil
}
