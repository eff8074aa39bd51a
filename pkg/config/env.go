// Env loader
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// StorageDriver is one of memory, file, sqlite or postgres.
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"sqlite"`
	StoragePath   string `env:"STORAGE_PATH" envDefault:"verbum-dei.db"`

	DB DBConfig

	JWTSecret          string        `env:"JWT_SECRET"`
	SessionTTL         time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"30m"`
	JanitorInterval    time.Duration `env:"JANITOR_INTERVAL" envDefault:"5m"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`
	// OracleTimeout bounds each model call; zero leaves calls unbounded.
	OracleTimeout      time.Duration `env:"ORACLE_TIMEOUT" envDefault:"0s"`
	DefaultTranslation string        `env:"DEFAULT_TRANSLATION" envDefault:"AVE_MARIA"`
}

type DBConfig struct {
	Host     string `env:"BLUEPRINT_DB_HOST" envDefault:"localhost"`
	Port     string `env:"BLUEPRINT_DB_PORT" envDefault:"5432"`
	Name     string `env:"BLUEPRINT_DB_DATABASE" envDefault:"verbum_dei"`
	User     string `env:"BLUEPRINT_DB_USERNAME" envDefault:"postgres"`
	Password string `env:"BLUEPRINT_DB_PASSWORD"`
	Schema   string `env:"BLUEPRINT_DB_SCHEMA" envDefault:"public"`
}

// LoadConfig loads the .env file for the current APP_ENV, then parses the environment.
func LoadConfig() (*Config, error) {
	switch GetAppEnv() {
	case "production":
		_ = godotenv.Load(".env.production")
	default:
		_ = godotenv.Load(".env.development")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	// API_KEY is accepted as an older name for the key
	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv("API_KEY")
	}

	switch cfg.StorageDriver {
	case "memory", "file", "sqlite", "postgres":
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func GetAppEnv() string {
	if value, exists := os.LookupEnv("APP_ENV"); exists {
		return value
	}
	return "development"
}
