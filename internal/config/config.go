package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
	BackendMemory   = "memory"
)

type Config struct {
	Port string

	StorageBackend string
	SQLitePath     string

	DB    DBConfig
	Redis RedisConfig

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	RateLimit  int
	RateWindow time.Duration

	Location *time.Location
	LogLevel string
}

type DBConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN is accepted by both the pgx and lib/pq drivers.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis host was configured at all.
func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

// Load reads the environment, after merging a .env file from the working
// directory when one exists. Variables already set win over the file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (*Config, error) {
	env := func(key, fallback string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return fallback
	}

	var errs []error
	intVar := func(key string, fallback int) int {
		raw := getenv(key)
		if raw == "" {
			return fallback
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return v
	}
	durationVar := func(key string, fallback time.Duration) time.Duration {
		raw := getenv(key)
		if raw == "" {
			return fallback
		}
		v, err := time.ParseDuration(raw)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
		return v
	}

	cfg := &Config{
		Port:           env("PORT", "8080"),
		StorageBackend: env("STORAGE_BACKEND", BackendPostgres),
		SQLitePath:     env("SQLITE_PATH", "habits.db"),
		DB: DBConfig{
			Driver:   env("DB_DRIVER", "pgx"),
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			User:     getenv("DB_USER"),
			Password: getenv("DB_PASSWORD"),
			Name:     getenv("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     getenv("REDIS_HOST"),
			Port:     env("REDIS_PORT", "6379"),
			Password: getenv("REDIS_PASSWORD"),
			DB:       intVar("REDIS_DB", 0),
		},
		JWTSecret:  getenv("JWT_SECRET"),
		JWTIssuer:  env("JWT_ISSUER", "kanso-habit-store"),
		TokenTTL:   durationVar("TOKEN_TTL", 72*time.Hour),
		RateLimit:  intVar("RATE_LIMIT", 100),
		RateWindow: durationVar("RATE_WINDOW", time.Minute),
		LogLevel:   env("LOG_LEVEL", "info"),
	}

	loc, err := time.LoadLocation(env("TIMEZONE", "UTC"))
	if err != nil {
		errs = append(errs, fmt.Errorf("TIMEZONE: %w", err))
	}
	cfg.Location = loc

	switch cfg.StorageBackend {
	case BackendPostgres, BackendSQLite, BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("STORAGE_BACKEND: unknown backend %q", cfg.StorageBackend))
	}

	switch cfg.DB.Driver {
	case "pgx", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER: unknown driver %q", cfg.DB.Driver))
	}

	if cfg.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
