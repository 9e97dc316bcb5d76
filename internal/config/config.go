package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/comitanigiacomo/kanso-saturation/internal/core/domain"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

var (
	ErrMissingJWTSecret = errors.New("JWT_SECRET is required outside debug mode")
	ErrInvalidStorage   = errors.New("STORAGE must be memory or postgres")
	ErrInvalidDurations = errors.New("SESSION_TTL and REAP_INTERVAL must be positive")
)

type DatabaseConfig struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.Name)
}

// RedisConfig is disabled when Host is empty.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

func (c RedisConfig) Enabled() bool {
	return c.Host != ""
}

type Config struct {
	Port       string
	GinMode    string
	Storage    string
	Database   DatabaseConfig
	Redis      RedisConfig
	JWTSecret  string
	JWTIssuer  string
	SessionTTL time.Duration
	ReapEvery  time.Duration
	Weeks      int
	RateLimit  int
	Location   *time.Location
}

// Load reads an optional .env file and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		// A missing .env is normal in containers.
		_ = godotenv.Load(f)
	}

	cfg := &Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", "debug"),
		Storage: getEnv("STORAGE", StorageMemory),
		Database: DatabaseConfig{
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     os.Getenv("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTIssuer: getEnv("JWT_ISSUER", "kanso-saturation"),
	}

	var err error
	if cfg.Redis.DB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.Weeks, err = getInt("LOG_WEEKS", domain.DefaultWeeks); err != nil {
		return nil, err
	}
	if cfg.RateLimit, err = getInt("RATE_LIMIT", 100); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = getDuration("SESSION_TTL", 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ReapEvery, err = getDuration("REAP_INTERVAL", 10*time.Minute); err != nil {
		return nil, err
	}

	cfg.Location, err = time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Storage != StorageMemory && c.Storage != StoragePostgres {
		return ErrInvalidStorage
	}
	if err := domain.ValidateWeeks(c.Weeks); err != nil {
		return fmt.Errorf("LOG_WEEKS: %w", err)
	}
	if c.ReapEvery <= 0 || c.SessionTTL <= 0 {
		return ErrInvalidDurations
	}
	if c.JWTSecret == "" {
		if c.GinMode != "debug" {
			return ErrMissingJWTSecret
		}
		c.JWTSecret = "dev-only-insecure-secret"
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
