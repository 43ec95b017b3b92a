package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Lifecycle  LifecycleConfig  `yaml:"lifecycle"`
	Pagination PaginationConfig `yaml:"pagination"`
	Log        LogConfig        `yaml:"log"`
	Seed       SeedConfig       `yaml:"seed"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port                   int     `yaml:"port"`
	RequestIPHeader        string  `yaml:"request_ip_header"`
	RateLimitPerSec        float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst         int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds        int     `yaml:"cache_ttl_seconds"`
	ShutdownTimeoutSeconds int     `yaml:"shutdown_timeout_seconds"`
}

// CacheTTL returns the cache expiration as a duration.
func (s ServerConfig) CacheTTL() time.Duration {
	return time.Duration(s.CacheTTLSeconds) * time.Second
}

// ShutdownTimeout returns the graceful shutdown deadline as a duration.
func (s ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(s.ShutdownTimeoutSeconds) * time.Second
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	LogLevel               string `yaml:"log_level"`
}

// LifecycleConfig tunes the equipment activation rule.
type LifecycleConfig struct {
	MaxDaysSinceCleaning int            `yaml:"max_days_since_cleaning"`
	Timezone             string         `yaml:"timezone"`
	Location             *time.Location `yaml:"-"` // Resolved from Timezone
}

// PaginationConfig bounds list page sizes.
type PaginationConfig struct {
	DefaultSize int `yaml:"default_size"`
	MaxSize     int `yaml:"max_size"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SeedConfig lists the equipment types inserted by the seed command.
type SeedConfig struct {
	EquipmentTypes []string `yaml:"equipment_types"`
}

// Load reads the configuration from the given path. A .env file in the
// working directory is loaded first, and DATABASE_DSN overrides database.dsn.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() error {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}
	if cfg.Server.ShutdownTimeoutSeconds <= 0 {
		cfg.Server.ShutdownTimeoutSeconds = 5
	}

	if cfg.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if cfg.Database.LogLevel == "" {
		cfg.Database.LogLevel = "warn"
	}

	if cfg.Lifecycle.MaxDaysSinceCleaning <= 0 {
		slog.Warn("lifecycle.max_days_since_cleaning is not set or invalid; defaulting to 30")
		cfg.Lifecycle.MaxDaysSinceCleaning = 30
	}
	if cfg.Lifecycle.Timezone == "" {
		cfg.Lifecycle.Location = time.Local
	} else {
		loc, err := time.LoadLocation(cfg.Lifecycle.Timezone)
		if err != nil {
			return fmt.Errorf("invalid lifecycle.timezone %q: %w", cfg.Lifecycle.Timezone, err)
		}
		cfg.Lifecycle.Location = loc
	}

	if cfg.Pagination.DefaultSize <= 0 {
		cfg.Pagination.DefaultSize = 10
	}
	if cfg.Pagination.MaxSize <= 0 {
		cfg.Pagination.MaxSize = 100
	}
	if cfg.Pagination.DefaultSize > cfg.Pagination.MaxSize {
		return fmt.Errorf("pagination.default_size %d exceeds pagination.max_size %d",
			cfg.Pagination.DefaultSize, cfg.Pagination.MaxSize)
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	return nil
}
