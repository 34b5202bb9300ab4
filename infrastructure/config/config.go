// Package config materializes the application configuration from defaults, an
// optional YAML file and environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the full application configuration surface.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Session       SessionConfig       `yaml:"session"`
	Notifications NotificationsConfig `yaml:"notifications"`
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig holds the SQLite file location.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SessionConfig holds login session options.
type SessionConfig struct {
	TTLHours int `yaml:"ttl_hours"`
}

// NotificationsConfig holds the feed refresh schedule.
type NotificationsConfig struct {
	RefreshSpec string `yaml:"refresh_spec"`
}

// Load reads an optional .env file, an optional YAML config file pointed to by
// STOCKTAKE_CONFIG, then applies environment overrides.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
		}
	} else {
		// Missing .env files are fine when configuration comes from the
		// environment directly.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Server:        ServerConfig{Addr: ":8080"},
		Database:      DatabaseConfig{Path: "stocktake.db"},
		Session:       SessionConfig{TTLHours: 12},
		Notifications: NotificationsConfig{RefreshSpec: "* * * * *"},
	}

	if path := os.Getenv("STOCKTAKE_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("failed parsing config file %s: %w", path, err)
		}
	}

	if v := os.Getenv("STOCKTAKE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("STOCKTAKE_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("STOCKTAKE_SESSION_TTL_HOURS"); v != "" {
		hours, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid STOCKTAKE_SESSION_TTL_HOURS %q: %w", v, err)
		}
		cfg.Session.TTLHours = hours
	}
	if v := os.Getenv("STOCKTAKE_NOTIFY_REFRESH_SPEC"); v != "" {
		cfg.Notifications.RefreshSpec = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures required fields are populated and sane.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Server.Addr == "" {
		return errors.New("server addr must be provided")
	}
	if c.Database.Path == "" {
		return errors.New("database path must be provided")
	}
	if c.Session.TTLHours <= 0 {
		return errors.New("session ttl must be positive")
	}
	if c.Notifications.RefreshSpec == "" {
		return errors.New("notification refresh spec must be provided")
	}
	return nil
}
