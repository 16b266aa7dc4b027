// Package config loads database connection settings from TOML files.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config selects a backend and carries its connection settings.
type Config struct {
	Driver string       `toml:"driver"`
	SQLite SQLiteConfig `toml:"sqlite"`
	MySQL  MySQLConfig  `toml:"mysql"`
}

// SQLiteConfig holds SQLite settings; ":memory:" denotes an in-memory
// database.
type SQLiteConfig struct {
	Path string `toml:"path"`
}

// MySQLConfig holds MySQL server settings.
type MySQLConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
}

const defaultMySQLPort = 3306

// Load reads and validates a TOML configuration file.
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the driver selection and the settings it requires, filling
// defaults where the file left gaps.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Driver) {
	case "sqlite":
		if c.SQLite.Path == "" {
			return fmt.Errorf("sqlite driver requires a path")
		}
	case "mysql":
		if c.MySQL.Host == "" {
			return fmt.Errorf("mysql driver requires a host")
		}
		if c.MySQL.Database == "" {
			return fmt.Errorf("mysql driver requires a database")
		}
		if c.MySQL.Port == 0 {
			c.MySQL.Port = defaultMySQLPort
		}
	case "":
		return fmt.Errorf("driver is not set")
	default:
		return fmt.Errorf("unsupported driver %q", c.Driver)
	}
	return nil
}
