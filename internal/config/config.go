// Package config handles cadence configuration: defaults, YAML file
// loading, and validation.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all cadence configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Scoring  ScoringConfig  `mapstructure:"scoring" yaml:"scoring"`
}

type ServerConfig struct {
	Bind string `mapstructure:"bind" yaml:"bind"`
	Port int    `mapstructure:"port" yaml:"port"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// ScoringConfig sets the default window sizes the API and CLI use when
// a request doesn't name its own.
type ScoringConfig struct {
	WindowDays int `mapstructure:"window_days" yaml:"window_days"`
	MonthsBack int `mapstructure:"months_back" yaml:"months_back"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37780,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via store.DefaultDBPath()
		},
		Scoring: ScoringConfig{
			WindowDays: 90,
			MonthsBack: 12,
		},
	}
}

// Load reads configuration from a YAML file, falling back to defaults
// when the file is absent. Missing fields keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if cfg.Scoring.WindowDays <= 0 {
		cfg.Scoring.WindowDays = 90
	}
	if cfg.Scoring.MonthsBack <= 0 {
		cfg.Scoring.MonthsBack = 12
	}
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return cfg, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}

	return cfg, nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
