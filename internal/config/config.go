// Package config loads process configuration from an optional YAML file
// and environment variables; environment values override the file.
package config

import (
	"net"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all configuration for the fieldbook server.
type Config struct {
	// Server
	BindAddr string `yaml:"bind_addr" env:"BIND_ADDR" env-default:"127.0.0.1"`
	Port     string `yaml:"port" env:"PORT" env-default:"8080"`

	// Logging
	LogLevel    string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	Development bool   `yaml:"development" env:"DEVELOPMENT" env-default:"false"`

	// Dataset persistence. DatabaseURL selects the PostgreSQL store;
	// when empty the file-backed memory store is used. DataFile may be
	// empty for a fully ephemeral dataset.
	DataFile    string `yaml:"data_file" env:"DATA_FILE" env-default:"fieldbook.json"`
	DatabaseURL string `yaml:"-" env:"DATABASE_URL"`
}

// Load reads configuration from path (when the file exists) and the
// environment.
func Load(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, err
			}
			return &cfg, nil
		}
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.BindAddr, c.Port)
}
