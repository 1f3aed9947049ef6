package server

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures environment-driven settings. Flags layered on top by the
// command entry points take precedence.
type Config struct {
	Host    string        `env:"SCENEBRIDGE_HOST" envDefault:"localhost"`
	Port    int           `env:"SCENEBRIDGE_PORT" envDefault:"9876"`
	Workers int           `env:"SCENEBRIDGE_WORKERS" envDefault:"5"`
	Timeout time.Duration `env:"SCENEBRIDGE_TIMEOUT" envDefault:"30s"`
}

// ConfigFromEnv loads configuration from environment variables.
func ConfigFromEnv() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Addr returns the host:port listening address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
