package server

import (
	"errors"
	"log/slog"
	"time"
)

// Option is a function that configures the server.
type Option func(s *Server) error

// WithAddr sets the listening address.
func WithAddr(addr string) Option {
	return func(s *Server) error {
		s.addr = addr
		return nil
	}
}

// WithWorkers sets the connection worker pool capacity.
func WithWorkers(n int) Option {
	return func(s *Server) error {
		if n <= 0 {
			return errors.New("workers must be positive")
		}
		s.workers = n
		return nil
	}
}

// WithTimeout sets the server-wide command execution timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Server) error {
		if timeout <= 0 {
			return errors.New("timeout must be positive")
		}
		s.timeout = timeout
		return nil
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		s.logger = logger
		return nil
	}
}

// WithConfig applies an environment-derived configuration.
func WithConfig(cfg *Config) Option {
	return func(s *Server) error {
		s.addr = cfg.Addr()
		if cfg.Workers > 0 {
			s.workers = cfg.Workers
		}
		if cfg.Timeout > 0 {
			s.timeout = cfg.Timeout
		}
		return nil
	}
}
