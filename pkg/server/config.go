// Package server provides server configuration and management
package server

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/ethpandaops/embedapi/pkg/api"
	"github.com/ethpandaops/embedapi/pkg/articles"
	"github.com/ethpandaops/embedapi/pkg/redis"
	"github.com/ethpandaops/embedapi/pkg/transformer"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Define static errors
var (
	ErrInvalidShutdownTimeout = errors.New("shutdown timeout must be positive")
	ErrMetricsAddrRequired    = errors.New("metrics address is required")
)

// Config holds server configuration
type Config struct {
	// MetricsAddr is the address to listen on for metrics.
	MetricsAddr string `yaml:"metricsAddr" default:":9090"`
	// HealthCheckAddr is the address to listen on for healthcheck.
	HealthCheckAddr *string `yaml:"healthCheckAddr"`
	// PProfAddr is the address to listen on for pprof.
	PProfAddr *string `yaml:"pprofAddr"`
	// LoggingLevel is the logging level to use.
	LoggingLevel string `yaml:"logging" default:"info"`
	// Redis is the redis configuration. Articles are kept in memory when unset.
	Redis *redis.Config `yaml:"redis"`
	// API is the HTTP API configuration.
	API api.Config `yaml:"api"`
	// Transformer configures how responses are transformed.
	Transformer transformer.Config `yaml:"transformer"`
	// Links configures the links rendered in article responses.
	Links articles.Config `yaml:"links"`
	// Seed loads the demo articles on startup.
	Seed bool `yaml:"seed" default:"true"`
	// ShutdownTimeout is the timeout for shutting down the server.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" default:"10s"`
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.MetricsAddr == "" {
		return ErrMetricsAddrRequired
	}

	if _, err := logrus.ParseLevel(c.LoggingLevel); err != nil {
		return fmt.Errorf("invalid logging level: %w", err)
	}

	if c.ShutdownTimeout <= 0 {
		return ErrInvalidShutdownTimeout
	}

	if c.Redis != nil {
		if err := c.Redis.Validate(); err != nil {
			return fmt.Errorf("invalid redis configuration: %w", err)
		}
	}

	if err := c.API.Validate(); err != nil {
		return fmt.Errorf("invalid api configuration: %w", err)
	}

	if err := c.Transformer.Validate(); err != nil {
		return fmt.Errorf("invalid transformer configuration: %w", err)
	}

	return nil
}

// DefaultConfig returns a Config populated from its default tags
func DefaultConfig() (*Config, error) {
	config := &Config{}

	if err := defaults.Set(config); err != nil {
		return nil, err
	}

	return config, nil
}

// LoadConfig reads, defaults and validates the configuration file at path
func LoadConfig(path string) (*Config, error) {
	config, err := DefaultConfig()
	if err != nil {
		return nil, err
	}

	yamlFile, err := os.ReadFile(path) //nolint:gosec // User-provided config file path
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(yamlFile, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Sections that only exist in the file miss their defaults.
	if config.Redis != nil {
		if err := defaults.Set(config.Redis); err != nil {
			return nil, err
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}
