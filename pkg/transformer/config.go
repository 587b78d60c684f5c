package transformer

import (
	"errors"
	"fmt"

	"github.com/creasty/defaults"
	"github.com/ethpandaops/embedapi/pkg/fractal"
)

var (
	// ErrEmbedsKeyRequired is returned when the embeds query key is empty
	ErrEmbedsKeyRequired = errors.New("embeds key is required")
	// ErrEmbedsSeparatorRequired is returned when the embeds separator is empty
	ErrEmbedsSeparatorRequired = errors.New("embeds separator is required")
	// ErrInvalidRecursionLimit is returned when the recursion limit is not positive
	ErrInvalidRecursionLimit = errors.New("recursion limit must be positive")
)

// Config holds the transformer registry configuration
type Config struct {
	// EmbedsKey is the query parameter holding the requested embeds.
	EmbedsKey string `yaml:"embedsKey" default:"embeds"`
	// EmbedsSeparator splits the embeds parameter into scopes.
	EmbedsSeparator string `yaml:"embedsSeparator" default:","`
	// Serializer is the output envelope, "array" or "data".
	Serializer string `yaml:"serializer" default:"array" validate:"oneof=array data"`
	// RecursionLimit caps how deep nested embeds are followed.
	RecursionLimit int `yaml:"recursionLimit" default:"10"`
}

// DefaultConfig returns a Config populated from its default tags
func DefaultConfig() *Config {
	cfg := &Config{}
	if err := defaults.Set(cfg); err != nil {
		// Only fails for non-pointer arguments.
		panic(err)
	}

	return cfg
}

// Validate validates the transformer configuration
func (c *Config) Validate() error {
	if c.EmbedsKey == "" {
		return ErrEmbedsKeyRequired
	}

	if c.EmbedsSeparator == "" {
		return ErrEmbedsSeparatorRequired
	}

	if c.RecursionLimit <= 0 {
		return ErrInvalidRecursionLimit
	}

	if _, err := fractal.SerializerByName(c.Serializer); err != nil {
		return fmt.Errorf("invalid serializer: %w", err)
	}

	return nil
}
