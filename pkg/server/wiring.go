package server

import (
	"fmt"

	"github.com/ethpandaops/embedapi/pkg/articles"
	"github.com/ethpandaops/embedapi/pkg/container"
	"github.com/ethpandaops/embedapi/pkg/transformer"
	"github.com/sirupsen/logrus"
)

// NewRegistry builds the transformer registry with the article rules
// registered and their dependencies bound in a fresh container.
func NewRegistry(config *Config, repo articles.Repository, log logrus.FieldLogger) (*transformer.Registry, error) {
	c := container.New()
	articles.Provide(c, repo, &config.Links)

	registry, err := transformer.NewRegistry(&config.Transformer, c, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create transformer registry: %w", err)
	}

	articles.Register(registry)

	return registry, nil
}
