// Package handlers implements the article API request handlers. Every
// response goes through the transformer registry, so callers can shape the
// output with the embeds query parameter.
package handlers

import (
	"fmt"

	"github.com/ethpandaops/embedapi/pkg/articles"
	"github.com/ethpandaops/embedapi/pkg/transformer"
	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// Server holds the dependencies of the API handlers
type Server struct {
	repo     articles.Repository
	registry *transformer.Registry
	log      logrus.FieldLogger
}

// NewServer creates a new API server instance
func NewServer(repo articles.Repository, registry *transformer.Registry, log logrus.FieldLogger) *Server {
	return &Server{
		repo:     repo,
		registry: registry,
		log:      log.WithField("component", "api.handlers"),
	}
}

// RegisterRoutes mounts the handlers on router
func (s *Server) RegisterRoutes(router fiber.Router) {
	router.Get("/articles", s.ListArticles)
	router.Post("/articles", s.CreateArticle)
	router.Get("/articles/:id", s.GetArticle)
	router.Post("/articles/:id/comments", s.CreateComment)
	router.Get("/authors/:id", s.GetAuthor)
	router.Get("/transformers", s.ListTransformers)
}

// queryRequest exposes the query string of c to the registry
func queryRequest(c fiber.Ctx) transformer.Request {
	return transformer.RequestFunc(func(key string) string {
		return c.Query(key)
	})
}

// respond writes value, transformed when a rule is registered for it and
// passed through unchanged otherwise.
func (s *Server) respond(c fiber.Ctx, status int, value any) error {
	if !s.registry.IsTransformable(value) {
		return c.Status(status).JSON(value)
	}

	out, err := s.registry.BindRequest(queryRequest(c)).Transform(value)
	if err != nil {
		return s.transformError(c, err)
	}

	return c.Status(status).JSON(out)
}

// respondCollection always renders items as a collection, so empty results
// keep the configured envelope.
func (s *Server) respondCollection(c fiber.Ctx, items []any) error {
	out, err := s.registry.TransformCollection(items, queryRequest(c))
	if err != nil {
		return s.transformError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

func (s *Server) transformError(c fiber.Ctx, err error) error {
	s.log.WithError(err).WithFields(logrus.Fields{
		"path":   c.Path(),
		"embeds": c.Query(s.registry.Config().EmbedsKey),
	}).Error("Failed to transform response")

	return fmt.Errorf("failed to transform response: %w", err)
}
