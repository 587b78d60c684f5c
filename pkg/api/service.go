package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/ethpandaops/embedapi/pkg/api/handlers"
	"github.com/ethpandaops/embedapi/pkg/articles"
	"github.com/ethpandaops/embedapi/pkg/transformer"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/sirupsen/logrus"
)

// Service defines the API service interface
type Service interface {
	Start(ctx context.Context) error
	Stop() error
}

type service struct {
	app      *fiber.App
	server   *http.Server
	config   *Config
	repo     articles.Repository
	registry *transformer.Registry
	log      logrus.FieldLogger
}

// NewService creates a new API service
func NewService(cfg *Config, repo articles.Repository, registry *transformer.Registry, log logrus.FieldLogger) Service {
	return &service{
		config:   cfg,
		repo:     repo,
		registry: registry,
		log:      log.WithField("service", "api"),
	}
}

// NewApp builds the Fiber app with middleware and the /api/v1 routes
func NewApp(cfg *Config, repo articles.Repository, registry *transformer.Registry, log logrus.FieldLogger) *fiber.App {
	// Create Fiber app with custom error handler
	app := fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
		AppName:      "embedapi",
	})

	// Setup middleware
	setupMiddleware(app, cfg)

	// Create API handler implementation
	server := handlers.NewServer(repo, registry, log)

	// Create API v1 group
	server.RegisterRoutes(app.Group("/api/v1"))

	return app
}

// Start initializes and starts the API server
func (s *service) Start(_ context.Context) error {
	if !s.config.Enabled {
		s.log.Info("API service is disabled")
		return nil
	}

	s.app = NewApp(s.config, s.repo, s.registry, s.log)

	// Create HTTP server with the Fiber app
	fiberHandler := adaptor.FiberApp(s.app)
	s.server = &http.Server{
		Addr:              s.config.Addr,
		Handler:           fiberHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		s.log.WithField("addr", s.config.Addr).Info("Starting API server")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("Server failed to start")
		}
	}()

	return nil
}

// Stop gracefully shuts down the API server
func (s *service) Stop() error {
	if s.server == nil {
		return nil
	}

	s.log.Info("Stopping API server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
