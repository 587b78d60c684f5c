package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	//nolint:gosec // only exposed if pprofAddr config is set
	_ "net/http/pprof"

	"github.com/ethpandaops/embedapi/pkg/api"
	"github.com/ethpandaops/embedapi/pkg/articles"
	"github.com/ethpandaops/embedapi/pkg/observability"
	"github.com/ethpandaops/embedapi/pkg/redis"
	"github.com/ethpandaops/embedapi/pkg/transformer"
	r "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Server represents the main application server
type Server struct {
	log    logrus.FieldLogger
	config *Config

	redis    *r.Client
	repo     articles.Repository
	registry *transformer.Registry
	api      api.Service

	pprofServer  *http.Server
	healthServer *http.Server
}

// NewServer creates a new server instance. Articles are stored in Redis when
// it is configured and in memory otherwise.
func NewServer(ctx context.Context, log logrus.FieldLogger, config *Config) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	s := &Server{
		config: config,
		log:    log.WithField("service", "server"),
	}

	if config.Redis != nil {
		client, err := redis.New(ctx, config.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis client: %w", err)
		}

		s.redis = client
		s.repo = articles.NewRedisStore(client, config.Redis)
	} else {
		s.repo = articles.NewMemoryStore()
	}

	registry, err := NewRegistry(config, s.repo, log)
	if err != nil {
		s.closeRedis()
		return nil, err
	}

	s.registry = registry
	observability.SetTransformersRegistered(len(registry.Transformers()))

	if config.Seed {
		if err := articles.Seed(ctx, s.repo); err != nil {
			s.closeRedis()
			return nil, fmt.Errorf("failed to seed articles: %w", err)
		}

		s.log.Info("Seeded demo articles")
	}

	s.api = api.NewService(&config.API, s.repo, registry, log)

	return s, nil
}

// Registry returns the transformer registry serving the API
func (s *Server) Registry() *transformer.Registry {
	return s.registry
}

// Repository returns the article store
func (s *Server) Repository() articles.Repository {
	return s.repo
}

// Start starts the server and all its components. It blocks until ctx is
// canceled or the process receives SIGINT or SIGTERM.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start API server, it listens in the background
	if err := s.api.Start(ctx); err != nil {
		return fmt.Errorf("failed to start api: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	// Log component states
	s.log.WithFields(logrus.Fields{
		"has_redis":    s.redis != nil,
		"transformers": len(s.registry.Transformers()),
	}).Debug("Server component states")

	// Start metrics server
	g.Go(func() error {
		defer func() {
			if recovered := recover(); recovered != nil {
				s.log.WithField("panic", recovered).Error("Panic in metrics server goroutine")
			}
		}()
		observability.StartMetricsServer(ctx, s.config.MetricsAddr)
		<-ctx.Done()

		return nil
	})

	// Start pprof server if configured
	if s.config.PProfAddr != nil {
		s.pprofServer = s.newPProfServer()

		g.Go(func() error {
			s.log.WithField("addr", s.pprofServer.Addr).Info("Starting pprof server")

			if err := s.pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			<-ctx.Done()

			return nil
		})
	}

	// Start health check server if configured
	if s.config.HealthCheckAddr != nil {
		s.healthServer = s.newHealthServer()

		g.Go(func() error {
			s.log.WithField("addr", s.healthServer.Addr).Info("Starting healthcheck server")

			if err := s.healthServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			<-ctx.Done()

			return nil
		})
	}

	// Wait for shutdown signal
	g.Go(func() error {
		<-ctx.Done()

		// Use a fresh context for cleanup since the current one is canceled
		return s.stop(context.Background())
	})

	return g.Wait()
}

func (s *Server) stop(ctx context.Context) error {
	// Create a timeout context for cleanup
	cleanupCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.log.Info("Starting graceful shutdown...")

	if err := s.api.Stop(); err != nil {
		s.log.WithError(err).Error("failed to stop api")
	}

	// Shutdown HTTP servers
	if s.pprofServer != nil {
		if err := s.pprofServer.Shutdown(cleanupCtx); err != nil {
			s.log.WithError(err).Error("failed to shutdown pprof server")
		}
	}

	if s.healthServer != nil {
		if err := s.healthServer.Shutdown(cleanupCtx); err != nil {
			s.log.WithError(err).Error("failed to shutdown health server")
		}
	}

	// Stop metrics server using observability package
	if err := observability.StopMetricsServer(cleanupCtx); err != nil {
		s.log.WithError(err).Error("failed to stop metrics server")
	}

	s.closeRedis()

	s.log.Info("Server stopped gracefully")

	return nil
}

func (s *Server) closeRedis() {
	if s.redis == nil {
		return
	}

	s.log.Info("Closing Redis connection...")

	if err := s.redis.Close(); err != nil {
		s.log.WithError(err).Error("failed to close redis")
	}
}

func (s *Server) newPProfServer() *http.Server {
	return &http.Server{
		Addr:              *s.config.PProfAddr,
		ReadHeaderTimeout: 120 * time.Second,
	}
}

func (s *Server) newHealthServer() *http.Server {
	return &http.Server{
		Addr:              *s.config.HealthCheckAddr,
		ReadHeaderTimeout: 120 * time.Second,
		Handler:           http.HandlerFunc(s.handleHealth),
	}
}

// handleHealth reports unhealthy while the Redis store is unreachable
func (s *Server) handleHealth(w http.ResponseWriter, req *http.Request) {
	if s.redis != nil {
		if err := s.redis.Ping(req.Context()).Err(); err != nil {
			s.log.WithError(err).Warn("Health check failed")
			observability.RecordError("server", "health_check")
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}
	}

	w.WriteHeader(http.StatusOK)
}
