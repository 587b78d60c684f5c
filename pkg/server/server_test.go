package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethpandaops/embedapi/internal/testutil"
	"github.com/ethpandaops/embedapi/pkg/articles"
	"github.com/ethpandaops/embedapi/pkg/observability"
	"github.com/ethpandaops/embedapi/pkg/redis"
	"github.com/ethpandaops/embedapi/pkg/transformer"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *Config {
	t.Helper()

	config, err := DefaultConfig()
	require.NoError(t, err)

	config.MetricsAddr = "127.0.0.1:0"
	config.API.Addr = "127.0.0.1:0"

	return config
}

func TestNewServer_Memory(t *testing.T) {
	srv, err := NewServer(context.Background(), testutil.NewLogger(), testConfig(t))
	require.NoError(t, err)

	assert.IsType(t, &articles.MemoryStore{}, srv.Repository())

	list, err := srv.Repository().ListArticles(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)

	rules := srv.Registry().Transformers()
	assert.Len(t, rules, 3)
	assert.Contains(t, rules, articles.KeyArticle)

	out, err := srv.Registry().Transform(list[0], nil)
	require.NoError(t, err)
	assert.Equal(t, "The first actual bug", out.(map[string]any)["title"])
}

func TestNewServer_TransformersRegisteredGauge(t *testing.T) {
	_, err := NewServer(context.Background(), testutil.NewLogger(), testConfig(t))
	require.NoError(t, err)
	assert.InDelta(t, 3, promtestutil.ToFloat64(observability.TransformersRegistered), 0)

	// Registries built outside the server leave the gauge alone.
	other, err := transformer.NewRegistry(nil, nil, testutil.NewLogger())
	require.NoError(t, err)
	other.Register("only", nil)

	config, err := DefaultConfig()
	require.NoError(t, err)
	_, err = NewRegistry(config, articles.NewMemoryStore(), testutil.NewLogger())
	require.NoError(t, err)

	assert.InDelta(t, 3, promtestutil.ToFloat64(observability.TransformersRegistered), 0)
}

func TestNewServer_WithoutSeed(t *testing.T) {
	config := testConfig(t)
	config.Seed = false

	srv, err := NewServer(context.Background(), testutil.NewLogger(), config)
	require.NoError(t, err)

	list, err := srv.Repository().ListArticles(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNewServer_Redis(t *testing.T) {
	mr := testutil.NewMiniredis(t)

	config := testConfig(t)
	config.Redis = &redis.Config{Address: mr.Addr(), Prefix: "test"}

	srv, err := NewServer(context.Background(), testutil.NewLogger(), config)
	require.NoError(t, err)
	t.Cleanup(srv.closeRedis)

	assert.IsType(t, &articles.RedisStore{}, srv.Repository())
	assert.True(t, mr.Exists("test:articles"))

	list, err := srv.Repository().ListArticles(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestNewServer_Errors(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		config := testConfig(t)
		config.MetricsAddr = ""

		_, err := NewServer(context.Background(), testutil.NewLogger(), config)
		assert.ErrorIs(t, err, ErrMetricsAddrRequired)
	})

	t.Run("unreachable redis", func(t *testing.T) {
		mr := testutil.NewMiniredis(t)
		addr := mr.Addr()
		mr.Close()

		config := testConfig(t)
		config.Redis = &redis.Config{Address: addr, DialTimeout: 100 * time.Millisecond}

		_, err := NewServer(context.Background(), testutil.NewLogger(), config)
		assert.ErrorContains(t, err, "failed to create redis client")
	})
}

func TestServer_HandleHealth(t *testing.T) {
	t.Run("memory store", func(t *testing.T) {
		srv, err := NewServer(context.Background(), testutil.NewLogger(), testConfig(t))
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		srv.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("redis down", func(t *testing.T) {
		mr := testutil.NewMiniredis(t)

		config := testConfig(t)
		config.Redis = &redis.Config{Address: mr.Addr()}

		srv, err := NewServer(context.Background(), testutil.NewLogger(), config)
		require.NoError(t, err)
		t.Cleanup(srv.closeRedis)

		rec := httptest.NewRecorder()
		srv.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		assert.Equal(t, http.StatusOK, rec.Code)

		mr.Close()

		rec = httptest.NewRecorder()
		srv.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestServer_StartStop(t *testing.T) {
	health := "127.0.0.1:0"

	config := testConfig(t)
	config.HealthCheckAddr = &health
	config.ShutdownTimeout = time.Second

	srv, err := NewServer(context.Background(), testutil.NewLogger(), config)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- srv.Start(ctx)
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
