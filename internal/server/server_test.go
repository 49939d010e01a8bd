package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EminDurmuSS/TestKgeRecipe/config"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/service"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/testhelpers"
)

func testConfig(backendURL string) *config.Config {
	return &config.Config{
		Env: config.Test,
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            "0",
			ShutdownTimeout: time.Second,
		},
		Backend: config.BackendConfig{URL: backendURL, Timeout: 2 * time.Second},
		Session: config.SessionConfig{Secret: "test-secret", CookieName: "recipe_session", TTL: time.Hour},
		UI:      config.UIConfig{ToastTTL: 5 * time.Second},
		CORS:    config.CORSConfig{Origins: []string{"*"}},
	}
}

func closedPort(t *testing.T) string {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())
	return strconv.Itoa(port)
}

func TestNew(t *testing.T) {
	backend := testhelpers.NewFakeBackend(t)
	backend.Ingredients = []string{"egg"}
	srv := New(context.Background(), testConfig(backend.URL))

	t.Run("should answer the health check", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		assert.Empty(t, w.Result().Cookies())
	})

	t.Run("should start a session on the page", func(t *testing.T) {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		require.Len(t, w.Result().Cookies(), 1)
		assert.Equal(t, "recipe_session", w.Result().Cookies()[0].Name)
	})

	t.Run("should warm the ingredient catalog", func(t *testing.T) {
		srv.warmCatalog()
		names, err := srv.catalog.Names(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"egg"}, names)
	})

	require.NoError(t, srv.Shutdown(context.Background()))
}

func TestSubmitLockTTL(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	for _, timeout := range []time.Duration{0, time.Second, 30 * time.Second} {
		cfg.Backend.Timeout = timeout
		assert.Equal(t, timeout+submitLockMargin, submitLockTTL(cfg))
	}
}

func TestNew_RedisFallback(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1")
	cfg.Redis = config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: closedPort(t)}

	srv := New(context.Background(), cfg)
	assert.Nil(t, srv.redis)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), service.IngredientsLoadFailMsg)
}

func TestNew_Redis(t *testing.T) {
	client := testhelpers.SetupTestRedis(t)
	host, port, err := net.SplitHostPort(client.Options().Addr)
	require.NoError(t, err)

	backend := testhelpers.NewFakeBackend(t)
	cfg := testConfig(backend.URL)
	cfg.Redis = config.RedisConfig{Enabled: true, Host: host, Port: port}

	srv := New(context.Background(), cfg)
	require.NotNil(t, srv.redis)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	keys, err := client.Keys(context.Background(), "frontend:session:*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 1)

	t.Run("should hold the submit lock past the backend timeout", func(t *testing.T) {
		ctx := context.Background()
		guard := service.NewRedisGuard(client, submitLockTTL(cfg))
		release, err := guard.Acquire(ctx, "slow")
		require.NoError(t, err)
		defer release()

		ttl, err := client.TTL(ctx, "frontend:submit:slow").Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, cfg.Backend.Timeout)
	})

	require.NoError(t, srv.Shutdown(context.Background()))
}
