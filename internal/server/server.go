package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/EminDurmuSS/TestKgeRecipe/config"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/database"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/logging"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/middleware"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/notify"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/router"
	"github.com/EminDurmuSS/TestKgeRecipe/internal/service"
)

const (
	warmupTimeout    = 30 * time.Second
	// added to the backend timeout so a slow but live request keeps its lock
	submitLockMargin = 5 * time.Second
)

// submitLockTTL bounds how long a crashed instance can block a session
func submitLockTTL(cfg *config.Config) time.Duration {
	return cfg.Backend.Timeout + submitLockMargin
}

// Server represents the HTTP server
type Server struct {
	cfg     *config.Config
	router  *gin.Engine
	http    *http.Server
	catalog *service.IngredientCatalog
	redis   *redis.Client
}

// New wires the frontend. Sessions live in Redis when it is enabled and
// reachable, in memory otherwise.
func New(ctx context.Context, cfg *config.Config) *Server {
	gin.SetMode(cfg.Env.GinMode())

	s := &Server{cfg: cfg}

	var (
		store service.SessionStore
		guard service.SubmitGuard
	)
	if cfg.Redis.Enabled {
		client, err := database.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			logging.Warn().Err(err).Msg("Redis unavailable, keeping sessions in memory")
		} else {
			s.redis = client
			store = service.NewRedisStore(client, cfg.Session.TTL)
			guard = service.NewRedisGuard(client, submitLockTTL(cfg))
		}
	}
	if store == nil {
		store = service.NewMemoryStore(cfg.Session.TTL)
		guard = service.NewMemoryGuard()
	}

	client := service.NewRecommendationService(cfg.Backend.URL, cfg.Backend.Timeout)
	s.catalog = service.NewIngredientCatalog(client)
	forms := service.NewFormService(store, guard, client, s.catalog, notify.NewCenter(cfg.UI.ToastTTL))

	s.router = router.SetupRouter(forms, router.Options{
		Tokens: middleware.NewSessionTokens(cfg.Session.Secret, cfg.Session.TTL),
		Cookie: middleware.CookieOptions{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.Session.SecureCookie,
		},
		Origins: cfg.CORS.Origins,
	})

	s.http = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	return s
}

// Handler exposes the router, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start loads the ingredient catalog in the background and serves until
// Shutdown is called.
func (s *Server) Start() error {
	go s.warmCatalog()

	logging.Info().Str("addr", s.http.Addr).Str("backend", s.cfg.Backend.URL).Msg("Starting server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// warmCatalog fetches the ingredient list once at startup. A failure is only
// logged; the first page render retries.
func (s *Server) warmCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), warmupTimeout)
	defer cancel()
	if names, err := s.catalog.Names(ctx); err != nil {
		logging.Warn().Err(err).Msg("Ingredient catalog not loaded at startup")
	} else {
		logging.Info().Int("count", len(names)).Msg("Ingredient catalog loaded")
	}
}

// Shutdown gracefully stops the HTTP server and closes Redis
func (s *Server) Shutdown(ctx context.Context) error {
	if d := s.cfg.Server.ShutdownTimeout; d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	err := s.http.Shutdown(ctx)
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to close Redis: %w", cerr))
		}
	}
	return err
}
