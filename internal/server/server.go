package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/retrodesk/reanimated/internal/ai"
	"github.com/retrodesk/reanimated/internal/desktop"
	"github.com/retrodesk/reanimated/internal/events"
	apihttp "github.com/retrodesk/reanimated/internal/http"
	"github.com/retrodesk/reanimated/internal/infrastructure/config"
	"github.com/retrodesk/reanimated/internal/infrastructure/logging"
	"github.com/retrodesk/reanimated/internal/infrastructure/monitoring"
	"github.com/retrodesk/reanimated/internal/middleware"
	"github.com/retrodesk/reanimated/internal/session"
	"github.com/retrodesk/reanimated/internal/storage"
	"github.com/retrodesk/reanimated/internal/vfs"
	"github.com/retrodesk/reanimated/internal/ws"
)

// Server wraps the HTTP server and its wired dependencies.
type Server struct {
	router  *gin.Engine
	http    *http.Server
	logger  *logging.Logger
	config  *config.Config
	metrics *monitoring.Metrics
	fs      *vfs.VFS
	done    chan struct{}
}

// New builds the full dependency graph from configuration.
func New(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		var err error
		logger, err = logging.New(logging.Config{
			Level:       cfg.Logging.Level,
			Development: false,
			OutputPaths: []string{"stdout"},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to build logger: %w", err)
		}
	}

	logger.Info("initializing backend",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("ai_provider", cfg.AI.Provider),
		zap.Bool("in_memory", cfg.Storage.InMemory),
	)

	metrics := monitoring.NewMetrics()

	var store storage.Store
	if cfg.Storage.InMemory {
		store = storage.NewMemStore()
	} else {
		fileStore, err := storage.NewFileStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open storage: %w", err)
		}
		store = fileStore
	}

	emitter := events.New(logger.Logger)
	fs := vfs.New(store, emitter, logger.Logger)

	aiClient := ai.NewClient(ai.Config{
		Provider:             cfg.AI.Provider,
		APIKey:               cfg.AI.APIKey,
		Model:                cfg.AI.Model,
		Timeout:              cfg.AI.Timeout,
		MaxRetries:           cfg.AI.MaxRetries,
		CacheSize:            cfg.AI.CacheSize,
		DisableCache:         cfg.AI.DisableCache,
		DisableUsageTracking: cfg.AI.DisableUsage,
		Observer:             metrics,
	}, store, logger.Logger)

	desk := desktop.NewManager()
	sessions := session.NewManager(store, desk, logger.Logger)

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger.Logger))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS())
	if cfg.RateLimit.Enabled {
		logger.Info("rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(fs, aiClient, desk, sessions, metrics)
	wsHandler := ws.NewHandler(emitter, metrics, logger.Logger)
	apihttp.RegisterRoutes(router, handlers, wsHandler)

	logger.Info("server initialized")

	return &Server{
		router:  router,
		logger:  logger,
		config:  cfg,
		metrics: metrics,
		fs:      fs,
		done:    make(chan struct{}),
	}, nil
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	addr := s.config.Server.Addr()
	s.logger.Info("starting http server", zap.String("addr", addr))

	s.http = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go s.refreshGauges()

	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down")
	close(s.done)

	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
	}

	s.logger.Sync()
	return nil
}

// Router exposes the mounted engine for tests.
func (s *Server) Router() *gin.Engine { return s.router }

// refreshGauges keeps the slow-moving gauges current.
func (s *Server) refreshGauges() {
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.metrics.UpdateUptime()
			stats := s.fs.Stats()
			s.metrics.SetFSCounts(stats.Files, stats.Folders)
		case <-s.done:
			return
		}
	}
}
