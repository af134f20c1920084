// Package api implements app.Runner for the API server process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/izuchukwuMcGibson/HNG-Task-2/pkg/app/http"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/config"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/countrystore"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/markerstore"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/pgutil"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/query"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/refresh"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/summary"
	"github.com/izuchukwuMcGibson/HNG-Task-2/pkg/upstream"
)

const defaultRequestTimeout = 60

// Server holds cfg to init the api server.
type Server struct {
	cfg *config.Config
}

// NewServer initializes new api server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("api server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting API server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	db, err := pgutil.ConnectDB(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	logger.Info("Connected to database",
		zap.String("host", cfg.Database.Host),
		zap.String("database", cfg.Database.Database),
	)

	redisClient, err := markerstore.NewClient(ctx, &cfg.Redis)
	if err != nil {
		return err
	}
	defer func() { _ = redisClient.Close() }()

	logger.Info("Connected to redis", zap.String("addr", cfg.Redis.Addr))

	countryStore := countrystore.NewStore(db)
	markerStore := markerstore.NewStore(redisClient)
	gateway := upstream.NewClient(&cfg.Upstream, logger)

	summaryService := summary.NewService(
		countryStore,
		markerStore,
		summary.NewChartRenderer(&cfg.Image),
		cfg.Image.CachePath,
		logger,
	)
	refreshService := refresh.NewService(gateway, countryStore, markerStore, summaryService, logger)
	queryService := query.NewService(countryStore, markerStore, logger)

	router := s.setupRouter(refreshService, queryService, summaryService, logger)

	return apphttp.ServeAndWait(ctx, router, logger, &cfg.Server)
}

func (s *Server) setupRouter(
	refreshService refresh.Service,
	queryService query.Service,
	summaryService summary.Service,
	logger *zap.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(time.Second * defaultRequestTimeout))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	refresh.RegisterRoutes(r, refreshService, logger)
	query.RegisterRoutes(r, queryService, logger)
	summary.RegisterRoutes(r, summaryService, logger)

	if s.cfg.Monitoring.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}
