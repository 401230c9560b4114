package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/nba-next-game-service/internal/app/nextgame"
	"github.com/preston-bernstein/nba-next-game-service/internal/config"
	httpserver "github.com/preston-bernstein/nba-next-game-service/internal/http"
	"github.com/preston-bernstein/nba-next-game-service/internal/http/handlers"
	"github.com/preston-bernstein/nba-next-game-service/internal/http/middleware"
	"github.com/preston-bernstein/nba-next-game-service/internal/logging"
	"github.com/preston-bernstein/nba-next-game-service/internal/metrics"
	"github.com/preston-bernstein/nba-next-game-service/internal/providers"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	providers     providerStack
	resolver      *nextgame.Resolver
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a server backed by the configured provider.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithProvider(cfg, logger, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.DataProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.DataProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	stack := newProviderFactory(logger, recorder).build(cfg, provider)
	resolver := buildResolver(cfg, stack, logger, recorder)
	readiness := func() handlers.Readiness {
		return handlers.Readiness{Provider: stack.name, BoxScoreBreaker: stack.boxScores.State()}
	}
	httpSrv := buildHTTPServer(cfg, resolver, readiness, logger, recorder)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		providers:     stack,
		resolver:      resolver,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
	}
}

func buildResolver(cfg config.Config, stack providerStack, logger *slog.Logger, recorder *metrics.Recorder) *nextgame.Resolver {
	rc := cfg.Resolver
	src := nextgame.Sources{
		Players:   stack.data,
		Schedule:  stack.data,
		BoxScores: stack.boxScores,
	}
	return nextgame.NewResolver(src, nextgame.Config{
		Finder: nextgame.FinderConfig{
			WindowDays:     rc.WindowDays,
			SeasonPageSize: rc.SeasonPageSize,
			Concurrent:     rc.ConcurrentWindow,
			Concurrency:    rc.WindowConcurrency,
		},
		LiveWindow:      rc.LiveWindow,
		DisplayLocation: displayLocation(rc.DisplayTimezone, logger),
		BoxScoreTimeout: stack.boxScoreBudget(rc.BoxScoreTimeout),
	}, logger, recorder)
}

// displayLocation loads the display zone, falling back to UTC when it is unknown.
func displayLocation(tz string, logger *slog.Logger) *time.Location {
	if loc := providers.ResolveTimezone(tz); loc != nil {
		return loc
	}
	if tz != "" {
		logging.Warn(logger, "unknown display timezone, using UTC", "timezone", tz)
	}
	return time.UTC
}

func buildHTTPServer(cfg config.Config, resolver *nextgame.Resolver, readiness func() handlers.Readiness, logger *slog.Logger, recorder *metrics.Recorder) httpServer {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	handler := handlers.NewHandler(resolver, logger, readiness)
	router := httpserver.NewRouter(handler, cfg.HTTP.AllowedOrigins)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           wrapped,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP and metrics servers, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	if s.logger != nil {
		s.logger.Info("http server starting", slog.String("addr", s.httpServer.Addr()))
	}
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	if s.logger != nil {
		s.logger.Info("metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           handler,
				ReadHeaderTimeout: readHeaderTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
