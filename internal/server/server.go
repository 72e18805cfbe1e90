package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/preston-bernstein/dashboard-service/internal/app/dashboard"
	"github.com/preston-bernstein/dashboard-service/internal/app/tables"
	"github.com/preston-bernstein/dashboard-service/internal/auth"
	"github.com/preston-bernstein/dashboard-service/internal/config"
	httpserver "github.com/preston-bernstein/dashboard-service/internal/http"
	"github.com/preston-bernstein/dashboard-service/internal/http/handlers"
	"github.com/preston-bernstein/dashboard-service/internal/http/middleware"
	"github.com/preston-bernstein/dashboard-service/internal/logging"
	"github.com/preston-bernstein/dashboard-service/internal/metrics"
	"github.com/preston-bernstein/dashboard-service/internal/poller"
	"github.com/preston-bernstein/dashboard-service/internal/prefs"
	"github.com/preston-bernstein/dashboard-service/internal/providers"
)

var metricsSetup = metrics.Setup

// passwordCost is a var so tests can hash the demo accounts cheaply.
var passwordCost = bcrypt.DefaultCost

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	source        providers.Source
	tables        *tables.Registry
	dashboard     *dashboard.Service
	httpServer    httpServer
	metricsServer httpServer
	pollers       []Poller
	metricsStop   func(context.Context) error
}

// New constructs a server over the source named in cfg.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithSource(cfg, logger, nil, nil)
}

// newServerWithSource wires every component. A nil src is built from cfg;
// an injected src still gets the shared decorators.
func newServerWithSource(cfg config.Config, logger *slog.Logger, src providers.Source, recorder *metrics.Recorder) (*Server, error) {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	if cfg.Auth.UsesDefaultSecret() {
		logging.Warn(logger, "signing sessions with the built-in development secret, set JWT_SECRET in production")
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)
	recorder.WithErrorClassifier(providers.ErrorKindOf)

	factory := newSourceFactory(logger, recorder)
	if src == nil {
		src = factory.build(cfg.Source)
	} else {
		src = factory.wrap(cfg.Source, src)
	}
	logger.Info("source selected", slog.String(logging.FieldProvider, src.Name()))

	tableOpts := poller.Options{
		Interval: cfg.Polling.TableInterval,
		Timeout:  cfg.Polling.FetchTimeout,
		Logger:   logger,
		Metrics:  recorder,
	}
	registry, catalog := buildTables(src, tableOpts, logger)
	dashOpts := tableOpts
	dashOpts.Interval = cfg.Polling.DashboardInterval
	dash := buildDashboard(src, catalog, dashOpts)

	handler, err := buildHandler(cfg, registry, dash, recorder, logger)
	if err != nil {
		return nil, err
	}

	pollers := make([]Poller, 0, len(registry.All())+1)
	for _, t := range registry.All() {
		pollers = append(pollers, t)
	}
	pollers = append(pollers, dash)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		source:        src,
		tables:        registry,
		dashboard:     dash,
		httpServer:    buildHTTPServer(cfg, handler, recorder, logger),
		metricsServer: metricsSrv,
		pollers:       pollers,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, pollers ...Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		pollers:    pollers,
	}
}

func buildHandler(cfg config.Config, registry *tables.Registry, dash *dashboard.Service, recorder *metrics.Recorder, logger *slog.Logger) (*handlers.Handler, error) {
	verifier, err := auth.NewDemoVerifier(passwordCost)
	if err != nil {
		return nil, fmt.Errorf("build verifier: %w", err)
	}
	sessions, err := auth.NewSessions(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("build sessions: %w", err)
	}
	store, err := prefs.Open(cfg.PrefsPath)
	if err != nil {
		return nil, fmt.Errorf("open preferences: %w", err)
	}

	return handlers.NewHandler(handlers.Deps{
		Tables:      registry,
		Dashboard:   dash,
		Verifier:    verifier,
		Sessions:    sessions,
		Preferences: store,
		Refresh:     handlers.NewRefreshLimiter(cfg.Refresh.Rate, cfg.Refresh.Burst),
		Metrics:     recorder,
		Logger:      logger,
	}), nil
}

func buildHTTPServer(cfg config.Config, handler *handlers.Handler, recorder *metrics.Recorder, logger *slog.Logger) httpServer {
	router := httpserver.NewRouter(handler)
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the HTTP servers and the pollers, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.waitHealthy(ctx)
	for _, p := range s.pollers {
		p.Start(ctx)
	}

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

// waitHealthy holds the pollers back until the upstream answers its health
// probe. Giving up only logs; the pollers report their own failures.
func (s *Server) waitHealthy(ctx context.Context) {
	if !s.cfg.Source.WaitHealthy || s.source == nil {
		return
	}
	err := providers.WaitHealthy(ctx, s.source, providers.WaitConfig{
		InitialInterval: healthInitialInterval,
		MaxInterval:     healthMaxInterval,
		MaxElapsed:      s.cfg.Source.WaitHealthyMax,
	}, s.logger)
	if err != nil && s.logger != nil {
		logging.Warn(s.logger, "upstream still unhealthy, starting pollers anyway",
			slog.String(logging.FieldProvider, s.source.Name()),
			slog.Any("err", err),
		)
	}
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

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	for _, p := range s.pollers {
		if err := p.Stop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Error("failed to stop poller", "error", err)
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
	if err != nil || rec == nil {
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
				ReadHeaderTimeout: readTimeout,
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
