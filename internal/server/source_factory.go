package server

import (
	"log/slog"

	"github.com/preston-bernstein/dashboard-service/internal/config"
	"github.com/preston-bernstein/dashboard-service/internal/metrics"
	"github.com/preston-bernstein/dashboard-service/internal/providers"
)

// sourceFactory wraps a source with the shared decorators: instrumentation
// innermost, then the circuit breaker, then the rate limiter.
type sourceFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newSourceFactory(logger *slog.Logger, recorder *metrics.Recorder) sourceFactory {
	return sourceFactory{logger: logger, metrics: recorder}
}

func (f sourceFactory) build(cfg config.SourceConfig) providers.Source {
	return f.wrap(cfg, selectSource(cfg, f.logger))
}

func (f sourceFactory) wrap(cfg config.SourceConfig, base providers.Source) providers.Source {
	src := providers.NewInstrumentedSource(base, f.metrics, f.logger)
	if cfg.BreakerEnabled {
		failures := cfg.BreakerFailures
		if failures < 0 {
			failures = 0
		}
		src = providers.NewBreakerSource(src, providers.BreakerConfig{
			ConsecutiveFailures: uint32(failures),
			OpenTimeout:         cfg.BreakerTimeout,
			OnStateChange: func(name, _, to string) {
				f.metrics.RecordBreakerState(name, to)
			},
		}, f.logger)
	}
	return providers.NewRateLimitedSource(src, cfg.RateLimit, cfg.RateBurst, f.logger)
}
