package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// WaitConfig bounds WaitHealthy.
type WaitConfig struct {
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxElapsed      time.Duration
}

// WaitHealthy probes checker with exponential backoff until it reports healthy,
// ctx ends or MaxElapsed passes. It is meant for startup only.
func WaitHealthy(ctx context.Context, checker HealthChecker, cfg WaitConfig, logger *slog.Logger) error {
	if checker == nil {
		return ErrProviderUnavailable
	}

	b := backoff.NewExponentialBackOff()
	if cfg.InitialInterval > 0 {
		b.InitialInterval = cfg.InitialInterval
	}
	if cfg.MaxInterval > 0 {
		b.MaxInterval = cfg.MaxInterval
	}
	b.MaxElapsedTime = cfg.MaxElapsed

	attempt := 0
	op := func() error {
		attempt++
		return checker.Health(ctx)
	}
	notify := func(err error, next time.Duration) {
		if logger != nil {
			logger.Warn("upstream not healthy yet",
				slog.Int("attempt", attempt),
				slog.Duration("retry_in", next),
				slog.Any("error", err),
			)
		}
	}
	return backoff.RetryNotify(op, backoff.WithContext(b, ctx), notify)
}
