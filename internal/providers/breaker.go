package providers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"github.com/preston-bernstein/dashboard-service/internal/domain/notifications"
	"github.com/preston-bernstein/dashboard-service/internal/domain/orders"
	"github.com/preston-bernstein/dashboard-service/internal/domain/payments"
	"github.com/preston-bernstein/dashboard-service/internal/domain/products"
	"github.com/preston-bernstein/dashboard-service/internal/domain/users"
)

const (
	defaultBreakerFailures = 5
	defaultBreakerTimeout  = 30 * time.Second
)

// BreakerConfig tunes NewBreakerSource.
type BreakerConfig struct {
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
	// OnStateChange observes transitions, e.g. for metrics.
	OnStateChange func(name, from, to string)
}

// breakerSource short-circuits calls while the upstream keeps failing.
// An open breaker surfaces as a network FetchError.
type breakerSource struct {
	next    Source
	breaker *gobreaker.CircuitBreaker
}

func NewBreakerSource(next Source, cfg BreakerConfig, logger *slog.Logger) Source {
	if cfg.ConsecutiveFailures == 0 {
		cfg.ConsecutiveFailures = defaultBreakerFailures
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = defaultBreakerTimeout
	}
	name := "upstream"
	if next != nil {
		name = next.Name()
	}
	settings := gobreaker.Settings{
		Name:    name,
		Timeout: cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logWithProvider(context.Background(), logger, slog.LevelWarn, name, "circuit breaker state change",
				slog.String("from", from.String()), slog.String("to", to.String()))
			if cfg.OnStateChange != nil {
				cfg.OnStateChange(name, from.String(), to.String())
			}
		},
		IsSuccessful: breakerSuccess,
	}
	return &breakerSource{next: next, breaker: gobreaker.NewCircuitBreaker(settings)}
}

// breakerSuccess keeps caller cancellations and unsupported kinds from
// counting against upstream health.
func breakerSuccess(err error) bool {
	return err == nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, ErrUnsupportedKind)
}

func (b *breakerSource) Name() string {
	if b.next == nil {
		return "breaker"
	}
	return b.next.Name()
}

func (b *breakerSource) Supports(kind Kind) bool {
	return Supports(b.next, kind)
}

func guard[T any](b *breakerSource, kind Kind, fn func() (T, error)) (T, error) {
	var zero T
	if b.next == nil {
		return zero, ErrProviderUnavailable
	}
	out, err := b.breaker.Execute(func() (interface{}, error) {
		return fn()
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return zero, NewNetworkError(b.next.Name(), kind, err)
		}
		return zero, err
	}
	return out.(T), nil
}

func (b *breakerSource) FetchOrders(ctx context.Context) ([]orders.Order, error) {
	return guard(b, KindOrders, func() ([]orders.Order, error) { return b.next.FetchOrders(ctx) })
}

func (b *breakerSource) FetchPayments(ctx context.Context) ([]payments.Payment, error) {
	return guard(b, KindPayments, func() ([]payments.Payment, error) { return b.next.FetchPayments(ctx) })
}

func (b *breakerSource) FetchNotifications(ctx context.Context) ([]notifications.Notification, error) {
	return guard(b, KindNotifications, func() ([]notifications.Notification, error) { return b.next.FetchNotifications(ctx) })
}

func (b *breakerSource) FetchUsers(ctx context.Context) ([]users.User, error) {
	return guard(b, KindUsers, func() ([]users.User, error) { return b.next.FetchUsers(ctx) })
}

func (b *breakerSource) FetchProducts(ctx context.Context) ([]products.Product, error) {
	return guard(b, KindProducts, func() ([]products.Product, error) { return b.next.FetchProducts(ctx) })
}

func (b *breakerSource) FetchDashboard(ctx context.Context) (Dashboard, error) {
	return guard(b, KindDashboard, func() (Dashboard, error) { return b.next.FetchDashboard(ctx) })
}

// Health bypasses the breaker so startup probes see the real upstream.
func (b *breakerSource) Health(ctx context.Context) error {
	if b.next == nil {
		return ErrProviderUnavailable
	}
	return b.next.Health(ctx)
}

// State reports the breaker state, mostly for readiness output.
func (b *breakerSource) State() string {
	return b.breaker.State().String()
}
