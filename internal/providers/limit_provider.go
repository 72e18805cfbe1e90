package providers

import (
	"context"
	"log/slog"

	"golang.org/x/time/rate"

	"github.com/preston-bernstein/dashboard-service/internal/domain/notifications"
	"github.com/preston-bernstein/dashboard-service/internal/domain/orders"
	"github.com/preston-bernstein/dashboard-service/internal/domain/payments"
	"github.com/preston-bernstein/dashboard-service/internal/domain/products"
	"github.com/preston-bernstein/dashboard-service/internal/domain/users"
)

// rateLimitedSource wraps a Source and bounds how often it reaches upstream.
type rateLimitedSource struct {
	next    Source
	limiter *rate.Limiter
	logger  *slog.Logger
}

// NewRateLimitedSource returns a Source that allows at most perSecond upstream
// calls with the given burst. Calls block until a token is available or ctx ends.
// A non-positive rate disables limiting and returns next unchanged.
func NewRateLimitedSource(next Source, perSecond float64, burst int, logger *slog.Logger) Source {
	if perSecond <= 0 {
		return next
	}
	if burst <= 0 {
		burst = 1
	}
	return &rateLimitedSource{
		next:    next,
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		logger:  logger,
	}
}

func (p *rateLimitedSource) Name() string {
	if p.next == nil {
		return "rate-limited"
	}
	return p.next.Name()
}

func (p *rateLimitedSource) Supports(kind Kind) bool {
	return Supports(p.next, kind)
}

func (p *rateLimitedSource) wait(ctx context.Context, kind Kind) error {
	if p.next == nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, "rate-limited", "provider unavailable")
		return ErrProviderUnavailable
	}
	if err := p.limiter.Wait(ctx); err != nil {
		logWithProvider(ctx, p.logger, slog.LevelWarn, p.next.Name(), "rate-limited fetch canceled", slog.String("kind", string(kind)))
		return err
	}
	return nil
}

func (p *rateLimitedSource) FetchOrders(ctx context.Context) ([]orders.Order, error) {
	if err := p.wait(ctx, KindOrders); err != nil {
		return nil, err
	}
	return p.next.FetchOrders(ctx)
}

func (p *rateLimitedSource) FetchPayments(ctx context.Context) ([]payments.Payment, error) {
	if err := p.wait(ctx, KindPayments); err != nil {
		return nil, err
	}
	return p.next.FetchPayments(ctx)
}

func (p *rateLimitedSource) FetchNotifications(ctx context.Context) ([]notifications.Notification, error) {
	if err := p.wait(ctx, KindNotifications); err != nil {
		return nil, err
	}
	return p.next.FetchNotifications(ctx)
}

func (p *rateLimitedSource) FetchUsers(ctx context.Context) ([]users.User, error) {
	if err := p.wait(ctx, KindUsers); err != nil {
		return nil, err
	}
	return p.next.FetchUsers(ctx)
}

func (p *rateLimitedSource) FetchProducts(ctx context.Context) ([]products.Product, error) {
	if err := p.wait(ctx, KindProducts); err != nil {
		return nil, err
	}
	return p.next.FetchProducts(ctx)
}

func (p *rateLimitedSource) FetchDashboard(ctx context.Context) (Dashboard, error) {
	if err := p.wait(ctx, KindDashboard); err != nil {
		return Dashboard{}, err
	}
	return p.next.FetchDashboard(ctx)
}

// Health is never throttled.
func (p *rateLimitedSource) Health(ctx context.Context) error {
	if p.next == nil {
		return ErrProviderUnavailable
	}
	return p.next.Health(ctx)
}
