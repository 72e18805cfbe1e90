package providers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/preston-bernstein/dashboard-service/internal/domain/notifications"
	"github.com/preston-bernstein/dashboard-service/internal/domain/orders"
	"github.com/preston-bernstein/dashboard-service/internal/domain/payments"
	"github.com/preston-bernstein/dashboard-service/internal/domain/products"
	"github.com/preston-bernstein/dashboard-service/internal/domain/users"
	"github.com/preston-bernstein/dashboard-service/internal/logging"
	"github.com/preston-bernstein/dashboard-service/internal/metrics"
)

const tracerName = "github.com/preston-bernstein/dashboard-service/internal/providers"

// instrumentedSource records attempts, latency and failures for every call
// and wraps each in a client span.
type instrumentedSource struct {
	next    Source
	metrics *metrics.Recorder
	logger  *slog.Logger
	tracer  trace.Tracer
	now     func() time.Time
}

func NewInstrumentedSource(next Source, recorder *metrics.Recorder, logger *slog.Logger) Source {
	return &instrumentedSource{
		next:    next,
		metrics: recorder,
		logger:  logger,
		tracer:  otel.Tracer(tracerName),
		now:     time.Now,
	}
}

func (s *instrumentedSource) Name() string {
	if s.next == nil {
		return "instrumented"
	}
	return s.next.Name()
}

func (s *instrumentedSource) Supports(kind Kind) bool {
	return Supports(s.next, kind)
}

func observe[T any](ctx context.Context, s *instrumentedSource, kind Kind, fn func(context.Context, Source) (T, int, error)) (T, error) {
	var zero T
	if s.next == nil {
		return zero, ErrProviderUnavailable
	}
	provider := s.next.Name()

	ctx, span := s.tracer.Start(ctx, "fetch "+string(kind),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(metrics.AttrProvider, provider),
			attribute.String(metrics.AttrKind, string(kind)),
		),
	)
	defer span.End()

	start := s.now()
	out, count, err := fn(ctx, s.next)
	elapsed := s.now().Sub(start)

	s.metrics.RecordFetch(provider, string(kind), elapsed, err)
	logger := logging.FromContext(ctx, s.logger)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if fe, ok := AsFetchError(err); ok && fe.Status == http.StatusTooManyRequests {
			s.metrics.RecordRateLimit(provider, string(kind), fe.RetryAfter)
		}
		logWithProvider(ctx, logger, slog.LevelWarn, provider, "upstream fetch failed",
			slog.String(logging.FieldKind, string(kind)),
			slog.String(logging.FieldErrorKind, ErrorKindOf(err)),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			slog.Any("error", err),
		)
		return zero, err
	}

	span.SetAttributes(attribute.Int("records", count))
	logWithProvider(ctx, logger, slog.LevelDebug, provider, "upstream fetch",
		slog.String(logging.FieldKind, string(kind)),
		slog.Int(logging.FieldCount, count),
		slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
	)
	return out, nil
}

func counted[T any](fetch func(Source, context.Context) ([]T, error)) func(context.Context, Source) ([]T, int, error) {
	return func(ctx context.Context, next Source) ([]T, int, error) {
		out, err := fetch(next, ctx)
		return out, len(out), err
	}
}

func (s *instrumentedSource) FetchOrders(ctx context.Context) ([]orders.Order, error) {
	return observe(ctx, s, KindOrders, counted(Source.FetchOrders))
}

func (s *instrumentedSource) FetchPayments(ctx context.Context) ([]payments.Payment, error) {
	return observe(ctx, s, KindPayments, counted(Source.FetchPayments))
}

func (s *instrumentedSource) FetchNotifications(ctx context.Context) ([]notifications.Notification, error) {
	return observe(ctx, s, KindNotifications, counted(Source.FetchNotifications))
}

func (s *instrumentedSource) FetchUsers(ctx context.Context) ([]users.User, error) {
	return observe(ctx, s, KindUsers, counted(Source.FetchUsers))
}

func (s *instrumentedSource) FetchProducts(ctx context.Context) ([]products.Product, error) {
	return observe(ctx, s, KindProducts, counted(Source.FetchProducts))
}

func (s *instrumentedSource) FetchDashboard(ctx context.Context) (Dashboard, error) {
	return observe(ctx, s, KindDashboard, func(ctx context.Context, next Source) (Dashboard, int, error) {
		d, err := next.FetchDashboard(ctx)
		return d, len(d.Orders) + len(d.Payments) + len(d.Notifications) + len(d.Users), err
	})
}

func (s *instrumentedSource) Health(ctx context.Context) error {
	_, err := observe(ctx, s, KindHealth, func(ctx context.Context, next Source) (struct{}, int, error) {
		return struct{}{}, 0, next.Health(ctx)
	})
	return err
}
