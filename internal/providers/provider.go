package providers

import (
	"context"

	"github.com/preston-bernstein/dashboard-service/internal/domain/notifications"
	"github.com/preston-bernstein/dashboard-service/internal/domain/orders"
	"github.com/preston-bernstein/dashboard-service/internal/domain/payments"
	"github.com/preston-bernstein/dashboard-service/internal/domain/products"
	"github.com/preston-bernstein/dashboard-service/internal/domain/users"
)

// Kind names a collection the dashboard can poll.
type Kind string

const (
	KindOrders        Kind = "orders"
	KindPayments      Kind = "payments"
	KindNotifications Kind = "notifications"
	KindUsers         Kind = "users"
	KindProducts      Kind = "products"
)

// Labels for calls that are not a single collection.
const (
	KindDashboard Kind = "dashboard"
	KindHealth    Kind = "health"
)

// Kinds lists every collection kind in display order.
func Kinds() []Kind {
	return []Kind{KindOrders, KindPayments, KindNotifications, KindUsers, KindProducts}
}

// ParseKind resolves a collection kind from its name.
func ParseKind(raw string) (Kind, bool) {
	for _, k := range Kinds() {
		if string(k) == raw {
			return k, true
		}
	}
	return "", false
}

// OrderSource fetches the full orders collection.
type OrderSource interface {
	FetchOrders(ctx context.Context) ([]orders.Order, error)
}

// PaymentSource fetches the full payments collection.
type PaymentSource interface {
	FetchPayments(ctx context.Context) ([]payments.Payment, error)
}

// NotificationSource fetches the full notifications collection.
type NotificationSource interface {
	FetchNotifications(ctx context.Context) ([]notifications.Notification, error)
}

// UserSource fetches the full users collection.
type UserSource interface {
	FetchUsers(ctx context.Context) ([]users.User, error)
}

// ProductSource fetches the product catalog.
type ProductSource interface {
	FetchProducts(ctx context.Context) ([]products.Product, error)
}

// Dashboard is the combined payload behind the summary view.
type Dashboard struct {
	Orders        []orders.Order
	Payments      []payments.Payment
	Notifications []notifications.Notification
	Users         []users.User
}

// DashboardSource fetches the dashboard collections in a single round-trip where the upstream allows it.
type DashboardSource interface {
	FetchDashboard(ctx context.Context) (Dashboard, error)
}

// HealthChecker probes upstream availability.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Source combines every capability. Each call issues one upstream request
// (FetchDashboard may issue one per collection on upstreams without a
// combined query), never retries and never caches.
type Source interface {
	OrderSource
	PaymentSource
	NotificationSource
	UserSource
	ProductSource
	DashboardSource
	HealthChecker
	Name() string
}

// KindSupporter is implemented by sources that cannot serve every kind.
type KindSupporter interface {
	Supports(kind Kind) bool
}

// Supports reports whether src can serve kind. Sources that do not
// implement KindSupporter serve every kind.
func Supports(src Source, kind Kind) bool {
	if src == nil {
		return false
	}
	if ks, ok := src.(KindSupporter); ok {
		return ks.Supports(kind)
	}
	return true
}
