package teststubs

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/dashboard-service/internal/domain/notifications"
	"github.com/preston-bernstein/dashboard-service/internal/domain/orders"
	"github.com/preston-bernstein/dashboard-service/internal/domain/payments"
	"github.com/preston-bernstein/dashboard-service/internal/domain/products"
	"github.com/preston-bernstein/dashboard-service/internal/domain/users"
	"github.com/preston-bernstein/dashboard-service/internal/providers"
)

// StubSource is a test double for providers.Source. Errs fails individual
// kinds; Unsupported hides kinds from providers.Supports.
type StubSource struct {
	Orders        []orders.Order
	Payments      []payments.Payment
	Notifications []notifications.Notification
	Users         []users.User
	Products      []products.Product

	Errs        map[providers.Kind]error
	HealthErr   error
	Unsupported map[providers.Kind]bool
	// Notify is closed on the first fetch of any kind.
	Notify chan struct{}

	mu     sync.Mutex
	calls  map[providers.Kind]int
	health atomic.Int32
}

var _ providers.Source = (*StubSource)(nil)

func (s *StubSource) Name() string { return "stub" }

func (s *StubSource) Supports(kind providers.Kind) bool {
	return !s.Unsupported[kind]
}

// Calls returns how many times kind was fetched.
func (s *StubSource) Calls(kind providers.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[kind]
}

// HealthCalls returns how many health probes ran.
func (s *StubSource) HealthCalls() int {
	return int(s.health.Load())
}

func (s *StubSource) track(kind providers.Kind) error {
	s.mu.Lock()
	if s.calls == nil {
		s.calls = make(map[providers.Kind]int)
	}
	s.calls[kind]++
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.mu.Unlock()
	return s.Errs[kind]
}

func (s *StubSource) FetchOrders(context.Context) ([]orders.Order, error) {
	if err := s.track(providers.KindOrders); err != nil {
		return nil, err
	}
	return s.Orders, nil
}

func (s *StubSource) FetchPayments(context.Context) ([]payments.Payment, error) {
	if err := s.track(providers.KindPayments); err != nil {
		return nil, err
	}
	return s.Payments, nil
}

func (s *StubSource) FetchNotifications(context.Context) ([]notifications.Notification, error) {
	if err := s.track(providers.KindNotifications); err != nil {
		return nil, err
	}
	return s.Notifications, nil
}

func (s *StubSource) FetchUsers(context.Context) ([]users.User, error) {
	if err := s.track(providers.KindUsers); err != nil {
		return nil, err
	}
	return s.Users, nil
}

func (s *StubSource) FetchProducts(context.Context) ([]products.Product, error) {
	if err := s.track(providers.KindProducts); err != nil {
		return nil, err
	}
	return s.Products, nil
}

func (s *StubSource) FetchDashboard(context.Context) (providers.Dashboard, error) {
	if err := s.track(providers.KindDashboard); err != nil {
		return providers.Dashboard{}, err
	}
	return providers.Dashboard{
		Orders:        s.Orders,
		Payments:      s.Payments,
		Notifications: s.Notifications,
		Users:         s.Users,
	}, nil
}

func (s *StubSource) Health(context.Context) error {
	s.health.Add(1)
	return s.HealthErr
}
