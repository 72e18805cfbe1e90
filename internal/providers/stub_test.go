package providers

import (
	"context"
	"sync/atomic"

	"github.com/preston-bernstein/dashboard-service/internal/domain/notifications"
	"github.com/preston-bernstein/dashboard-service/internal/domain/orders"
	"github.com/preston-bernstein/dashboard-service/internal/domain/payments"
	"github.com/preston-bernstein/dashboard-service/internal/domain/products"
	"github.com/preston-bernstein/dashboard-service/internal/domain/users"
)

type stubSource struct {
	orders    []orders.Order
	err       error
	healthErr func(call int32) error
	calls     atomic.Int32
	health    atomic.Int32
}

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) FetchOrders(context.Context) ([]orders.Order, error) {
	s.calls.Add(1)
	return s.orders, s.err
}

func (s *stubSource) FetchPayments(context.Context) ([]payments.Payment, error) {
	s.calls.Add(1)
	return nil, s.err
}

func (s *stubSource) FetchNotifications(context.Context) ([]notifications.Notification, error) {
	s.calls.Add(1)
	return nil, s.err
}

func (s *stubSource) FetchUsers(context.Context) ([]users.User, error) {
	s.calls.Add(1)
	return nil, s.err
}

func (s *stubSource) FetchProducts(context.Context) ([]products.Product, error) {
	s.calls.Add(1)
	return nil, s.err
}

func (s *stubSource) FetchDashboard(context.Context) (Dashboard, error) {
	s.calls.Add(1)
	return Dashboard{Orders: s.orders}, s.err
}

func (s *stubSource) Health(context.Context) error {
	n := s.health.Add(1)
	if s.healthErr != nil {
		return s.healthErr(n)
	}
	return nil
}

func testOrder(id string) orders.Order {
	return orders.Order{ID: id, Status: orders.StatusPending}
}
