package wire

import (
	"github.com/preston-bernstein/dashboard-service/internal/domain/notifications"
	"github.com/preston-bernstein/dashboard-service/internal/domain/orders"
	"github.com/preston-bernstein/dashboard-service/internal/domain/payments"
	"github.com/preston-bernstein/dashboard-service/internal/domain/products"
	"github.com/preston-bernstein/dashboard-service/internal/domain/users"
	"github.com/preston-bernstein/dashboard-service/internal/timeutil"
)

func (o Order) ToDomain() orders.Order {
	raw := first(o.Status)
	return orders.Order{
		ID:          first(o.ID),
		UserID:      first(o.UserID, o.UserIDSnake),
		ProductName: first(o.ProductName, o.ProductNameSnake),
		Quantity:    int(o.Quantity),
		Price:       o.Price,
		Status:      orders.ParseStatus(raw),
		RawStatus:   raw,
		CreatedAt:   timeutil.ParseTimestamp(first(o.CreatedAt, o.CreatedAtSnake)),
	}
}

func (p Payment) ToDomain() payments.Payment {
	raw := first(p.Status)
	return payments.Payment{
		ID:        first(p.ID),
		OrderID:   first(p.OrderID, p.OrderIDSnake),
		UserID:    first(p.UserID, p.UserIDSnake),
		Amount:    p.Amount,
		Status:    payments.ParseStatus(raw),
		RawStatus: raw,
		Method:    payments.ParseMethod(first(p.PaymentMethod, p.PaymentMethodSnake, p.Method)),
		CreatedAt: timeutil.ParseTimestamp(first(p.CreatedAt, p.CreatedAtSnake)),
	}
}

func (n Notification) ToDomain() notifications.Notification {
	raw := first(n.Status)
	return notifications.Notification{
		ID:        first(n.ID),
		OrderID:   first(n.OrderID, n.OrderIDSnake),
		UserID:    first(n.UserID, n.UserIDSnake),
		Message:   string(n.Message),
		Type:      notifications.ParseType(first(n.Type)),
		Status:    notifications.ParseStatus(raw),
		RawStatus: raw,
		CreatedAt: timeutil.ParseTimestamp(first(n.CreatedAt, n.CreatedAtSnake)),
	}
}

func (u User) ToDomain() users.User {
	return users.User{
		ID:        first(u.ID),
		Name:      first(u.Name),
		Email:     first(u.Email),
		CreatedAt: timeutil.ParseTimestamp(first(u.CreatedAt, u.CreatedAtSnake)),
	}
}

func (p Product) ToDomain() products.Product {
	return products.Product{
		ID:       first(p.ID),
		Name:     first(p.Name),
		Category: first(p.Category),
		Price:    p.Price,
		Stock:    int(p.Stock),
	}
}

// Mappable is any wire record with a domain projection.
type Mappable[T any] interface {
	ToDomain() T
}

// MapAll projects wire records onto domain records, preserving order.
func MapAll[W Mappable[T], T any](in []W) []T {
	out := make([]T, 0, len(in))
	for _, w := range in {
		out = append(out, w.ToDomain())
	}
	return out
}
