package testutil

import (
	"time"

	"github.com/preston-bernstein/dashboard-service/internal/domain/money"
	"github.com/preston-bernstein/dashboard-service/internal/domain/notifications"
	"github.com/preston-bernstein/dashboard-service/internal/domain/orders"
	"github.com/preston-bernstein/dashboard-service/internal/domain/payments"
	"github.com/preston-bernstein/dashboard-service/internal/domain/products"
	"github.com/preston-bernstein/dashboard-service/internal/domain/users"
)

var sampleTime = time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)

// SampleOrder returns a minimal order fixture with the provided id and status.
func SampleOrder(id string, status orders.Status) orders.Order {
	return orders.Order{
		ID:          id,
		UserID:      "u1",
		ProductName: "Notebook",
		Quantity:    1,
		Price:       money.Amount("100.00"),
		Status:      status,
		RawStatus:   string(status),
		CreatedAt:   sampleTime,
	}
}

// SamplePayment returns a card payment fixture.
func SamplePayment(id string, amount money.Amount, status payments.Status) payments.Payment {
	return payments.Payment{
		ID:        id,
		OrderID:   id,
		UserID:    "u1",
		Amount:    amount,
		Status:    status,
		RawStatus: string(status),
		Method:    payments.MethodCard,
		CreatedAt: sampleTime,
	}
}

// SampleNotification returns an email notification fixture.
func SampleNotification(id string, status notifications.Status) notifications.Notification {
	return notifications.Notification{
		ID:        id,
		OrderID:   id,
		UserID:    "u1",
		Message:   "Pedido " + id + " confirmado",
		Type:      notifications.TypeEmail,
		Status:    status,
		RawStatus: string(status),
		CreatedAt: sampleTime,
	}
}

func SampleUser(id string) users.User {
	return users.User{ID: id, Name: "User " + id, Email: id + "@example.com", CreatedAt: sampleTime}
}

func SampleProduct(id string, stock int) products.Product {
	return products.Product{ID: id, Name: "Product " + id, Category: "Electronics", Price: money.Amount("10.00"), Stock: stock}
}
