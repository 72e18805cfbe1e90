package wire

import (
	"github.com/preston-bernstein/dashboard-service/internal/domain/money"
)

// Order accepts both the BFF's camelCase fields and the services' snake_case ones.
type Order struct {
	ID               flexString   `json:"id"`
	UserID           flexString   `json:"userID"`
	UserIDSnake      flexString   `json:"user_id"`
	ProductName      flexString   `json:"productName"`
	ProductNameSnake flexString   `json:"product_name"`
	Quantity         flexInt      `json:"quantity"`
	Price            money.Amount `json:"price"`
	Status           flexString   `json:"status"`
	CreatedAt        flexString   `json:"createdAt"`
	CreatedAtSnake   flexString   `json:"created_at"`
}

type Payment struct {
	ID                 flexString   `json:"id"`
	OrderID            flexString   `json:"orderID"`
	OrderIDSnake       flexString   `json:"order_id"`
	UserID             flexString   `json:"userID"`
	UserIDSnake        flexString   `json:"user_id"`
	Amount             money.Amount `json:"amount"`
	Status             flexString   `json:"status"`
	PaymentMethod      flexString   `json:"paymentMethod"`
	PaymentMethodSnake flexString   `json:"payment_method"`
	Method             flexString   `json:"method"`
	CreatedAt          flexString   `json:"createdAt"`
	CreatedAtSnake     flexString   `json:"created_at"`
}

type Notification struct {
	ID             flexString `json:"id"`
	OrderID        flexString `json:"orderID"`
	OrderIDSnake   flexString `json:"order_id"`
	UserID         flexString `json:"userID"`
	UserIDSnake    flexString `json:"user_id"`
	Message        flexString `json:"message"`
	Type           flexString `json:"type"`
	Status         flexString `json:"status"`
	CreatedAt      flexString `json:"createdAt"`
	CreatedAtSnake flexString `json:"created_at"`
}

type User struct {
	ID             flexString `json:"id"`
	Name           flexString `json:"name"`
	Email          flexString `json:"email"`
	CreatedAt      flexString `json:"createdAt"`
	CreatedAtSnake flexString `json:"created_at"`
}

type Product struct {
	ID       flexString   `json:"id"`
	Name     flexString   `json:"name"`
	Category flexString   `json:"category"`
	Price    money.Amount `json:"price"`
	Stock    flexInt      `json:"stock"`
}
