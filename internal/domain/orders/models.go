package orders

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/dashboard-service/internal/domain/money"
)

// Status is the canonical order lifecycle state.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusCancelled  Status = "cancelled"
	StatusUnknown    Status = "unknown"
)

// Order is a read-only snapshot of an order as reported upstream.
type Order struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	ProductName string       `json:"productName"`
	Quantity    int          `json:"quantity"`
	Price       money.Amount `json:"price"`
	Status      Status       `json:"status"`
	RawStatus   string       `json:"rawStatus,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// Key identifies the order inside a snapshot.
func (o Order) Key() string {
	return o.ID
}

// Total is unit price times quantity.
func (o Order) Total() decimal.Decimal {
	return o.Price.Decimal().Mul(decimal.NewFromInt(int64(o.Quantity)))
}
