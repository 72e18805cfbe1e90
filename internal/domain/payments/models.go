package payments

import (
	"time"

	"github.com/preston-bernstein/dashboard-service/internal/domain/money"
)

// Status is the canonical payment state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
	StatusUnknown   Status = "unknown"
)

// Method is how the payment was made.
type Method string

const (
	MethodCard         Method = "card"
	MethodPix          Method = "pix"
	MethodBankTransfer Method = "bank_transfer"
	MethodBoleto       Method = "boleto"
	MethodOther        Method = "other"
)

// Payment references the order it settles.
type Payment struct {
	ID        string       `json:"id"`
	OrderID   string       `json:"orderId"`
	UserID    string       `json:"userId"`
	Amount    money.Amount `json:"amount"`
	Status    Status       `json:"status"`
	RawStatus string       `json:"rawStatus,omitempty"`
	Method    Method       `json:"method"`
	CreatedAt time.Time    `json:"createdAt"`
}

// Key identifies the payment inside a snapshot.
func (p Payment) Key() string {
	return p.ID
}
