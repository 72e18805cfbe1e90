package notifications

import "time"

// Type is the delivery channel or the business event behind a notification.
type Type string

const (
	TypeEmail   Type = "email"
	TypeSMS     Type = "sms"
	TypePush    Type = "push"
	TypeWebhook Type = "webhook"
	TypeOrder   Type = "order"
	TypePayment Type = "payment"
	TypeOther   Type = "other"
)

// Status is the canonical delivery state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
	StatusRead      Status = "read"
	StatusFailed    Status = "failed"
	StatusUnknown   Status = "unknown"
)

type Notification struct {
	ID        string    `json:"id"`
	OrderID   string    `json:"orderId"`
	UserID    string    `json:"userId"`
	Message   string    `json:"message"`
	Type      Type      `json:"type"`
	Status    Status    `json:"status"`
	RawStatus string    `json:"rawStatus,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Key identifies the notification inside a snapshot.
func (n Notification) Key() string {
	return n.ID
}

// Dispatched reports whether the notification left the system successfully.
// Only sent and delivered count; read is tracked separately.
func (s Status) Dispatched() bool {
	return s == StatusSent || s == StatusDelivered
}
