package aggregate

import (
	"fmt"

	"github.com/preston-bernstein/dashboard-service/internal/domain/notifications"
	"github.com/preston-bernstein/dashboard-service/internal/domain/orders"
	"github.com/preston-bernstein/dashboard-service/internal/domain/payments"
	"github.com/preston-bernstein/dashboard-service/internal/timeutil"
)

const (
	IconOrder        = "📦"
	IconPayment      = "💳"
	IconNotification = "🔔"

	messagePreviewRunes = 50
)

// Activity is one line of the recent-activity feed.
type Activity struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	Icon           string `json:"icon"`
	TimestampLabel string `json:"timestampLabel"`
}

// RecentActivity takes the last orders, then the last payments, then the last
// notifications, in that order, truncated to MaxRecentActivity. Collections
// are assumed to arrive oldest first.
func RecentActivity(orderList []orders.Order, paymentList []payments.Payment, notificationList []notifications.Notification) []Activity {
	feed := make([]Activity, 0, MaxRecentActivity)
	for _, o := range lastN(orderList, recentOrders) {
		feed = append(feed, orderActivity(o))
	}
	for _, p := range lastN(paymentList, recentPayments) {
		feed = append(feed, paymentActivity(p))
	}
	for _, n := range lastN(notificationList, recentNotifications) {
		feed = append(feed, notificationActivity(n))
	}
	if len(feed) > MaxRecentActivity {
		feed = feed[:MaxRecentActivity]
	}
	return feed
}

func orderActivity(o orders.Order) Activity {
	return Activity{
		Title:          fmt.Sprintf("New order #%s", o.ID),
		Description:    fmt.Sprintf("%s - %s", o.ProductName, o.Price.Label()),
		Icon:           IconOrder,
		TimestampLabel: timeutil.ActivityLabel(o.CreatedAt),
	}
}

func paymentActivity(p payments.Payment) Activity {
	status := p.RawStatus
	if status == "" {
		status = string(p.Status)
	}
	return Activity{
		Title:          fmt.Sprintf("Payment processed #%s", p.ID),
		Description:    fmt.Sprintf("%s - %s", p.Amount.Label(), status),
		Icon:           IconPayment,
		TimestampLabel: timeutil.ActivityLabel(p.CreatedAt),
	}
}

func notificationActivity(n notifications.Notification) Activity {
	return Activity{
		Title:          fmt.Sprintf("Notification sent #%s", n.ID),
		Description:    preview(n.Message, messagePreviewRunes),
		Icon:           IconNotification,
		TimestampLabel: timeutil.ActivityLabel(n.CreatedAt),
	}
}

// preview cuts s to limit runes, marking the cut with "...".
func preview(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
