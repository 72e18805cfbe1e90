// Package aggregate derives the dashboard's summary figures from the latest
// collection snapshots. Everything here is pure: the same input always yields
// the same output and labels depend only on record timestamps.
package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/dashboard-service/internal/domain/notifications"
	"github.com/preston-bernstein/dashboard-service/internal/domain/orders"
	"github.com/preston-bernstein/dashboard-service/internal/domain/payments"
	"github.com/preston-bernstein/dashboard-service/internal/domain/products"
)

const (
	recentOrders        = 3
	recentPayments      = 2
	recentNotifications = 2
	// MaxRecentActivity caps the merged activity feed.
	MaxRecentActivity = 5
)

// Summary is the dashboard's headline figures.
type Summary struct {
	TotalOrders        int             `json:"totalOrders"`
	CompletedOrders    int             `json:"completedOrders"`
	PendingOrders      int             `json:"pendingOrders"`
	SuccessfulPayments int             `json:"successfulPayments"`
	TotalRevenue       decimal.Decimal `json:"totalRevenue"`
	SentNotifications  int             `json:"sentNotifications"`
	RecentActivity     []Activity      `json:"recentActivity"`
}

// Summarize computes the dashboard summary.
func Summarize(orderList []orders.Order, paymentList []payments.Payment, notificationList []notifications.Notification) Summary {
	s := Summary{
		TotalOrders:  len(orderList),
		TotalRevenue: decimal.Zero,
	}
	for _, o := range orderList {
		switch o.Status {
		case orders.StatusCompleted:
			s.CompletedOrders++
		case orders.StatusPending:
			s.PendingOrders++
		}
	}
	for _, p := range paymentList {
		if p.Status == payments.StatusApproved {
			s.SuccessfulPayments++
			s.TotalRevenue = s.TotalRevenue.Add(p.Amount.Decimal())
		}
	}
	for _, n := range notificationList {
		if n.Status.Dispatched() {
			s.SentNotifications++
		}
	}
	s.RecentActivity = RecentActivity(orderList, paymentList, notificationList)
	return s
}

// CatalogSummary is the product page's headline figures.
type CatalogSummary struct {
	Total      int             `json:"total"`
	TotalValue decimal.Decimal `json:"totalValue"`
	Categories int             `json:"categories"`
	LowStock   int             `json:"lowStock"`
}

// SummarizeCatalog counts products, distinct categories and low-stock items,
// and sums price times stock.
func SummarizeCatalog(ps []products.Product) CatalogSummary {
	c := CatalogSummary{Total: len(ps), TotalValue: decimal.Zero}
	categories := make(map[string]struct{}, len(ps))
	for _, p := range ps {
		c.TotalValue = c.TotalValue.Add(p.StockValue())
		categories[p.Category] = struct{}{}
		if p.LowStock() {
			c.LowStock++
		}
	}
	c.Categories = len(categories)
	return c
}

func lastN[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[len(items)-n:]
}
