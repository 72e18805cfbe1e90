package fixture

import (
	"context"
	"time"

	"github.com/preston-bernstein/dashboard-service/internal/domain/notifications"
	"github.com/preston-bernstein/dashboard-service/internal/domain/orders"
	"github.com/preston-bernstein/dashboard-service/internal/domain/payments"
	"github.com/preston-bernstein/dashboard-service/internal/domain/products"
	"github.com/preston-bernstein/dashboard-service/internal/domain/users"
	"github.com/preston-bernstein/dashboard-service/internal/providers"
)

// ProviderName labels this source in logs and metrics.
const ProviderName = "fixture"

// Provider returns a static data set useful for local runs and tests.
// Timestamps are anchored to the hour so repeated polls return identical records.
type Provider struct {
	now func() time.Time
}

var _ providers.Source = (*Provider)(nil)

// New creates a fixture provider with a time source.
func New() *Provider {
	return &Provider{
		now: time.Now,
	}
}

func (p *Provider) Name() string {
	return ProviderName
}

func (p *Provider) anchor() time.Time {
	return p.now().UTC().Truncate(time.Hour)
}

// FetchOrders returns orders oldest first.
func (p *Provider) FetchOrders(ctx context.Context) ([]orders.Order, error) {
	_ = ctx
	at := p.anchor()
	return []orders.Order{
		{ID: "1", UserID: "1", ProductName: "Notebook Dell", Quantity: 1, Price: "3500.00", Status: orders.StatusCompleted, RawStatus: "completed", CreatedAt: at.Add(-4 * time.Hour)},
		{ID: "2", UserID: "2", ProductName: "Mouse Logitech", Quantity: 2, Price: "89.90", Status: orders.StatusCompleted, RawStatus: "aprovado", CreatedAt: at.Add(-3 * time.Hour)},
		{ID: "3", UserID: "1", ProductName: "Teclado Mecânico", Quantity: 1, Price: "450.00", Status: orders.StatusPending, RawStatus: "pending", CreatedAt: at.Add(-2 * time.Hour)},
		{ID: "4", UserID: "3", ProductName: "Monitor LG 27\"", Quantity: 1, Price: "1299.00", Status: orders.StatusProcessing, RawStatus: "processing", CreatedAt: at.Add(-time.Hour)},
	}, nil
}

func (p *Provider) FetchPayments(ctx context.Context) ([]payments.Payment, error) {
	_ = ctx
	at := p.anchor()
	return []payments.Payment{
		{ID: "1", OrderID: "1", UserID: "1", Amount: "3500.00", Status: payments.StatusApproved, RawStatus: "approved", Method: payments.MethodCard, CreatedAt: at.Add(-4*time.Hour + 5*time.Minute)},
		{ID: "2", OrderID: "2", UserID: "2", Amount: "179.80", Status: payments.StatusApproved, RawStatus: "aprovado", Method: payments.MethodPix, CreatedAt: at.Add(-3*time.Hour + 5*time.Minute)},
		{ID: "3", OrderID: "3", UserID: "1", Amount: "450.00", Status: payments.StatusPending, RawStatus: "pending", Method: payments.MethodBoleto, CreatedAt: at.Add(-2*time.Hour + 5*time.Minute)},
	}, nil
}

func (p *Provider) FetchNotifications(ctx context.Context) ([]notifications.Notification, error) {
	_ = ctx
	at := p.anchor()
	return []notifications.Notification{
		{ID: "1", OrderID: "1", UserID: "1", Message: "Seu pedido #1 foi confirmado e o pagamento aprovado.", Type: notifications.TypeEmail, Status: notifications.StatusDelivered, RawStatus: "delivered", CreatedAt: at.Add(-4*time.Hour + 10*time.Minute)},
		{ID: "2", OrderID: "2", UserID: "2", Message: "Pagamento via PIX recebido.", Type: notifications.TypeSMS, Status: notifications.StatusSent, RawStatus: "sent", CreatedAt: at.Add(-3*time.Hour + 10*time.Minute)},
		{ID: "3", OrderID: "3", UserID: "1", Message: "Aguardando pagamento do boleto.", Type: notifications.TypePush, Status: notifications.StatusPending, RawStatus: "pending", CreatedAt: at.Add(-2*time.Hour + 10*time.Minute)},
	}, nil
}

func (p *Provider) FetchUsers(ctx context.Context) ([]users.User, error) {
	_ = ctx
	at := p.anchor()
	return []users.User{
		{ID: "1", Name: "Ana Souza", Email: "ana@example.com", CreatedAt: at.Add(-72 * time.Hour)},
		{ID: "2", Name: "Bruno Lima", Email: "bruno@example.com", CreatedAt: at.Add(-48 * time.Hour)},
		{ID: "3", Name: "Carla Mendes", Email: "carla@example.com", CreatedAt: at.Add(-24 * time.Hour)},
	}, nil
}

func (p *Provider) FetchProducts(ctx context.Context) ([]products.Product, error) {
	_ = ctx
	return []products.Product{
		{ID: "1", Name: "Notebook Dell", Category: "Eletrônicos", Price: "3500.00", Stock: 15},
		{ID: "2", Name: "Mouse Logitech", Category: "Periféricos", Price: "89.90", Stock: 120},
		{ID: "3", Name: "Teclado Mecânico", Category: "Periféricos", Price: "450.00", Stock: 60},
		{ID: "4", Name: "Monitor LG 27\"", Category: "Eletrônicos", Price: "1299.00", Stock: 0},
	}, nil
}

func (p *Provider) FetchDashboard(ctx context.Context) (providers.Dashboard, error) {
	o, _ := p.FetchOrders(ctx)
	pay, _ := p.FetchPayments(ctx)
	n, _ := p.FetchNotifications(ctx)
	u, _ := p.FetchUsers(ctx)
	return providers.Dashboard{Orders: o, Payments: pay, Notifications: n, Users: u}, nil
}

// Health always succeeds.
func (p *Provider) Health(context.Context) error {
	return nil
}
