package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/preston-bernstein/dashboard-service/internal/domain/notifications"
	"github.com/preston-bernstein/dashboard-service/internal/domain/orders"
	"github.com/preston-bernstein/dashboard-service/internal/domain/payments"
	"github.com/preston-bernstein/dashboard-service/internal/domain/products"
	"github.com/preston-bernstein/dashboard-service/internal/domain/users"
	"github.com/preston-bernstein/dashboard-service/internal/providers"
	"github.com/preston-bernstein/dashboard-service/internal/providers/wire"
)

// ProviderName labels this source in errors, logs and metrics.
const ProviderName = "rest"

const (
	defaultBaseURL = "http://localhost:8080"
	apiPrefix      = "/api/"
	healthPath     = "/health"
)

type Config struct {
	BaseURL    string
	HTTPClient providers.HTTPDoer
	Timeout    time.Duration
	UserAgent  string
}

// Client reads collections from the plain REST endpoints.
type Client struct {
	baseURL    string
	httpClient providers.HTTPDoer
	userAgent  string
}

var _ providers.Source = (*Client)(nil)

func NewClient(cfg Config) *Client {
	return &Client{
		baseURL:    providers.NormalizeBaseURL(cfg.BaseURL, defaultBaseURL),
		httpClient: providers.ResolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		userAgent:  cfg.UserAgent,
	}
}

func (c *Client) Name() string {
	return ProviderName
}

// Supports reports false for notifications, which have no REST endpoint.
func (c *Client) Supports(kind providers.Kind) bool {
	return kind != providers.KindNotifications
}

func (c *Client) FetchOrders(ctx context.Context) ([]orders.Order, error) {
	return list[wire.Order, orders.Order](ctx, c, providers.KindOrders)
}

func (c *Client) FetchUsers(ctx context.Context) ([]users.User, error) {
	return list[wire.User, users.User](ctx, c, providers.KindUsers)
}

func (c *Client) FetchPayments(ctx context.Context) ([]payments.Payment, error) {
	return list[wire.Payment, payments.Payment](ctx, c, providers.KindPayments)
}

func (c *Client) FetchProducts(ctx context.Context) ([]products.Product, error) {
	return list[wire.Product, products.Product](ctx, c, providers.KindProducts)
}

// FetchNotifications always fails: notifications have no REST form.
func (c *Client) FetchNotifications(context.Context) ([]notifications.Notification, error) {
	return nil, fmt.Errorf("%s: %s: %w", ProviderName, providers.KindNotifications, providers.ErrUnsupportedKind)
}

// FetchDashboard issues one GET per supported collection, stopping at the
// first failure. Notifications stay empty.
func (c *Client) FetchDashboard(ctx context.Context) (providers.Dashboard, error) {
	var (
		d   providers.Dashboard
		err error
	)
	if d.Orders, err = c.FetchOrders(ctx); err != nil {
		return providers.Dashboard{}, err
	}
	if d.Users, err = c.FetchUsers(ctx); err != nil {
		return providers.Dashboard{}, err
	}
	if d.Payments, err = c.FetchPayments(ctx); err != nil {
		return providers.Dashboard{}, err
	}
	d.Notifications = []notifications.Notification{}
	return d, nil
}

// Health succeeds on any 2xx from the health endpoint.
func (c *Client) Health(ctx context.Context) error {
	req, err := c.newRequest(ctx, healthPath, providers.KindHealth)
	if err != nil {
		return err
	}
	return providers.DoJSON(c.httpClient, req, ProviderName, providers.KindHealth, nil)
}

func (c *Client) newRequest(ctx context.Context, path string, kind providers.Kind) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, providers.NewNetworkError(ProviderName, kind, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

func list[W wire.Mappable[T], T any](ctx context.Context, c *Client, kind providers.Kind) ([]T, error) {
	req, err := c.newRequest(ctx, apiPrefix+string(kind), kind)
	if err != nil {
		return nil, err
	}
	var raw json.RawMessage
	if err := providers.DoJSON(c.httpClient, req, ProviderName, kind, &raw); err != nil {
		return nil, err
	}
	records, err := wire.DecodeList[W](raw, string(kind))
	if err != nil {
		return nil, providers.NewDecodeError(ProviderName, kind, err)
	}
	return wire.MapAll[W, T](records), nil
}
