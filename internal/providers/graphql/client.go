package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
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
const ProviderName = "graphql"

const (
	defaultBaseURL = "http://localhost:8080"
	endpointPath   = "/graphql"
)

// Config controls how the client reaches the BFF.
type Config struct {
	BaseURL    string
	HTTPClient providers.HTTPDoer
	Timeout    time.Duration
	UserAgent  string
	// Products serves the catalog, which the BFF schema does not expose.
	Products providers.ProductSource
}

// Client queries the GraphQL backend-for-frontend.
type Client struct {
	endpoint   string
	httpClient providers.HTTPDoer
	userAgent  string
	products   providers.ProductSource
}

var _ providers.Source = (*Client)(nil)

func NewClient(cfg Config) *Client {
	return &Client{
		endpoint:   providers.NormalizeBaseURL(cfg.BaseURL, defaultBaseURL) + endpointPath,
		httpClient: providers.ResolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
		userAgent:  cfg.UserAgent,
		products:   cfg.Products,
	}
}

func (c *Client) Name() string {
	return ProviderName
}

// Supports reports false for products unless a catalog source is configured.
func (c *Client) Supports(kind providers.Kind) bool {
	return kind != providers.KindProducts || c.products != nil
}

func (c *Client) FetchOrders(ctx context.Context) ([]orders.Order, error) {
	data, err := execute[ordersData](ctx, c, providers.KindOrders, "GetOrders", ordersQuery)
	if err != nil {
		return nil, err
	}
	return wire.MapAll[wire.Order, orders.Order](data.Orders), nil
}

func (c *Client) FetchUsers(ctx context.Context) ([]users.User, error) {
	data, err := execute[usersData](ctx, c, providers.KindUsers, "GetUsers", usersQuery)
	if err != nil {
		return nil, err
	}
	return wire.MapAll[wire.User, users.User](data.Users), nil
}

func (c *Client) FetchPayments(ctx context.Context) ([]payments.Payment, error) {
	data, err := execute[paymentsData](ctx, c, providers.KindPayments, "GetPayments", paymentsQuery)
	if err != nil {
		return nil, err
	}
	return wire.MapAll[wire.Payment, payments.Payment](data.Payments), nil
}

func (c *Client) FetchNotifications(ctx context.Context) ([]notifications.Notification, error) {
	data, err := execute[notificationsData](ctx, c, providers.KindNotifications, "GetNotifications", notificationsQuery)
	if err != nil {
		return nil, err
	}
	return wire.MapAll[wire.Notification, notifications.Notification](data.Notifications), nil
}

// FetchProducts delegates to the configured catalog source.
func (c *Client) FetchProducts(ctx context.Context) ([]products.Product, error) {
	if c.products == nil {
		return nil, fmt.Errorf("%s: %s: %w", ProviderName, providers.KindProducts, providers.ErrUnsupportedKind)
	}
	return c.products.FetchProducts(ctx)
}

// FetchDashboard loads orders, users, payments and notifications in one query.
func (c *Client) FetchDashboard(ctx context.Context) (providers.Dashboard, error) {
	data, err := execute[dashboardData](ctx, c, providers.KindDashboard, "GetDashboardData", dashboardQuery)
	if err != nil {
		return providers.Dashboard{}, err
	}
	return providers.Dashboard{
		Orders:        wire.MapAll[wire.Order, orders.Order](data.Orders),
		Users:         wire.MapAll[wire.User, users.User](data.Users),
		Payments:      wire.MapAll[wire.Payment, payments.Payment](data.Payments),
		Notifications: wire.MapAll[wire.Notification, notifications.Notification](data.Notifications),
	}, nil
}

// Health runs the BFF's health query.
func (c *Client) Health(ctx context.Context) error {
	_, err := execute[healthData](ctx, c, providers.KindHealth, "Health", healthQuery)
	return err
}

// execute posts one query and unwraps the GraphQL envelope. An errors array
// without data is a decode failure; errors alongside data are tolerated.
func execute[T any](ctx context.Context, c *Client, kind providers.Kind, op, query string) (T, error) {
	var zero T

	body, err := json.Marshal(request{Query: query, OperationName: op})
	if err != nil {
		return zero, providers.NewDecodeError(ProviderName, kind, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return zero, providers.NewNetworkError(ProviderName, kind, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	var env envelope[T]
	if err := providers.DoJSON(c.httpClient, req, ProviderName, kind, &env); err != nil {
		return zero, err
	}
	if env.Data == nil {
		if len(env.Errors) > 0 {
			return zero, providers.NewDecodeError(ProviderName, kind, errors.New(joinMessages(env.Errors)))
		}
		return zero, providers.NewDecodeError(ProviderName, kind, errors.New("response has no data"))
	}
	return *env.Data, nil
}

func joinMessages(errs []gqlError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if m := strings.TrimSpace(e.Message); m != "" {
			msgs = append(msgs, m)
		}
	}
	if len(msgs) == 0 {
		return "graphql error"
	}
	return strings.Join(msgs, "; ")
}
