// Package dashboard keeps the summary view in step with the dashboard poller.
package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/preston-bernstein/dashboard-service/internal/aggregate"
	"github.com/preston-bernstein/dashboard-service/internal/domain/money"
	"github.com/preston-bernstein/dashboard-service/internal/domain/products"
	"github.com/preston-bernstein/dashboard-service/internal/poller"
	"github.com/preston-bernstein/dashboard-service/internal/providers"
)

const (
	// Name labels the dashboard poller in logs, metrics and refresh routes.
	Name            = "dashboard"
	DefaultInterval = 10 * time.Second
)

// Catalog supplies the current product snapshot.
type Catalog interface {
	Items() []products.Product
}

// View is the dashboard view model.
type View struct {
	Summary      aggregate.Summary         `json:"summary"`
	Catalog      *aggregate.CatalogSummary `json:"catalog,omitempty"`
	TotalUsers   int                       `json:"totalUsers"`
	RevenueLabel string                    `json:"revenueLabel"`
	Loading      bool                      `json:"loading"`
	Error        string                    `json:"error,omitempty"`
	UpdatedAt    *time.Time                `json:"updatedAt,omitempty"`
}

// Service recomputes the summary on every poller transition.
type Service struct {
	poller  *poller.Poller[providers.Dashboard]
	catalog Catalog

	mu   sync.RWMutex
	view View
}

// New wires a dashboard poller over source. catalog may be nil.
func New(source providers.DashboardSource, catalog Catalog, opts poller.Options) *Service {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	s := &Service{
		catalog: catalog,
		view:    initialView(),
	}
	s.poller = poller.New(Name, source.FetchDashboard, opts)
	s.poller.Subscribe(s.apply)
	return s
}

func initialView() View {
	summary := aggregate.Summarize(nil, nil, nil)
	return View{
		Summary:      summary,
		RevenueLabel: money.FromDecimal(summary.TotalRevenue).Label(),
		Loading:      true,
	}
}

func (s *Service) apply(state poller.State[providers.Dashboard]) {
	data := state.Data
	summary := aggregate.Summarize(data.Orders, data.Payments, data.Notifications)
	next := View{
		Summary:      summary,
		TotalUsers:   len(data.Users),
		RevenueLabel: money.FromDecimal(summary.TotalRevenue).Label(),
		Loading:      state.Loading,
	}
	if state.Err != nil {
		next.Error = state.Err.Error()
	}
	if !state.UpdatedAt.IsZero() {
		at := state.UpdatedAt.UTC()
		next.UpdatedAt = &at
	}

	s.mu.Lock()
	s.view = next
	s.mu.Unlock()
}

// View returns the latest summary together with the catalog figures.
func (s *Service) View() View {
	s.mu.RLock()
	v := s.view
	s.mu.RUnlock()
	if s.catalog != nil {
		c := aggregate.SummarizeCatalog(s.catalog.Items())
		v.Catalog = &c
	}
	return v
}

func (s *Service) Start(ctx context.Context) {
	s.poller.Start(ctx)
}

func (s *Service) Stop(ctx context.Context) error {
	return s.poller.Stop(ctx)
}

// Refresh triggers an out-of-band fetch, e.g. from the retry button.
func (s *Service) Refresh(ctx context.Context) error {
	return s.poller.Refresh(ctx)
}

func (s *Service) Status() poller.Status {
	return s.poller.Status()
}
