package server

import (
	"log/slog"

	"github.com/preston-bernstein/dashboard-service/internal/app/dashboard"
	"github.com/preston-bernstein/dashboard-service/internal/app/tables"
	"github.com/preston-bernstein/dashboard-service/internal/domain/products"
	"github.com/preston-bernstein/dashboard-service/internal/logging"
	"github.com/preston-bernstein/dashboard-service/internal/poller"
	"github.com/preston-bernstein/dashboard-service/internal/providers"
)

// buildTables registers a table for every kind src can serve. The products
// table doubles as the dashboard catalog and is nil when unsupported.
func buildTables(src providers.Source, opts poller.Options, logger *slog.Logger) (*tables.Registry, *tables.Table[products.Product]) {
	var (
		viewers []tables.Viewer
		catalog *tables.Table[products.Product]
	)
	for _, kind := range providers.Kinds() {
		if !providers.Supports(src, kind) {
			if logger != nil {
				logger.Info("collection not served by source",
					slog.String(logging.FieldKind, string(kind)),
					slog.String(logging.FieldProvider, src.Name()),
				)
			}
			continue
		}
		switch kind {
		case providers.KindOrders:
			viewers = append(viewers, tables.New(kind, src.FetchOrders, opts))
		case providers.KindPayments:
			viewers = append(viewers, tables.New(kind, src.FetchPayments, opts))
		case providers.KindNotifications:
			viewers = append(viewers, tables.New(kind, src.FetchNotifications, opts))
		case providers.KindUsers:
			viewers = append(viewers, tables.New(kind, src.FetchUsers, opts))
		case providers.KindProducts:
			catalog = tables.New(kind, src.FetchProducts, opts)
			viewers = append(viewers, catalog)
		}
	}
	return tables.NewRegistry(viewers...), catalog
}

func buildDashboard(src providers.Source, catalog *tables.Table[products.Product], opts poller.Options) *dashboard.Service {
	// A nil *Table must not reach the Catalog interface as a non-nil value.
	if catalog == nil {
		return dashboard.New(src, nil, opts)
	}
	return dashboard.New(src, catalog, opts)
}
