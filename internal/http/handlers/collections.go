package handlers

import (
	"context"
	"errors"
	"log/slog"
	"math"
	nethttp "net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/preston-bernstein/dashboard-service/internal/app/dashboard"
	"github.com/preston-bernstein/dashboard-service/internal/app/tables"
	"github.com/preston-bernstein/dashboard-service/internal/logging"
	"github.com/preston-bernstein/dashboard-service/internal/poller"
	"github.com/preston-bernstein/dashboard-service/internal/providers"
)

// Collection returns the current snapshot of one collection.
func (h *Handler) Collection(w nethttp.ResponseWriter, r *nethttp.Request) {
	table, ok := h.lookup(w, r)
	if !ok {
		return
	}
	page := table.Page()
	logging.Info(loggerFromContext(r, h.logger), "served collection",
		slog.String(logging.FieldKind, string(page.Kind)),
		slog.Int(logging.FieldCount, page.Count),
	)
	writeJSON(w, nethttp.StatusOK, page, h.logger)
}

// Record returns one record from the current snapshot.
func (h *Handler) Record(w nethttp.ResponseWriter, r *nethttp.Request) {
	table, ok := h.lookup(w, r)
	if !ok {
		return
	}
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	if id == "" || strings.ContainsAny(id, " \t/") {
		writeError(w, r, nethttp.StatusBadRequest, "invalid id", h.logger)
		return
	}
	record, found := table.Record(id)
	if !found {
		writeError(w, r, nethttp.StatusNotFound, "record not found", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, record, h.logger)
}

// RefreshCollection triggers an out-of-band fetch of one collection.
func (h *Handler) RefreshCollection(w nethttp.ResponseWriter, r *nethttp.Request) {
	table, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.triggerRefresh(w, r, string(table.Kind()), table.Refresh)
}

// RefreshDashboard triggers an out-of-band fetch of the dashboard data.
func (h *Handler) RefreshDashboard(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.dashboard == nil {
		writeError(w, r, nethttp.StatusNotFound, "dashboard not configured", h.logger)
		return
	}
	h.triggerRefresh(w, r, dashboard.Name, h.dashboard.Refresh)
}

// Dashboard returns the summary view with its loading and error state.
func (h *Handler) Dashboard(w nethttp.ResponseWriter, r *nethttp.Request) {
	if h.dashboard == nil {
		writeError(w, r, nethttp.StatusNotFound, "dashboard not configured", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, h.dashboard.View(), h.logger)
}

func (h *Handler) lookup(w nethttp.ResponseWriter, r *nethttp.Request) (tables.Viewer, bool) {
	kind, ok := providers.ParseKind(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "unknown collection", h.logger)
		return nil, false
	}
	table, ok := h.tables.Get(kind)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "collection not available from this source", h.logger)
		return nil, false
	}
	return table, true
}

func (h *Handler) triggerRefresh(w nethttp.ResponseWriter, r *nethttp.Request, target string, refresh func(context.Context) error) {
	logger := loggerFromContext(r, h.logger)
	allowed, retryAfter := h.refresh.Allow(target)
	h.metrics.RecordRefresh(target, allowed)
	if !allowed {
		w.Header().Set("Retry-After", retryAfterSeconds(retryAfter))
		logging.Warn(logger, "refresh throttled",
			slog.String(logging.FieldPoller, target),
			slog.Int64("retry_after_ms", retryAfter.Milliseconds()),
		)
		writeError(w, r, nethttp.StatusTooManyRequests, "refresh rate limited", h.logger)
		return
	}

	// The fetch outlives the request; the poller owns its lifetime.
	if err := refresh(context.WithoutCancel(r.Context())); err != nil {
		status := nethttp.StatusInternalServerError
		if errors.Is(err, poller.ErrNotRunning) {
			status = nethttp.StatusServiceUnavailable
		}
		logging.Warn(logger, "refresh failed", slog.String(logging.FieldPoller, target), slog.Any("err", err))
		writeError(w, r, status, err.Error(), h.logger)
		return
	}
	logging.Info(logger, "refresh triggered", slog.String(logging.FieldPoller, target))
	writeJSON(w, nethttp.StatusAccepted, map[string]string{
		"status": "refreshing",
		"target": target,
	}, h.logger)
}

func retryAfterSeconds(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	if secs < 1 {
		secs = 1
	}
	return strconv.Itoa(secs)
}
