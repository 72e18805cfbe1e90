package handlers

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/dashboard-service/internal/app/dashboard"
	"github.com/preston-bernstein/dashboard-service/internal/app/tables"
	"github.com/preston-bernstein/dashboard-service/internal/auth"
	"github.com/preston-bernstein/dashboard-service/internal/domain/users"
	"github.com/preston-bernstein/dashboard-service/internal/metrics"
	"github.com/preston-bernstein/dashboard-service/internal/poller"
	"github.com/preston-bernstein/dashboard-service/internal/prefs"
)

type nowFunc func() time.Time

// DashboardView is the dashboard summary as the handlers need it.
type DashboardView interface {
	View() dashboard.View
	Refresh(ctx context.Context) error
	Status() poller.Status
}

// Preferences is the persisted theme and session user.
type Preferences interface {
	State() prefs.State
	SetTheme(theme prefs.Theme) error
	SetUser(account users.Account) error
	ClearUser() error
}

// Deps are the collaborators behind the HTTP surface. Nil members disable
// the routes that need them.
type Deps struct {
	Tables      *tables.Registry
	Dashboard   DashboardView
	Verifier    auth.Verifier
	Sessions    *auth.Sessions
	Preferences Preferences
	Refresh     *RefreshLimiter
	Metrics     *metrics.Recorder
	Logger      *slog.Logger
}

// Handler wires HTTP routes to the tables, the dashboard and the session state.
type Handler struct {
	tables    *tables.Registry
	dashboard DashboardView
	verifier  auth.Verifier
	sessions  *auth.Sessions
	prefs     Preferences
	refresh   *RefreshLimiter
	metrics   *metrics.Recorder
	logger    *slog.Logger
	now       nowFunc
}

// NewHandler constructs a Handler with defaults.
func NewHandler(deps Deps) *Handler {
	return &Handler{
		tables:    deps.Tables,
		dashboard: deps.Dashboard,
		verifier:  deps.Verifier,
		sessions:  deps.Sessions,
		prefs:     deps.Preferences,
		refresh:   deps.Refresh,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
		now:       time.Now,
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic: every poller has succeeded recently.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	var pending []string
	check := func(name string, s poller.Status) {
		if s.IsReady() {
			return
		}
		msg := s.LastError
		if msg == "" {
			msg = "not ready"
		}
		pending = append(pending, name+": "+msg)
	}
	for _, t := range h.tables.All() {
		check(string(t.Kind()), t.Status())
	}
	if h.dashboard != nil {
		check(dashboard.Name, h.dashboard.Status())
	}

	if len(pending) == 0 {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, strings.Join(pending, "; "), h.logger)
}

// NotFound answers unknown routes with the JSON error shape.
func (h *Handler) NotFound(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
}

func (h *Handler) MethodNotAllowed(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeError(w, r, nethttp.StatusMethodNotAllowed, "method not allowed", h.logger)
}
