package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/preston-bernstein/dashboard-service/internal/auth"
	"github.com/preston-bernstein/dashboard-service/internal/config"
	"github.com/preston-bernstein/dashboard-service/internal/domain/notifications"
	"github.com/preston-bernstein/dashboard-service/internal/domain/orders"
	"github.com/preston-bernstein/dashboard-service/internal/domain/payments"
	"github.com/preston-bernstein/dashboard-service/internal/domain/products"
	"github.com/preston-bernstein/dashboard-service/internal/domain/users"
	"github.com/preston-bernstein/dashboard-service/internal/metrics"
	"github.com/preston-bernstein/dashboard-service/internal/providers"
	"github.com/preston-bernstein/dashboard-service/internal/teststubs"
	"github.com/preston-bernstein/dashboard-service/internal/testutil"
)

func init() {
	passwordCost = bcrypt.MinCost
}

func testConfig() config.Config {
	return config.Config{
		Port:   "0",
		Source: config.SourceConfig{Name: config.SourceFixture},
		Polling: config.PollingConfig{
			TableInterval:     time.Hour,
			DashboardInterval: time.Hour,
		},
		Auth: config.AuthConfig{JWTSecret: "test-secret", SessionTTL: time.Hour},
	}
}

func sampleSource() *teststubs.StubSource {
	return &teststubs.StubSource{
		Orders: []orders.Order{
			testutil.SampleOrder("o1", orders.StatusCompleted),
			testutil.SampleOrder("o2", orders.StatusPending),
		},
		Payments:      []payments.Payment{testutil.SamplePayment("p1", "100.00", payments.StatusApproved)},
		Notifications: []notifications.Notification{testutil.SampleNotification("n1", notifications.StatusSent)},
		Users:         []users.User{testutil.SampleUser("u1")},
		Products:      []products.Product{testutil.SampleProduct("pr1", 0)},
	}
}

func startPollers(t *testing.T, srv *Server) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	for _, p := range srv.pollers {
		p.Start(ctx)
	}
	t.Cleanup(func() {
		cancel()
		for _, p := range srv.pollers {
			_ = p.Stop(context.Background())
		}
	})
	testutil.WaitFor(t, "pollers ready", func() bool {
		for _, p := range srv.pollers {
			if !p.Status().IsReady() {
				return false
			}
		}
		for _, v := range srv.tables.All() {
			if v.Page().Loading {
				return false
			}
		}
		return !srv.dashboard.View().Loading
	})
}

func newTestServer(t *testing.T, src providers.Source) *Server {
	t.Helper()
	logger, _ := testutil.NewBufferLogger()
	srv, err := newServerWithSource(testConfig(), logger, src, metrics.NewRecorder())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}

func TestServerServesCollectionsAndDashboard(t *testing.T) {
	srv := newTestServer(t, sampleSource())
	startPollers(t, srv)
	router := srv.Handler()

	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/health", nil), http.StatusOK)
	testutil.AssertStatus(t, testutil.Serve(router, http.MethodGet, "/ready", nil), http.StatusOK)

	rr := testutil.Serve(router, http.MethodGet, "/api/orders", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var page struct {
		Count int `json:"count"`
	}
	testutil.DecodeJSON(t, rr, &page)
	if page.Count != 2 {
		t.Fatalf("expected 2 orders, got %d", page.Count)
	}

	rr = testutil.Serve(router, http.MethodGet, "/api/dashboard", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var view struct {
		TotalUsers   int    `json:"totalUsers"`
		RevenueLabel string `json:"revenueLabel"`
		Loading      bool   `json:"loading"`
		Catalog      *struct {
			Total int `json:"total"`
		} `json:"catalog"`
	}
	testutil.DecodeJSON(t, rr, &view)
	if view.Loading || view.TotalUsers != 1 || view.RevenueLabel != "R$ 100.00" {
		t.Fatalf("unexpected dashboard view %+v", view)
	}
	if view.Catalog == nil || view.Catalog.Total != 1 {
		t.Fatalf("expected catalog summary from products table, got %+v", view.Catalog)
	}
}

func TestServerSkipsUnsupportedKinds(t *testing.T) {
	src := sampleSource()
	src.Unsupported = map[providers.Kind]bool{providers.KindNotifications: true, providers.KindProducts: true}
	srv := newTestServer(t, src)
	startPollers(t, srv)

	if _, ok := srv.tables.Get(providers.KindNotifications); ok {
		t.Fatalf("expected notifications table skipped")
	}
	if len(srv.pollers) != 4 {
		t.Fatalf("expected 3 tables plus dashboard, got %d pollers", len(srv.pollers))
	}
	rr := testutil.Serve(srv.Handler(), http.MethodGet, "/api/notifications", nil)
	testutil.AssertStatus(t, rr, http.StatusNotFound)
	if src.Calls(providers.KindNotifications) != 0 {
		t.Fatalf("expected no notification fetches")
	}
	if v := srv.dashboard.View(); v.Catalog != nil {
		t.Fatalf("expected no catalog without products, got %+v", v.Catalog)
	}
}

func TestServerLoginFlow(t *testing.T) {
	srv := newTestServer(t, sampleSource())
	router := srv.Handler()

	rr := testutil.Serve(router, http.MethodPost, "/auth/login",
		strings.NewReader(`{"email":"user@microservices.com","password":"user123"}`))
	testutil.AssertStatus(t, rr, http.StatusOK)

	rr = testutil.Serve(router, http.MethodGet, "/auth/session", nil)
	testutil.AssertStatus(t, rr, http.StatusOK)
	var session struct {
		Authenticated bool `json:"authenticated"`
	}
	testutil.DecodeJSON(t, rr, &session)
	if !session.Authenticated {
		t.Fatalf("expected remembered session after login")
	}
}

func TestNewFailsWithoutSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = ""
	logger, _ := testutil.NewBufferLogger()
	if _, err := newServerWithSource(cfg, logger, sampleSource(), metrics.NewRecorder()); !errors.Is(err, auth.ErrMissingSecret) {
		t.Fatalf("expected missing secret error, got %v", err)
	}
}

func TestNewWarnsOnDefaultSecret(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	if _, err := newServerWithSource(testConfig(), logger, sampleSource(), metrics.NewRecorder()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "development secret") {
		t.Fatalf("expected no warning for a configured secret")
	}

	cfg := testConfig()
	t.Setenv("JWT_SECRET", "")
	cfg.Auth.JWTSecret = config.Load().Auth.JWTSecret
	buf.Reset()
	if _, err := newServerWithSource(cfg, logger, sampleSource(), metrics.NewRecorder()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "development secret") {
		t.Fatalf("expected default secret warning, got %q", buf.String())
	}
}

func TestNewConstructsServer(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	srv, err := New(testConfig(), logger)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv == nil || srv.Handler() == nil {
		t.Fatalf("expected server with handler")
	}
	if srv.source.Name() != "fixture" {
		t.Fatalf("expected fixture source, got %s", srv.source.Name())
	}
}

func TestGracefulShutdownCallsStopAndShutdown(t *testing.T) {
	tablePoller := &testutil.StubPoller{}
	dashPoller := &testutil.StubPoller{}
	httpSrv := &testutil.StubHTTPServer{}

	srv := newServerWithDeps(config.Config{}, nil, httpSrv, tablePoller, dashPoller)
	srv.gracefulShutdown()

	if tablePoller.StopCalls != 1 || dashPoller.StopCalls != 1 {
		t.Fatalf("expected every poller stopped once, got %d and %d", tablePoller.StopCalls, dashPoller.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestGracefulShutdownTimesOutLongRunningShutdown(t *testing.T) {
	p := &testutil.StubPoller{}
	blocking := &testutil.BlockingHTTPServer{
		AddrVal:    ":0",
		HandlerVal: http.NewServeMux(),
		Unblock:    make(chan struct{}),
	}

	original := shutdownTimeout
	shutdownTimeout = 5 * time.Millisecond
	defer func() { shutdownTimeout = original }()

	srv := newServerWithDeps(config.Config{}, nil, blocking, p)

	start := time.Now()
	srv.gracefulShutdown()
	elapsed := time.Since(start)

	if blocking.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", blocking.ShutdownCalls)
	}
	if p.StopCalls != 1 {
		t.Fatalf("expected poller Stop to be called once, got %d", p.StopCalls)
	}
	if elapsed > 200*time.Millisecond {
		t.Fatalf("shutdown took too long: %s", elapsed)
	}
}

func TestGracefulShutdownContinuesWhenPollerStopErrors(t *testing.T) {
	failing := &testutil.StubPoller{Err: errors.New("stop failure")}
	next := &testutil.StubPoller{}
	httpSrv := &testutil.StubHTTPServer{}

	logger, buf := testutil.NewBufferLogger()
	srv := newServerWithDeps(config.Config{}, logger, httpSrv, failing, next)
	srv.gracefulShutdown()

	if failing.StopCalls != 1 || next.StopCalls != 1 {
		t.Fatalf("expected both pollers stopped")
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown to be called once, got %d", httpSrv.ShutdownCalls)
	}
	if !strings.Contains(buf.String(), "failed to stop poller") {
		t.Fatalf("expected stop failure logged, got %s", buf.String())
	}
}

func TestServerStartHandlesListenErrorAndStops(t *testing.T) {
	srv := newServerWithDeps(config.Config{}, nil, &testutil.ErrHTTPServer{})

	var wg sync.WaitGroup
	wg.Add(1)
	stopCalled := make(chan struct{})
	stop := func() {
		close(stopCalled)
		wg.Done()
	}

	srv.startServer(stop)

	select {
	case <-stopCalled:
	case <-time.After(200 * time.Millisecond):
		t.Fatal("expected stop to be called on listen failure")
	}

	wg.Wait()
}

func TestRunCancelsAndStopsComponents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	plr := &testutil.StubPoller{}
	httpSrv := &testutil.CloseableHTTPServer{}
	srv := newServerWithDeps(config.Config{}, nil, httpSrv, plr)

	done := make(chan struct{})
	go func() {
		srv.Run(ctx, cancel)
		close(done)
	}()

	// Let Start be invoked.
	time.Sleep(10 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("run did not return after cancel")
	}

	if plr.StartCalls != 1 {
		t.Fatalf("expected poller Start called once, got %d", plr.StartCalls)
	}
	if plr.StopCalls != 1 {
		t.Fatalf("expected poller Stop called once, got %d", plr.StopCalls)
	}
	if httpSrv.ShutdownCalls != 1 {
		t.Fatalf("expected server Shutdown called once, got %d", httpSrv.ShutdownCalls)
	}
}

func TestWaitHealthyGivesUpAndStillStarts(t *testing.T) {
	src := &teststubs.StubSource{HealthErr: errors.New("down")}
	cfg := config.Config{Source: config.SourceConfig{WaitHealthy: true, WaitHealthyMax: 20 * time.Millisecond}}
	logger, buf := testutil.NewBufferLogger()
	srv := newServerWithDeps(cfg, logger, &testutil.StubHTTPServer{})
	srv.source = src

	srv.waitHealthy(context.Background())

	if src.HealthCalls() == 0 {
		t.Fatalf("expected health probed")
	}
	if !strings.Contains(buf.String(), "starting pollers anyway") {
		t.Fatalf("expected give-up warning, got %s", buf.String())
	}
}

func TestWaitHealthySkippedWhenDisabled(t *testing.T) {
	src := &teststubs.StubSource{}
	srv := newServerWithDeps(config.Config{}, nil, &testutil.StubHTTPServer{})
	srv.source = src
	srv.waitHealthy(context.Background())
	if src.HealthCalls() != 0 {
		t.Fatalf("expected no health probe when disabled")
	}
}
