package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/preston-bernstein/dashboard-service/internal/config"
	"github.com/preston-bernstein/dashboard-service/internal/metrics"
	"github.com/preston-bernstein/dashboard-service/internal/testutil"
)

// metricsSetupSuccess forces a handler to test the buildMetrics success path.
func metricsSetupSuccess(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
	return metrics.NewRecorder(), http.NewServeMux(), func(context.Context) error { return nil }, nil
}

func TestBuildMetricsSuccessPathSetsServerAndShutdown(t *testing.T) {
	orig := metricsSetup
	defer func() { metricsSetup = orig }()
	metricsSetup = metricsSetupSuccess

	rec, srv, stop := buildMetrics(config.Config{
		Metrics: config.MetricsConfig{
			Enabled: true,
			Port:    "9999",
		},
	}, nil, nil)

	if rec == nil || srv == nil || stop == nil {
		t.Fatalf("expected recorder, server, and shutdown to be set on success")
	}
	if srv.Addr() != ":9999" {
		t.Fatalf("expected metrics addr :9999, got %s", srv.Addr())
	}
}

func TestNewServerHandlesMetricsSetupFailure(t *testing.T) {
	origSetup := metricsSetup
	defer func() { metricsSetup = origSetup }()

	metricsSetup = func(ctx context.Context, cfg metrics.TelemetryConfig) (*metrics.Recorder, http.Handler, func(context.Context) error, error) {
		return nil, nil, nil, errors.New("fail")
	}

	cfg := testConfig()
	cfg.Metrics = config.MetricsConfig{Enabled: true}
	logger, buf := testutil.NewBufferLogger()

	srv, err := newServerWithSource(cfg, logger, sampleSource(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected fallback metrics recorder even on setup failure")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server after setup failure")
	}
	if !strings.Contains(buf.String(), "metrics setup failed") {
		t.Fatalf("expected setup failure logged")
	}
}

func TestNewServerWithMetricsDisabledSkipsServer(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	srv, err := newServerWithSource(testConfig(), logger, sampleSource(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if srv.metrics == nil {
		t.Fatalf("expected recorder to be set even when metrics disabled")
	}
	if srv.metricsServer != nil {
		t.Fatalf("expected no metrics server when disabled")
	}
}

func TestNewServerUsesInjectedRecorder(t *testing.T) {
	rec, shutdown := testutil.NewRecorderWithShutdown()
	defer func() { _ = shutdown(context.Background()) }()

	srv := newTestServerWithRecorder(t, rec)
	if srv.metrics != rec {
		t.Fatalf("expected injected recorder to be used")
	}
	if srv.metricsStop != nil {
		t.Fatalf("expected no telemetry shutdown for injected recorder")
	}
}

func TestServerRecordsFetchesThroughDecorators(t *testing.T) {
	rec := metrics.NewRecorder()
	srv := newTestServerWithRecorder(t, rec)
	startPollers(t, srv)

	if snap := rec.Snapshot("stub", "orders"); snap.Calls == 0 {
		t.Fatalf("expected fetches recorded by the instrumented source, got %+v", snap)
	}
}

func newTestServerWithRecorder(t *testing.T, rec *metrics.Recorder) *Server {
	t.Helper()
	logger, _ := testutil.NewBufferLogger()
	srv, err := newServerWithSource(testConfig(), logger, sampleSource(), rec)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv
}
