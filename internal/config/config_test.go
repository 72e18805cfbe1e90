package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != defaultPort {
		t.Fatalf("expected default port %s, got %s", defaultPort, cfg.Port)
	}
	if cfg.Source.Name != SourceGraphQL {
		t.Fatalf("expected default source %s, got %s", SourceGraphQL, cfg.Source.Name)
	}
	if cfg.Source.BFFURL != defaultBFFURL || cfg.Source.RESTURL != defaultRESTURL {
		t.Fatalf("unexpected upstream urls %+v", cfg.Source)
	}
	if cfg.Polling.TableInterval != 5*time.Second {
		t.Fatalf("expected 5s table interval, got %s", cfg.Polling.TableInterval)
	}
	if cfg.Polling.DashboardInterval != 10*time.Second {
		t.Fatalf("expected 10s dashboard interval, got %s", cfg.Polling.DashboardInterval)
	}
	if !cfg.Source.BreakerEnabled || !cfg.Source.WaitHealthy {
		t.Fatalf("expected breaker and health wait on by default, got %+v", cfg.Source)
	}
	if cfg.Auth.JWTSecret == "" || cfg.Auth.SessionTTL != defaultSessionTTL {
		t.Fatalf("unexpected auth defaults %+v", cfg.Auth)
	}
	if cfg.PrefsPath != defaultPrefsPath {
		t.Fatalf("expected default prefs path, got %q", cfg.PrefsPath)
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Port != defaultMetricsPort || cfg.Metrics.ServiceName != defaultServiceName {
		t.Fatalf("unexpected metrics defaults %+v", cfg.Metrics)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envSource, "REST")
	t.Setenv(envRESTURL, "http://rest.local")
	t.Setenv(envTablePoll, "2s")
	t.Setenv(envDashboardPoll, "20s")
	t.Setenv(envSourceRateLimit, "0")
	t.Setenv(envBreakerEnabled, "false")
	t.Setenv(envJWTSecret, "s3cret")
	t.Setenv(envRefreshRate, "0.5")
	t.Setenv(envLogFormat, "json")
	t.Setenv(envOtelEndpoint, "localhost:4318")

	cfg := Load()

	if cfg.Port != "5000" {
		t.Fatalf("expected port 5000, got %s", cfg.Port)
	}
	if cfg.Source.Name != SourceREST || cfg.Source.RESTURL != "http://rest.local" {
		t.Fatalf("unexpected source %+v", cfg.Source)
	}
	if cfg.Polling.TableInterval != 2*time.Second || cfg.Polling.DashboardInterval != 20*time.Second {
		t.Fatalf("unexpected polling %+v", cfg.Polling)
	}
	if cfg.Source.RateLimit != 0 {
		t.Fatalf("expected rate limiter disabled, got %v", cfg.Source.RateLimit)
	}
	if cfg.Source.BreakerEnabled {
		t.Fatalf("expected breaker disabled")
	}
	if cfg.Auth.JWTSecret != "s3cret" || cfg.Refresh.Rate != 0.5 || cfg.Log.Format != "json" {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
	if cfg.Metrics.OtlpEndpoint != "localhost:4318" {
		t.Fatalf("expected otlp endpoint override, got %q", cfg.Metrics.OtlpEndpoint)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv(envTablePoll, "not-a-duration")
	t.Setenv(envDashboardPoll, "0s")
	t.Setenv(envSource, "soap")
	t.Setenv(envSourceRateLimit, "-3")
	t.Setenv(envRefreshBurst, "many")

	cfg := Load()

	if cfg.Polling.TableInterval != defaultTablePoll || cfg.Polling.DashboardInterval != defaultDashboardPoll {
		t.Fatalf("expected default intervals, got %+v", cfg.Polling)
	}
	if cfg.Source.Name != defaultSource {
		t.Fatalf("expected default source, got %s", cfg.Source.Name)
	}
	if cfg.Source.RateLimit != defaultSourceRateLimit {
		t.Fatalf("expected default rate limit, got %v", cfg.Source.RateLimit)
	}
	if cfg.Refresh.Burst != defaultRefreshBurst {
		t.Fatalf("expected default refresh burst, got %d", cfg.Refresh.Burst)
	}
}

func TestLoadArgsOverridesEnvironment(t *testing.T) {
	t.Setenv(envPort, "5000")
	t.Setenv(envSource, "rest")

	cfg, err := LoadArgs([]string{"-p", "6000", "--source", "fixture", "--prefs", "", "--table-interval", "1s", "--wait-healthy=false"})
	if err != nil {
		t.Fatalf("load args: %v", err)
	}
	if cfg.Port != "6000" || cfg.Source.Name != SourceFixture {
		t.Fatalf("expected flag overrides, got port=%s source=%s", cfg.Port, cfg.Source.Name)
	}
	if cfg.PrefsPath != "" {
		t.Fatalf("expected in-memory prefs, got %q", cfg.PrefsPath)
	}
	if cfg.Polling.TableInterval != time.Second || cfg.Source.WaitHealthy {
		t.Fatalf("unexpected polling/source %+v %+v", cfg.Polling, cfg.Source)
	}
}

func TestLoadArgsRejectsUnknownFlag(t *testing.T) {
	cfg, err := LoadArgs([]string{"--nope"})
	if err == nil {
		t.Fatalf("expected unknown flag error")
	}
	if cfg.Port != defaultPort {
		t.Fatalf("expected usable config alongside error, got %+v", cfg)
	}
}

func TestUsesDefaultSecret(t *testing.T) {
	if !(AuthConfig{JWTSecret: defaultJWTSecret}).UsesDefaultSecret() {
		t.Fatalf("expected default secret detected")
	}
	if (AuthConfig{JWTSecret: "s3cret"}).UsesDefaultSecret() {
		t.Fatalf("expected custom secret not flagged")
	}
}
