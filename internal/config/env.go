package config

import (
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// rawEnv mirrors the environment as text. Values are validated by the
// helpers below so a bad value falls back to its default instead of failing
// startup.
type rawEnv struct {
	Port            string `env:"PORT"`
	LogLevel        string `env:"LOG_LEVEL"`
	LogFormat       string `env:"LOG_FORMAT"`
	Source          string `env:"SOURCE"`
	BFFURL          string `env:"BFF_URL"`
	RESTURL         string `env:"REST_URL"`
	HTTPTimeout     string `env:"HTTP_TIMEOUT"`
	SourceRateLimit string `env:"SOURCE_RATE_LIMIT"`
	SourceRateBurst string `env:"SOURCE_RATE_BURST"`
	BreakerEnabled  string `env:"BREAKER_ENABLED"`
	BreakerFailures string `env:"BREAKER_FAILURES"`
	BreakerTimeout  string `env:"BREAKER_TIMEOUT"`
	WaitHealthy     string `env:"WAIT_HEALTHY"`
	WaitHealthyMax  string `env:"WAIT_HEALTHY_TIMEOUT"`
	TablePoll       string `env:"TABLE_POLL_INTERVAL"`
	DashboardPoll   string `env:"DASHBOARD_POLL_INTERVAL"`
	FetchTimeout    string `env:"FETCH_TIMEOUT"`
	JWTSecret       string `env:"JWT_SECRET"`
	SessionTTL      string `env:"SESSION_TTL"`
	PrefsPath       string `env:"PREFS_PATH"`
	RefreshRate     string `env:"REFRESH_RATE"`
	RefreshBurst    string `env:"REFRESH_BURST"`
	MetricsEnabled  string `env:"METRICS_ENABLED"`
	MetricsPort     string `env:"METRICS_PORT"`
	OtelEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelService     string `env:"OTEL_SERVICE_NAME"`
	OtelInsecure    string `env:"OTEL_EXPORTER_OTLP_INSECURE"`
}

func stringOrDefault(raw, defaultValue string) string {
	if v := strings.TrimSpace(raw); v != "" {
		return v
	}
	return defaultValue
}

func durationOrDefault(raw string, defaultValue time.Duration) time.Duration {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func intOrDefault(raw string, defaultValue int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

// floatOrDefault accepts zero, which disables rate limiters.
func floatOrDefault(raw string, defaultValue float64) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultValue
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil || val < 0 {
		return defaultValue
	}
	return val
}

func boolOrDefault(raw string, defaultValue bool) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultValue
	}
	if raw == "1" || strings.EqualFold(raw, "true") || strings.EqualFold(raw, "yes") {
		return true
	}
	if raw == "0" || strings.EqualFold(raw, "false") || strings.EqualFold(raw, "no") {
		return false
	}
	return defaultValue
}
