package config

import "time"

const (
	envPort            = "PORT"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envSource          = "SOURCE"
	envBFFURL          = "BFF_URL"
	envRESTURL         = "REST_URL"
	envHTTPTimeout     = "HTTP_TIMEOUT"
	envSourceRateLimit = "SOURCE_RATE_LIMIT"
	envSourceRateBurst = "SOURCE_RATE_BURST"
	envBreakerEnabled  = "BREAKER_ENABLED"
	envBreakerFailures = "BREAKER_FAILURES"
	envBreakerTimeout  = "BREAKER_TIMEOUT"
	envWaitHealthy     = "WAIT_HEALTHY"
	envWaitHealthyMax  = "WAIT_HEALTHY_TIMEOUT"
	envTablePoll       = "TABLE_POLL_INTERVAL"
	envDashboardPoll   = "DASHBOARD_POLL_INTERVAL"
	envFetchTimeout    = "FETCH_TIMEOUT"
	envJWTSecret       = "JWT_SECRET"
	envSessionTTL      = "SESSION_TTL"
	envPrefsPath       = "PREFS_PATH"
	envRefreshRate     = "REFRESH_RATE"
	envRefreshBurst    = "REFRESH_BURST"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort      = "4000"
	defaultLogLevel  = "info"
	defaultLogFormat = "text"

	SourceGraphQL = "graphql"
	SourceREST    = "rest"
	SourceFixture = "fixture"

	defaultSource  = SourceGraphQL
	defaultBFFURL  = "http://localhost:8080"
	defaultRESTURL = "http://localhost:8080"

	defaultHTTPTimeout     = 10 * Duration(time.Second)
	// Five tables every 5s plus the dashboard every 10s stay well under this.
	defaultSourceRateLimit = 10.0
	defaultSourceRateBurst = 10
	defaultBreakerEnabled  = true
	defaultBreakerFailures = 5
	defaultBreakerTimeout  = 30 * Duration(time.Second)
	defaultWaitHealthy     = true
	defaultWaitHealthyMax  = 30 * Duration(time.Second)

	defaultTablePoll     = 5 * Duration(time.Second)
	defaultDashboardPoll = 10 * Duration(time.Second)
	defaultFetchTimeout  = 8 * Duration(time.Second)

	defaultJWTSecret  = "dashboard-dev-secret"
	defaultSessionTTL = 24 * Duration(time.Hour)
	defaultPrefsPath  = "data/preferences.json"

	defaultRefreshRate  = 1.0
	defaultRefreshBurst = 3

	defaultMetricsPort = "9090"
	defaultServiceName = "dashboard-service"
)
