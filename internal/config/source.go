package config

import (
	"strings"
	"time"
)

// SourceConfig selects and tunes the upstream data source.
type SourceConfig struct {
	// Name is one of graphql, rest or fixture.
	Name        string
	BFFURL      string
	RESTURL     string
	HTTPTimeout time.Duration
	// RateLimit is upstream requests per second; zero disables the limiter.
	RateLimit float64
	RateBurst int

	BreakerEnabled  bool
	BreakerFailures int
	BreakerTimeout  time.Duration

	// WaitHealthy delays the pollers until the health probe passes or WaitHealthyMax elapses.
	WaitHealthy    bool
	WaitHealthyMax time.Duration
}

func loadSource(raw rawEnv) SourceConfig {
	return SourceConfig{
		Name:            normalizeSource(raw.Source),
		BFFURL:          stringOrDefault(raw.BFFURL, defaultBFFURL),
		RESTURL:         stringOrDefault(raw.RESTURL, defaultRESTURL),
		HTTPTimeout:     durationOrDefault(raw.HTTPTimeout, defaultHTTPTimeout),
		RateLimit:       floatOrDefault(raw.SourceRateLimit, defaultSourceRateLimit),
		RateBurst:       intOrDefault(raw.SourceRateBurst, defaultSourceRateBurst),
		BreakerEnabled:  boolOrDefault(raw.BreakerEnabled, defaultBreakerEnabled),
		BreakerFailures: intOrDefault(raw.BreakerFailures, defaultBreakerFailures),
		BreakerTimeout:  durationOrDefault(raw.BreakerTimeout, defaultBreakerTimeout),
		WaitHealthy:     boolOrDefault(raw.WaitHealthy, defaultWaitHealthy),
		WaitHealthyMax:  durationOrDefault(raw.WaitHealthyMax, defaultWaitHealthyMax),
	}
}

// normalizeSource lower-cases the source name; unknown names fall back to the default.
func normalizeSource(raw string) string {
	switch name := strings.ToLower(strings.TrimSpace(raw)); name {
	case SourceGraphQL, SourceREST, SourceFixture:
		return name
	default:
		return defaultSource
	}
}
