package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	ServiceName  string
	OtlpInsecure bool
}

func loadMetrics(raw rawEnv) MetricsConfig {
	return MetricsConfig{
		Enabled:      boolOrDefault(raw.MetricsEnabled, true),
		Port:         stringOrDefault(raw.MetricsPort, defaultMetricsPort),
		OtlpEndpoint: stringOrDefault(raw.OtelEndpoint, ""),
		ServiceName:  stringOrDefault(raw.OtelService, defaultServiceName),
		OtlpInsecure: boolOrDefault(raw.OtelInsecure, true),
	}
}
