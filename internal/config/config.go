package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/spf13/pflag"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port    string
	Log     LogConfig
	Source  SourceConfig
	Polling PollingConfig
	Auth    AuthConfig
	Refresh RefreshConfig
	// PrefsPath is the preferences file; empty keeps preferences in memory.
	PrefsPath string
	Metrics   MetricsConfig
}

type LogConfig struct {
	Level  string
	Format string
}

// PollingConfig sets the poller cadence.
type PollingConfig struct {
	TableInterval     time.Duration
	DashboardInterval time.Duration
	// FetchTimeout bounds a single poll; zero leaves it to HTTPTimeout.
	FetchTimeout time.Duration
}

type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
}

// UsesDefaultSecret reports whether sessions are signed with the built-in
// development secret.
func (a AuthConfig) UsesDefaultSecret() bool {
	return a.JWTSecret == defaultJWTSecret
}

// RefreshConfig limits manual refresh requests per second.
type RefreshConfig struct {
	Rate  float64
	Burst int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	cfg, _ := LoadArgs(nil)
	return cfg
}

// LoadArgs reads the environment and then applies command-line overrides.
// The returned Config is usable even when err is non-nil.
func LoadArgs(args []string) (Config, error) {
	var raw rawEnv
	envErr := env.Parse(&raw)
	cfg := fromRaw(raw)
	if envErr != nil {
		return cfg, fmt.Errorf("parse environment: %w", envErr)
	}
	if len(args) == 0 {
		return cfg, nil
	}

	fs := pflag.NewFlagSet("dashboard-service", pflag.ContinueOnError)
	var (
		port      = fs.StringP("port", "p", cfg.Port, "HTTP listen port.")
		source    = fs.StringP("source", "s", cfg.Source.Name, "Data source: graphql, rest or fixture.")
		bffURL    = fs.String("bff-url", cfg.Source.BFFURL, "GraphQL BFF base URL.")
		restURL   = fs.String("rest-url", cfg.Source.RESTURL, "REST API base URL.")
		logLevel  = fs.StringP("log-level", "l", cfg.Log.Level, "Log level.")
		logFormat = fs.String("log-format", cfg.Log.Format, "Log format: text or json.")
		prefs     = fs.String("prefs", cfg.PrefsPath, "Preferences file; empty keeps them in memory.")
		table     = fs.Duration("table-interval", cfg.Polling.TableInterval, "Table poll interval.")
		dashboard = fs.Duration("dashboard-interval", cfg.Polling.DashboardInterval, "Dashboard poll interval.")
		wait      = fs.Bool("wait-healthy", cfg.Source.WaitHealthy, "Wait for the upstream health probe before polling.")
	)
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	cfg.Port = stringOrDefault(*port, cfg.Port)
	cfg.Source.Name = normalizeSource(*source)
	cfg.Source.BFFURL = stringOrDefault(*bffURL, cfg.Source.BFFURL)
	cfg.Source.RESTURL = stringOrDefault(*restURL, cfg.Source.RESTURL)
	cfg.Source.WaitHealthy = *wait
	cfg.Log.Level = stringOrDefault(*logLevel, cfg.Log.Level)
	cfg.Log.Format = stringOrDefault(*logFormat, cfg.Log.Format)
	cfg.PrefsPath = *prefs
	if *table > 0 {
		cfg.Polling.TableInterval = *table
	}
	if *dashboard > 0 {
		cfg.Polling.DashboardInterval = *dashboard
	}
	return cfg, nil
}

func fromRaw(raw rawEnv) Config {
	return Config{
		Port: stringOrDefault(raw.Port, defaultPort),
		Log: LogConfig{
			Level:  stringOrDefault(raw.LogLevel, defaultLogLevel),
			Format: stringOrDefault(raw.LogFormat, defaultLogFormat),
		},
		Source: loadSource(raw),
		Polling: PollingConfig{
			TableInterval:     durationOrDefault(raw.TablePoll, defaultTablePoll),
			DashboardInterval: durationOrDefault(raw.DashboardPoll, defaultDashboardPoll),
			FetchTimeout:      durationOrDefault(raw.FetchTimeout, defaultFetchTimeout),
		},
		Auth: AuthConfig{
			JWTSecret:  stringOrDefault(raw.JWTSecret, defaultJWTSecret),
			SessionTTL: durationOrDefault(raw.SessionTTL, defaultSessionTTL),
		},
		Refresh: RefreshConfig{
			Rate:  floatOrDefault(raw.RefreshRate, defaultRefreshRate),
			Burst: intOrDefault(raw.RefreshBurst, defaultRefreshBurst),
		},
		PrefsPath: stringOrDefault(raw.PrefsPath, defaultPrefsPath),
		Metrics:   loadMetrics(raw),
	}
}
