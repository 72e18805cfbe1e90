package server

import (
	"log/slog"

	"github.com/preston-bernstein/dashboard-service/internal/config"
	"github.com/preston-bernstein/dashboard-service/internal/providers"
	"github.com/preston-bernstein/dashboard-service/internal/providers/fixture"
	"github.com/preston-bernstein/dashboard-service/internal/providers/graphql"
	"github.com/preston-bernstein/dashboard-service/internal/providers/rest"
)

const userAgent = "dashboard-service"

// selectSource builds the upstream client named by cfg. The GraphQL BFF has
// no catalog query, so products are read from the REST API next to it.
func selectSource(cfg config.SourceConfig, logger *slog.Logger) providers.Source {
	restClient := func() *rest.Client {
		return rest.NewClient(rest.Config{
			BaseURL:   cfg.RESTURL,
			Timeout:   cfg.HTTPTimeout,
			UserAgent: userAgent,
		})
	}

	switch cfg.Name {
	case config.SourceFixture:
		return fixture.New()
	case config.SourceREST:
		return restClient()
	case config.SourceGraphQL, "":
		return graphql.NewClient(graphql.Config{
			BaseURL:   cfg.BFFURL,
			Timeout:   cfg.HTTPTimeout,
			UserAgent: userAgent,
			Products:  restClient(),
		})
	default:
		if logger != nil {
			logger.Warn("unknown source, falling back to fixture", slog.String("source", cfg.Name))
		}
		return fixture.New()
	}
}
