package app

import (
	"fmt"

	"github.com/yungbote/movies-backend/internal/clients/movieinfo"
	"github.com/yungbote/movies-backend/internal/clients/reviews"
	"github.com/yungbote/movies-backend/internal/config"
	"github.com/yungbote/movies-backend/internal/observability"
	"github.com/yungbote/movies-backend/internal/platform/logger"
	"github.com/yungbote/movies-backend/internal/upstream"
)

type Clients struct {
	MovieInfo *movieinfo.Client
	Reviews   *reviews.Client
}

// wireClients builds the upstream clients the aggregator calls. Other roles
// have no upstreams.
func wireClients(log *logger.Logger, cfg *config.Config, m *observability.Metrics) (Clients, error) {
	if cfg.Role != config.RoleMovie {
		return Clients{}, nil
	}
	log.Info("Wiring upstream clients...")

	infoUp, err := newUpstream("movie-info", cfg.Upstreams.MovieInfo, log, m)
	if err != nil {
		return Clients{}, err
	}
	reviewUp, err := newUpstream("reviews", cfg.Upstreams.Reviews, log, m)
	if err != nil {
		return Clients{}, err
	}
	return Clients{
		MovieInfo: movieinfo.New(infoUp, log),
		Reviews:   reviews.New(reviewUp),
	}, nil
}

func newUpstream(name string, uc config.UpstreamConfig, log *logger.Logger, m *observability.Metrics) (*upstream.Client, error) {
	c, err := upstream.New(upstream.Options{
		Name:    name,
		BaseURL: uc.URL,
		Timeout: uc.Timeout,
		Retry:   uc.Retry.Policy(),
		Log:     log,
		Metrics: m,
	})
	if err != nil {
		return nil, fmt.Errorf("init %s client: %w", name, err)
	}
	return c, nil
}
