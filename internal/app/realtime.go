package app

import (
	"context"
	"fmt"

	"github.com/yungbote/movies-backend/internal/config"
	types "github.com/yungbote/movies-backend/internal/domain"
	"github.com/yungbote/movies-backend/internal/observability"
	"github.com/yungbote/movies-backend/internal/platform/logger"
	"github.com/yungbote/movies-backend/internal/realtime"
	"github.com/yungbote/movies-backend/internal/realtime/bus"
)

// Hubs holds the broadcast hubs owned by this process. Only the role that
// creates an entity gets a hub for it.
type Hubs struct {
	MovieInfo      *realtime.Hub[*types.MovieInfo]
	Review         *realtime.Hub[*types.Review]
	MovieInfoRelay *bus.Relay[*types.MovieInfo]
	ReviewRelay    *bus.Relay[*types.Review]

	bus bus.Bus
}

func wireHubs(ctx context.Context, log *logger.Logger, cfg *config.Config, m *observability.Metrics) (*Hubs, error) {
	log.Info("Wiring hubs...")
	h := &Hubs{}
	opts := []realtime.HubOption{
		realtime.WithBuffer(cfg.Stream.SubscriberBuffer),
		realtime.WithMetrics(m),
	}

	if cfg.Redis.Addr != "" && cfg.Role != config.RoleMovie {
		b, err := bus.NewRedisBus(ctx, log, bus.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("init redis hub bus: %w", err)
		}
		h.bus = b
	}

	switch cfg.Role {
	case config.RoleMovieInfo:
		h.MovieInfo = realtime.NewHub[*types.MovieInfo]("movieinfo", log, opts...)
		h.MovieInfoRelay = bus.NewRelay(h.MovieInfo, h.bus, cfg.Redis.Channel, log)
	case config.RoleReviews:
		h.Review = realtime.NewHub[*types.Review]("reviews", log, opts...)
		h.ReviewRelay = bus.NewRelay(h.Review, h.bus, cfg.Redis.Channel, log)
	}
	return h, nil
}

// Start subscribes the relays to the bus. Without a bus it is a no-op.
func (h *Hubs) Start(ctx context.Context) error {
	if h == nil {
		return nil
	}
	if h.MovieInfoRelay != nil {
		if err := h.MovieInfoRelay.Start(ctx); err != nil {
			return fmt.Errorf("start movie info relay: %w", err)
		}
	}
	if h.ReviewRelay != nil {
		if err := h.ReviewRelay.Start(ctx); err != nil {
			return fmt.Errorf("start review relay: %w", err)
		}
	}
	return nil
}

// Close ends every open subscription.
func (h *Hubs) Close() {
	if h == nil {
		return
	}
	if h.MovieInfo != nil {
		h.MovieInfo.Close()
	}
	if h.Review != nil {
		h.Review.Close()
	}
}

func (h *Hubs) CloseBus() error {
	if h == nil || h.bus == nil {
		return nil
	}
	return h.bus.Close()
}
