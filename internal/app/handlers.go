package app

import (
	"github.com/yungbote/movies-backend/internal/config"
	"github.com/yungbote/movies-backend/internal/data/db"
	httpH "github.com/yungbote/movies-backend/internal/http/handlers"
	"github.com/yungbote/movies-backend/internal/platform/logger"
)

type Handlers struct {
	Health    *httpH.HealthHandler
	MovieInfo *httpH.MovieInfoHandler
	Review    *httpH.ReviewHandler
	Movie     *httpH.MovieHandler
}

func wireHandlers(log *logger.Logger, cfg *config.Config, services Services, hubs *Hubs, store *db.Service) Handlers {
	log.Info("Wiring handlers...")
	deps := map[string]httpH.Pinger{}
	if store != nil {
		deps["store"] = store
	}

	out := Handlers{Health: httpH.NewHealthHandler(deps)}
	if services.MovieInfo != nil {
		out.MovieInfo = httpH.NewMovieInfoHandler(log, services.MovieInfo, hubs.MovieInfo, cfg.Stream.Heartbeat)
	}
	if services.Review != nil {
		out.Review = httpH.NewReviewHandler(log, services.Review, hubs.Review)
	}
	if services.Movie != nil {
		out.Movie = httpH.NewMovieHandler(log, services.Movie)
	}
	return out
}
