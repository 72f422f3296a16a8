package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/movies-backend/internal/data/db"
	"github.com/yungbote/movies-backend/internal/platform/logger"
	"github.com/yungbote/movies-backend/internal/services"
)

type Services struct {
	MovieInfo services.MovieInfoService
	Review    services.ReviewService
	Movie     services.MovieService
}

func wireServices(store *db.Service, log *logger.Logger, reposet Repos, clients Clients, hubs *Hubs) Services {
	log.Info("Wiring services...")
	var theDB *gorm.DB
	if store != nil {
		theDB = store.DB()
	}

	var out Services
	if reposet.MovieInfo != nil {
		out.MovieInfo = services.NewMovieInfoService(theDB, log, reposet.MovieInfo, hubs.MovieInfoRelay)
	}
	if reposet.Review != nil {
		out.Review = services.NewReviewService(theDB, log, reposet.Review, hubs.ReviewRelay)
	}
	if clients.MovieInfo != nil && clients.Reviews != nil {
		out.Movie = services.NewMovieService(log, clients.MovieInfo, clients.Reviews)
	}
	return out
}
