package app

import (
	"github.com/yungbote/movies-backend/internal/config"
	"github.com/yungbote/movies-backend/internal/data/db"
	"github.com/yungbote/movies-backend/internal/data/repos"
	"github.com/yungbote/movies-backend/internal/platform/logger"
)

type Repos struct {
	MovieInfo repos.MovieInfoRepo
	Review    repos.ReviewRepo
}

func wireRepos(store *db.Service, log *logger.Logger, role config.Role) Repos {
	if store == nil {
		return Repos{}
	}
	log.Info("Wiring repos...")
	switch role {
	case config.RoleMovieInfo:
		return Repos{MovieInfo: repos.NewMovieInfoRepo(store.DB(), log)}
	case config.RoleReviews:
		return Repos{Review: repos.NewReviewRepo(store.DB(), log)}
	}
	return Repos{}
}
