package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/movies-backend/internal/data/repos/catalog"
	"github.com/yungbote/movies-backend/internal/platform/logger"
)

type MovieInfoRepo = catalog.MovieInfoRepo
type ReviewRepo = catalog.ReviewRepo

func NewMovieInfoRepo(db *gorm.DB, baseLog *logger.Logger) MovieInfoRepo {
	return catalog.NewMovieInfoRepo(db, baseLog)
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	return catalog.NewReviewRepo(db, baseLog)
}
