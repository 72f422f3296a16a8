package db

import (
	"fmt"

	"gorm.io/gorm"

	types "github.com/yungbote/movies-backend/internal/domain"
)

// AutoMigrateMovieInfo creates the tables owned by the movie-info service.
func AutoMigrateMovieInfo(db *gorm.DB) error {
	if err := db.AutoMigrate(&types.MovieInfo{}); err != nil {
		return fmt.Errorf("auto migrate movie info: %w", err)
	}
	return nil
}

// AutoMigrateReviews creates the tables owned by the review service.
func AutoMigrateReviews(db *gorm.DB) error {
	if err := db.AutoMigrate(&types.Review{}); err != nil {
		return fmt.Errorf("auto migrate reviews: %w", err)
	}
	return nil
}
