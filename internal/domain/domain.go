package domain

import "github.com/yungbote/movies-backend/internal/domain/catalog"

type (
	MovieInfo = catalog.MovieInfo
	Review    = catalog.Review
	Movie     = catalog.Movie
)

var NewMovie = catalog.NewMovie
