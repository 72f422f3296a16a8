package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	types "github.com/yungbote/movies-backend/internal/domain"
	"github.com/yungbote/movies-backend/internal/platform/ctxutil"
	"github.com/yungbote/movies-backend/internal/platform/logger"
	"github.com/yungbote/movies-backend/internal/upstream"
)

// MovieInfoSource is the primary lookup: absence is a failure.
type MovieInfoSource interface {
	Get(ctx context.Context, movieID string) (*types.MovieInfo, error)
	Stream(ctx context.Context, onInfo func(*types.MovieInfo) error) error
}

// ReviewSource is the dependent lookup: a not_found error means "no reviews".
type ReviewSource interface {
	ListByMovieID(ctx context.Context, movieID string) ([]*types.Review, error)
}

type MovieService interface {
	GetMovie(ctx context.Context, movieID string) (*types.Movie, error)
	StreamMovieInfos(ctx context.Context, onInfo func(*types.MovieInfo) error) error
}

type movieService struct {
	log     *logger.Logger
	infos   MovieInfoSource
	reviews ReviewSource
}

func NewMovieService(log *logger.Logger, infos MovieInfoSource, reviews ReviewSource) MovieService {
	serviceLog := log.With("service", "MovieService")
	return &movieService{
		log:     serviceLog,
		infos:   infos,
		reviews: reviews,
	}
}

// GetMovie fetches the movie info and its reviews concurrently and merges them.
//
// A movie info failure wins and cancels the review lookup. Missing reviews
// yield an empty list; any other review failure fails the whole call. No
// partial movie is ever returned. Only the movie info lookup reports its error
// to the group: a review failure must not cancel it, because that failure only
// counts once the movie info has succeeded.
func (s *movieService) GetMovie(ctx context.Context, movieID string) (*types.Movie, error) {
	var (
		info       *types.MovieInfo
		reviews    []*types.Review
		reviewsErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		info, err = s.infos.Get(gctx, movieID)
		return err
	})
	g.Go(func() error {
		reviews, reviewsErr = s.reviews.ListByMovieID(gctx, movieID)
		return nil
	})
	infoErr := g.Wait()

	if infoErr != nil {
		s.log.Warn("movie info lookup failed",
			"movie_id", movieID,
			"kind", upstream.KindOf(infoErr),
			"error", infoErr,
			"request_id", ctxutil.RequestID(ctx),
		)
		return nil, infoErr
	}
	if reviewsErr != nil {
		if !upstream.IsNotFound(reviewsErr) {
			s.log.Warn("review lookup failed",
				"movie_id", movieID,
				"kind", upstream.KindOf(reviewsErr),
				"error", reviewsErr,
				"request_id", ctxutil.RequestID(ctx),
			)
			return nil, reviewsErr
		}
		reviews = nil
	}
	return types.NewMovie(*info, reviews), nil
}

func (s *movieService) StreamMovieInfos(ctx context.Context, onInfo func(*types.MovieInfo) error) error {
	return s.infos.Stream(ctx, onInfo)
}
