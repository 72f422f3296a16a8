package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/movies-backend/internal/data/repos"
	types "github.com/yungbote/movies-backend/internal/domain"
	"github.com/yungbote/movies-backend/internal/platform/apierr"
	"github.com/yungbote/movies-backend/internal/platform/logger"
)

type ReviewInput struct {
	ReviewID    string   `json:"reviewId"`
	MovieInfoID *FlexID  `json:"movieInfoId" validate:"required,notblank"`
	Comment     string   `json:"comment"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0"`
}

var reviewMessages = fieldMessages{
	"ReviewInput.MovieInfoID|required": "rating.movieInfoId : must not be null",
	"ReviewInput.MovieInfoID|notblank": "rating.movieInfoId : must not be null",
	"ReviewInput.Rating|gte":           "rating.negative : please pass a non-negative value",
}

func (in *ReviewInput) apply(r *types.Review) {
	r.MovieInfoID = in.MovieInfoID.String()
	r.Comment = in.Comment
	r.Rating = in.Rating
}

type ReviewService interface {
	Create(ctx context.Context, in *ReviewInput) (*types.Review, error)
	// List returns every review, or those for movieInfoID when it is set.
	// An unknown movie yields an empty list, not an error.
	List(ctx context.Context, movieInfoID string) ([]*types.Review, error)
	// Search requires movieInfoID and reports absence as 404.
	Search(ctx context.Context, movieInfoID string) ([]*types.Review, error)
	Get(ctx context.Context, reviewID string) (*types.Review, error)
	Update(ctx context.Context, reviewID string, in *ReviewInput) (*types.Review, error)
	Delete(ctx context.Context, reviewID string) error
}

type reviewService struct {
	db        *gorm.DB
	log       *logger.Logger
	repo      repos.ReviewRepo
	publisher Publisher[*types.Review]
}

func NewReviewService(db *gorm.DB, log *logger.Logger, repo repos.ReviewRepo, publisher Publisher[*types.Review]) ReviewService {
	serviceLog := log.With("service", "ReviewService")
	return &reviewService{
		db:        db,
		log:       serviceLog,
		repo:      repo,
		publisher: publisher,
	}
}

func (s *reviewService) Create(ctx context.Context, in *ReviewInput) (*types.Review, error) {
	if in == nil {
		return nil, apierr.BadRequest("invalid_request", "request body required")
	}
	if err := validateInput(in, reviewMessages); err != nil {
		return nil, err
	}

	r := &types.Review{ReviewID: strings.TrimSpace(in.ReviewID)}
	if r.ReviewID == "" {
		r.ReviewID = uuid.NewString()
	}
	in.apply(r)

	created, err := s.repo.Create(ctx, nil, []*types.Review{r})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	saved := created[0]
	s.log.Info("review created", "review_id", saved.ReviewID, "movie_info_id", saved.MovieInfoID)
	if s.publisher != nil {
		s.publisher.Publish(ctx, saved)
	}
	return saved, nil
}

func (s *reviewService) List(ctx context.Context, movieInfoID string) ([]*types.Review, error) {
	var (
		rows []*types.Review
		err  error
	)
	if movieInfoID = strings.TrimSpace(movieInfoID); movieInfoID != "" {
		rows, err = s.repo.ListByMovieInfoID(ctx, nil, movieInfoID)
	} else {
		rows, err = s.repo.List(ctx, nil)
	}
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if rows == nil {
		rows = []*types.Review{}
	}
	return rows, nil
}

func (s *reviewService) Search(ctx context.Context, movieInfoID string) ([]*types.Review, error) {
	movieInfoID = strings.TrimSpace(movieInfoID)
	if movieInfoID == "" {
		return nil, apierr.BadRequest("missing_movie_info_id", "Query parameter 'movieInfoId' is required")
	}
	rows, err := s.repo.ListByMovieInfoID(ctx, nil, movieInfoID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if len(rows) == 0 {
		return nil, apierr.NotFound("reviews_not_found", "No reviews found for movieInfoId: %s", movieInfoID)
	}
	return rows, nil
}

func (s *reviewService) Get(ctx context.Context, reviewID string) (*types.Review, error) {
	r, err := s.repo.GetByID(ctx, nil, strings.TrimSpace(reviewID))
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if r == nil {
		return nil, reviewNotFound(reviewID)
	}
	return r, nil
}

func (s *reviewService) Update(ctx context.Context, reviewID string, in *ReviewInput) (*types.Review, error) {
	if in == nil {
		return nil, apierr.BadRequest("invalid_request", "request body required")
	}
	if err := validateInput(in, reviewMessages); err != nil {
		return nil, err
	}
	reviewID = strings.TrimSpace(reviewID)

	var out *types.Review
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, err := s.repo.GetByID(ctx, tx, reviewID)
		if err != nil {
			return apierr.Internal(err)
		}
		if r == nil {
			return reviewNotFound(reviewID)
		}
		in.apply(r)
		saved, err := s.repo.Save(ctx, tx, r)
		if err != nil {
			return apierr.Internal(err)
		}
		out = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *reviewService) Delete(ctx context.Context, reviewID string) error {
	reviewID = strings.TrimSpace(reviewID)
	deleted, err := s.repo.DeleteByID(ctx, nil, reviewID)
	if err != nil {
		return apierr.Internal(err)
	}
	if !deleted {
		return reviewNotFound(reviewID)
	}
	s.log.Info("review deleted", "review_id", reviewID)
	return nil
}

func reviewNotFound(reviewID string) error {
	return apierr.NotFound("review_not_found", "Review not Found for the given Review Id: %s", reviewID)
}
