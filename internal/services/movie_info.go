package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/movies-backend/internal/data/repos"
	types "github.com/yungbote/movies-backend/internal/domain"
	"github.com/yungbote/movies-backend/internal/platform/apierr"
	"github.com/yungbote/movies-backend/internal/platform/logger"
)

// Publisher receives every newly created entity. Implementations must not block.
type Publisher[T any] interface {
	Publish(ctx context.Context, v T)
}

type MovieInfoInput struct {
	MovieID     string   `json:"movieId"`
	Name        string   `json:"name" validate:"notblank"`
	Year        *int     `json:"year" validate:"required,gt=0"`
	Cast        []string `json:"cast" validate:"required,dive,notblank"`
	ReleaseDate string   `json:"releaseDate" validate:"omitempty,datetime=2006-01-02"`
	Description string   `json:"description"`
}

var movieInfoMessages = fieldMessages{
	"MovieInfoInput.Name|notblank":        "movieInfo.name should be not be blank",
	"MovieInfoInput.Year|required":        "movieInfo.year must not be null",
	"MovieInfoInput.Year|gt":              "movieInfo.year should be positive",
	"MovieInfoInput.Cast|required":        "movieInfo.cast must not be null",
	"MovieInfoInput.Cast|notblank":        "movieInfo.cast should not be blank",
	"MovieInfoInput.ReleaseDate|datetime": "movieInfo.releaseDate must be a yyyy-MM-dd date",
}

func (in *MovieInfoInput) apply(mi *types.MovieInfo) {
	mi.Name = strings.TrimSpace(in.Name)
	mi.Year = *in.Year
	mi.Cast = append(mi.Cast[:0], in.Cast...)
	mi.ReleaseDate = strings.TrimSpace(in.ReleaseDate)
	mi.Description = in.Description
}

type MovieInfoService interface {
	Create(ctx context.Context, in *MovieInfoInput) (*types.MovieInfo, error)
	List(ctx context.Context) ([]*types.MovieInfo, error)
	Get(ctx context.Context, movieID string) (*types.MovieInfo, error)
	Update(ctx context.Context, movieID string, in *MovieInfoInput) (*types.MovieInfo, error)
	Delete(ctx context.Context, movieID string) error
}

type movieInfoService struct {
	db        *gorm.DB
	log       *logger.Logger
	repo      repos.MovieInfoRepo
	publisher Publisher[*types.MovieInfo]
}

func NewMovieInfoService(db *gorm.DB, log *logger.Logger, repo repos.MovieInfoRepo, publisher Publisher[*types.MovieInfo]) MovieInfoService {
	serviceLog := log.With("service", "MovieInfoService")
	return &movieInfoService{
		db:        db,
		log:       serviceLog,
		repo:      repo,
		publisher: publisher,
	}
}

func (s *movieInfoService) Create(ctx context.Context, in *MovieInfoInput) (*types.MovieInfo, error) {
	if in == nil {
		return nil, apierr.BadRequest("invalid_request", "request body required")
	}
	if err := validateInput(in, movieInfoMessages); err != nil {
		return nil, err
	}

	mi := &types.MovieInfo{MovieID: strings.TrimSpace(in.MovieID)}
	if mi.MovieID == "" {
		mi.MovieID = uuid.NewString()
	}
	in.apply(mi)

	existing, err := s.repo.GetByID(ctx, nil, mi.MovieID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if existing != nil {
		return nil, apierr.New(http.StatusConflict, "movie_info_exists", fmt.Errorf("MovieInfo already exists for id: %s", mi.MovieID))
	}

	created, err := s.repo.Create(ctx, nil, []*types.MovieInfo{mi})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	saved := created[0]
	s.log.Info("movie info created", "movie_id", saved.MovieID)
	if s.publisher != nil {
		s.publisher.Publish(ctx, saved)
	}
	return saved, nil
}

func (s *movieInfoService) List(ctx context.Context) ([]*types.MovieInfo, error) {
	rows, err := s.repo.List(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if rows == nil {
		rows = []*types.MovieInfo{}
	}
	return rows, nil
}

func (s *movieInfoService) Get(ctx context.Context, movieID string) (*types.MovieInfo, error) {
	mi, err := s.repo.GetByID(ctx, nil, strings.TrimSpace(movieID))
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if mi == nil {
		return nil, movieInfoNotFound(movieID)
	}
	return mi, nil
}

func (s *movieInfoService) Update(ctx context.Context, movieID string, in *MovieInfoInput) (*types.MovieInfo, error) {
	if in == nil {
		return nil, apierr.BadRequest("invalid_request", "request body required")
	}
	if err := validateInput(in, movieInfoMessages); err != nil {
		return nil, err
	}
	movieID = strings.TrimSpace(movieID)

	var out *types.MovieInfo
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		mi, err := s.repo.GetByID(ctx, tx, movieID)
		if err != nil {
			return apierr.Internal(err)
		}
		if mi == nil {
			return movieInfoNotFound(movieID)
		}
		in.apply(mi)
		saved, err := s.repo.Save(ctx, tx, mi)
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

// Delete is idempotent: removing an unknown id succeeds.
func (s *movieInfoService) Delete(ctx context.Context, movieID string) error {
	deleted, err := s.repo.DeleteByID(ctx, nil, strings.TrimSpace(movieID))
	if err != nil {
		return apierr.Internal(err)
	}
	if deleted {
		s.log.Info("movie info deleted", "movie_id", movieID)
	}
	return nil
}

func movieInfoNotFound(movieID string) error {
	return apierr.NotFound("movie_info_not_found", "MovieInfo not found for id: %s", movieID)
}
