package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/yungbote/movies-backend/internal/domain"
	"github.com/yungbote/movies-backend/internal/platform/logger"
)

type MovieInfoRepo interface {
	Create(ctx context.Context, tx *gorm.DB, infos []*types.MovieInfo) ([]*types.MovieInfo, error)
	Save(ctx context.Context, tx *gorm.DB, info *types.MovieInfo) (*types.MovieInfo, error)
	GetByID(ctx context.Context, tx *gorm.DB, movieID string) (*types.MovieInfo, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.MovieInfo, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, movieID string) (bool, error)
}

type movieInfoRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMovieInfoRepo(db *gorm.DB, baseLog *logger.Logger) MovieInfoRepo {
	repoLog := baseLog.With("repo", "MovieInfoRepo")
	return &movieInfoRepo{db: db, log: repoLog}
}

func (r *movieInfoRepo) Create(ctx context.Context, tx *gorm.DB, infos []*types.MovieInfo) ([]*types.MovieInfo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(infos) == 0 {
		return []*types.MovieInfo{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&infos).Error; err != nil {
		return nil, err
	}
	return infos, nil
}

func (r *movieInfoRepo) Save(ctx context.Context, tx *gorm.DB, info *types.MovieInfo) (*types.MovieInfo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Save(info).Error; err != nil {
		return nil, err
	}
	return info, nil
}

// GetByID returns (nil, nil) when no row matches.
func (r *movieInfoRepo) GetByID(ctx context.Context, tx *gorm.DB, movieID string) (*types.MovieInfo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var out types.MovieInfo
	if err := transaction.WithContext(ctx).
		Where("movie_id = ?", movieID).
		First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *movieInfoRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.MovieInfo, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.MovieInfo
	if err := transaction.WithContext(ctx).
		Order("created_at ASC, movie_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *movieInfoRepo) DeleteByID(ctx context.Context, tx *gorm.DB, movieID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Where("movie_id = ?", movieID).
		Delete(&types.MovieInfo{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
