package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	types "github.com/yungbote/movies-backend/internal/domain"
	"github.com/yungbote/movies-backend/internal/platform/logger"
)

type ReviewRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reviews []*types.Review) ([]*types.Review, error)
	Save(ctx context.Context, tx *gorm.DB, review *types.Review) (*types.Review, error)
	GetByID(ctx context.Context, tx *gorm.DB, reviewID string) (*types.Review, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Review, error)
	ListByMovieInfoID(ctx context.Context, tx *gorm.DB, movieInfoID string) ([]*types.Review, error)
	DeleteByID(ctx context.Context, tx *gorm.DB, reviewID string) (bool, error)
}

type reviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReviewRepo(db *gorm.DB, baseLog *logger.Logger) ReviewRepo {
	repoLog := baseLog.With("repo", "ReviewRepo")
	return &reviewRepo{db: db, log: repoLog}
}

func (r *reviewRepo) Create(ctx context.Context, tx *gorm.DB, reviews []*types.Review) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(reviews) == 0 {
		return []*types.Review{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepo) Save(ctx context.Context, tx *gorm.DB, review *types.Review) (*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if err := transaction.WithContext(ctx).Save(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

// GetByID returns (nil, nil) when no row matches.
func (r *reviewRepo) GetByID(ctx context.Context, tx *gorm.DB, reviewID string) (*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var out types.Review
	if err := transaction.WithContext(ctx).
		Where("review_id = ?", reviewID).
		First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (r *reviewRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Review
	if err := transaction.WithContext(ctx).
		Order("created_at ASC, review_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reviewRepo) ListByMovieInfoID(ctx context.Context, tx *gorm.DB, movieInfoID string) ([]*types.Review, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Review
	if movieInfoID == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("movie_info_id = ?", movieInfoID).
		Order("created_at ASC, review_id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *reviewRepo) DeleteByID(ctx context.Context, tx *gorm.DB, reviewID string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Delete(&types.Review{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
