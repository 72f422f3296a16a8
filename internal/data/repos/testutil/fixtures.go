package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/movies-backend/internal/domain"
)

func SeedMovieInfo(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, year int) *types.MovieInfo {
	tb.Helper()
	mi := &types.MovieInfo{
		MovieID:     uuid.NewString(),
		Name:        name,
		Year:        year,
		Cast:        []string{"Christian Bale", "Michael Caine"},
		ReleaseDate: "2005-06-15",
	}
	if err := tx.WithContext(ctx).Create(mi).Error; err != nil {
		tb.Fatalf("seed movie info: %v", err)
	}
	return mi
}

func SeedReview(tb testing.TB, ctx context.Context, tx *gorm.DB, movieInfoID string, comment string, rating float64) *types.Review {
	tb.Helper()
	rv := &types.Review{
		ReviewID:    uuid.NewString(),
		MovieInfoID: movieInfoID,
		Comment:     comment,
		Rating:      PtrFloat(rating),
	}
	if err := tx.WithContext(ctx).Create(rv).Error; err != nil {
		tb.Fatalf("seed review: %v", err)
	}
	return rv
}

func PtrFloat(v float64) *float64 { return &v }
