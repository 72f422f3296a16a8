package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/movies-backend/internal/data/repos"
	"github.com/yungbote/movies-backend/internal/data/repos/testutil"
	types "github.com/yungbote/movies-backend/internal/domain"
)

func newReviewService(t *testing.T) (ReviewService, *capturePublisher[*types.Review]) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	pub := &capturePublisher[*types.Review]{}
	return NewReviewService(db, log, repos.NewReviewRepo(db, log), pub), pub
}

func flexID(s string) *FlexID {
	id := FlexID(s)
	return &id
}

func TestReviewServiceCreateListAndSearch(t *testing.T) {
	svc, pub := newReviewService(t)
	ctx := context.Background()
	movieID := uuid.NewString()

	first, err := svc.Create(ctx, &ReviewInput{MovieInfoID: flexID(movieID), Comment: "Awesome Movie", Rating: testutil.PtrFloat(9)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := uuid.Parse(first.ReviewID); err != nil {
		t.Fatalf("want generated review id, got %q", first.ReviewID)
	}
	second, err := svc.Create(ctx, &ReviewInput{ReviewID: "r-" + movieID, MovieInfoID: flexID(movieID), Comment: "Excellent Movie", Rating: testutil.PtrFloat(8)})
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}
	if second.ReviewID != "r-"+movieID {
		t.Fatalf("explicit review id: got=%s", second.ReviewID)
	}
	if got := pub.values(); len(got) != 2 || got[0].ReviewID != first.ReviewID {
		t.Fatalf("published: got=%v", got)
	}

	rows, err := svc.List(ctx, movieID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("List by movie: err=%v len=%d", err, len(rows))
	}
	rows, err = svc.Search(ctx, movieID)
	if err != nil || len(rows) != 2 {
		t.Fatalf("Search: err=%v len=%d", err, len(rows))
	}

	all, err := svc.List(ctx, "")
	if err != nil || len(all) < 2 {
		t.Fatalf("List all: err=%v len=%d", err, len(all))
	}

	unknown := uuid.NewString()
	rows, err = svc.List(ctx, unknown)
	if err != nil || rows == nil || len(rows) != 0 {
		t.Fatalf("List unknown movie: want empty, err=%v rows=%v", err, rows)
	}
	_, err = svc.Search(ctx, unknown)
	wantAPIErr(t, err, http.StatusNotFound, "No reviews found for movieInfoId: "+unknown)
	_, err = svc.Search(ctx, " ")
	wantAPIErr(t, err, http.StatusBadRequest, "Query parameter 'movieInfoId' is required")
}

func TestReviewServiceValidation(t *testing.T) {
	svc, pub := newReviewService(t)
	cases := []struct {
		name string
		in   *ReviewInput
		msg  string
	}{
		{"missing movie id", &ReviewInput{Comment: "c", Rating: testutil.PtrFloat(1)}, "rating.movieInfoId : must not be null"},
		{"blank movie id", &ReviewInput{MovieInfoID: flexID("  "), Rating: testutil.PtrFloat(1)}, "rating.movieInfoId : must not be null"},
		{"negative rating", &ReviewInput{MovieInfoID: flexID("1"), Rating: testutil.PtrFloat(-9)}, "rating.negative : please pass a non-negative value"},
		{"both", &ReviewInput{Rating: testutil.PtrFloat(-1)}, "rating.movieInfoId : must not be null,rating.negative : please pass a non-negative value"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			wantAPIErr(t, err, http.StatusBadRequest, tc.msg)
		})
	}
	if got := pub.values(); len(got) != 0 {
		t.Fatalf("invalid creates must not publish, got %d values", len(got))
	}
}

func TestReviewServiceAcceptsNumericMovieID(t *testing.T) {
	svc, _ := newReviewService(t)
	var in ReviewInput
	if err := json.Unmarshal([]byte(`{"movieInfoId":1,"comment":"Awesome Movie","rating":9.0}`), &in); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	created, err := svc.Create(context.Background(), &in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.MovieInfoID != "1" {
		t.Fatalf("movieInfoId: want=1 got=%s", created.MovieInfoID)
	}
}

func TestReviewServiceUpdateGetDelete(t *testing.T) {
	svc, _ := newReviewService(t)
	ctx := context.Background()
	movieID := uuid.NewString()

	created, err := svc.Create(ctx, &ReviewInput{MovieInfoID: flexID(movieID), Comment: "Good", Rating: testutil.PtrFloat(6)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := svc.Update(ctx, created.ReviewID, &ReviewInput{MovieInfoID: flexID(movieID), Comment: "Better on rewatch", Rating: testutil.PtrFloat(8.5)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ReviewID != created.ReviewID || updated.Comment != "Better on rewatch" {
		t.Fatalf("updated: got=%+v", updated)
	}
	got, err := svc.Get(ctx, created.ReviewID)
	if err != nil || got.Rating == nil || *got.Rating != 8.5 {
		t.Fatalf("Get after Update: err=%v got=%+v", err, got)
	}

	missing := uuid.NewString()
	_, err = svc.Update(ctx, missing, &ReviewInput{MovieInfoID: flexID(movieID)})
	wantAPIErr(t, err, http.StatusNotFound, "Review not Found for the given Review Id: "+missing)

	if err := svc.Delete(ctx, created.ReviewID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = svc.Get(ctx, created.ReviewID)
	wantAPIErr(t, err, http.StatusNotFound, "Review not Found for the given Review Id: "+created.ReviewID)
	err = svc.Delete(ctx, created.ReviewID)
	wantAPIErr(t, err, http.StatusNotFound, "Review not Found for the given Review Id: "+created.ReviewID)
}

func TestFlexIDUnmarshal(t *testing.T) {
	cases := map[string]string{
		`"abc"`: "abc",
		`42`:    "42",
		`" 7 "`: "7",
	}
	for raw, want := range cases {
		var id FlexID
		if err := json.Unmarshal([]byte(raw), &id); err != nil {
			t.Fatalf("Unmarshal %s: %v", raw, err)
		}
		if got := id.String(); got != want {
			t.Fatalf("Unmarshal %s: want=%q got=%q", raw, want, got)
		}
	}
	var id FlexID
	if err := json.Unmarshal([]byte(`true`), &id); err == nil {
		t.Fatalf("want error for boolean id")
	}
}
