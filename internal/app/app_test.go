package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/movies-backend/internal/config"
)

func testConfig(role config.Role) *config.Config {
	cfg := config.Defaults(role)
	cfg.LogMode = "test"
	cfg.HTTP.Addr = "127.0.0.1:0"
	cfg.Store.Driver = "sqlite"
	cfg.Store.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}
	a, err := NewWithConfig(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewWithConfig: %v", err)
	}
	t.Cleanup(a.Close)
	return a
}

func serve(a *App, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	a.Server.Engine.ServeHTTP(rec, req)
	return rec
}

func TestMovieInfoRoleWiring(t *testing.T) {
	a := newTestApp(t, testConfig(config.RoleMovieInfo))
	if a.DB == nil || a.Services.MovieInfo == nil || a.Hubs.MovieInfo == nil {
		t.Fatalf("movieinfo role must wire store, service and hub")
	}
	if a.Services.Review != nil || a.Services.Movie != nil {
		t.Fatalf("movieinfo role must not wire other services")
	}

	rec := serve(a, http.MethodPost, "/api/v1/movieinfos", `{"name":"Batman Begins","year":2005,"cast":["Christian Bale"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: want=201 got=%d (%s)", rec.Code, rec.Body.String())
	}
	if latest, ok := a.Hubs.MovieInfo.Latest(); !ok || latest.Name != "Batman Begins" {
		t.Fatalf("create must publish to the hub, latest=%v ok=%v", latest, ok)
	}
	if rec := serve(a, http.MethodGet, "/api/v1/reviews", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("review routes must not be mounted, got %d", rec.Code)
	}
	if rec := serve(a, http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Fatalf("readyz: want=200 got=%d (%s)", rec.Code, rec.Body.String())
	}
}

func TestReviewsRoleWiring(t *testing.T) {
	a := newTestApp(t, testConfig(config.RoleReviews))
	rec := serve(a, http.MethodPost, "/api/v1/reviews", `{"movieInfoId":1,"comment":"Awesome Movie","rating":9.0}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: want=201 got=%d (%s)", rec.Code, rec.Body.String())
	}
	rec = serve(a, http.MethodGet, "/api/v1/reviews?movieInfoId=1", "")
	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("list: err=%v body=%s", err, rec.Body.String())
	}
}

func TestMovieRoleAggregatesUpstreams(t *testing.T) {
	var reviewCalls int32
	info := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch id := strings.TrimPrefix(r.URL.Path, "/api/v1/movieinfos/"); id {
		case "abc", "boom":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprintf(w, `{"movieId":%q,"name":"Batman Begins","year":2005,"cast":["Christian Bale"]}`, id)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer info.Close()
	reviews := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("movieInfoId") == "boom" {
			atomic.AddInt32(&reviewCalls, 1)
			http.Error(w, "review store unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	}))
	defer reviews.Close()

	cfg := testConfig(config.RoleMovie)
	cfg.Upstreams.MovieInfo.URL = info.URL + "/api/v1/movieinfos"
	cfg.Upstreams.Reviews.URL = reviews.URL + "/api/v1/reviews"
	cfg.Upstreams.MovieInfo.Retry.BaseDelay = time.Millisecond
	cfg.Upstreams.Reviews.Retry.MaxAttempts = 3
	cfg.Upstreams.Reviews.Retry.BaseDelay = time.Millisecond
	cfg.Upstreams.Reviews.Retry.MaxDelay = 5 * time.Millisecond
	a := newTestApp(t, cfg)
	if a.DB != nil {
		t.Fatalf("movie role must not open a store")
	}

	rec := serve(a, http.MethodGet, "/api/v1/movies/abc", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("abc: want=200 got=%d (%s)", rec.Code, rec.Body.String())
	}
	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body["name"] != "Batman Begins" {
		t.Fatalf("abc body: got=%v", body)
	}
	if list, ok := body["reviewList"].([]any); !ok || len(list) != 0 {
		t.Fatalf("abc reviewList: got=%v", body["reviewList"])
	}

	rec = serve(a, http.MethodGet, "/api/v1/movies/def", "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), "There is no MovieInfo available for the passed in Id : def") {
		t.Fatalf("def: status=%d body=%s", rec.Code, rec.Body.String())
	}

	rec = serve(a, http.MethodGet, "/api/v1/movies/boom", "")
	if rec.Code != http.StatusInternalServerError || !strings.Contains(rec.Body.String(), `"code":"server_error"`) {
		t.Fatalf("boom: status=%d body=%s", rec.Code, rec.Body.String())
	}
	if got := atomic.LoadInt32(&reviewCalls); got != 3 {
		t.Fatalf("boom review attempts: want=3 got=%d", got)
	}
}
