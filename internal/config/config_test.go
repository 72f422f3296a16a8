package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yungbote/movies-backend/internal/upstream"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		PathEnv, "LOG_MODE", "PORT", "HTTP_ADDR", "MOVIE_INFO_URL", "REVIEWS_URL",
		"MOVIE_INFO_MAX_ATTEMPTS", "REVIEWS_MAX_ATTEMPTS", "STORE_DRIVER", "STORE_DSN",
		"POSTGRES_HOST", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_NAME", "POSTGRES_PORT",
		"REDIS_ADDR", "REDIS_CHANNEL", "METRICS_ADDR",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultsPerRole(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(RoleMovie)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.HTTP.Addr != ":8082" {
		t.Fatalf("addr: want=:8082 got=%s", cfg.HTTP.Addr)
	}
	mi := cfg.Upstreams.MovieInfo.Retry.Policy()
	if mi.MaxAttempts != 4 || mi.Backoff != upstream.BackoffFixed || mi.BaseDelay != 2*time.Second || mi.Jitter {
		t.Fatalf("movie-info policy: got=%+v", mi)
	}
	rv := cfg.Upstreams.Reviews.Retry.Policy()
	if rv.MaxAttempts != 4 || rv.Backoff != upstream.BackoffExponential || rv.BaseDelay != time.Second || !rv.Jitter {
		t.Fatalf("reviews policy: got=%+v", rv)
	}

	info := Defaults(RoleMovieInfo)
	if info.HTTP.Addr != ":8080" || !info.NeedsStore() {
		t.Fatalf("movieinfo defaults: got=%+v", info.HTTP)
	}
	if Defaults(RoleReviews).HTTP.Addr != ":8081" {
		t.Fatalf("reviews addr: want=:8081")
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, `
logMode: development
http:
  addr: ":9000"
upstreams:
  movieInfo:
    url: http://info.internal/api/v1/movieinfos
    retry:
      maxAttempts: 3
      baseDelay: 250ms
  reviews:
    url: http://reviews.internal/api/v1/reviews
`)
	t.Setenv(PathEnv, path)
	t.Setenv("REVIEWS_MAX_ATTEMPTS", "6")
	t.Setenv("PORT", "7000")

	cfg, err := Load(RoleMovie)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogMode != "development" {
		t.Fatalf("logMode: want=development got=%s", cfg.LogMode)
	}
	if cfg.HTTP.Addr != ":7000" {
		t.Fatalf("addr: env PORT should win, got=%s", cfg.HTTP.Addr)
	}
	mi := cfg.Upstreams.MovieInfo
	if mi.URL != "http://info.internal/api/v1/movieinfos" || mi.Retry.MaxAttempts != 3 || mi.Retry.BaseDelay != 250*time.Millisecond {
		t.Fatalf("movie-info: got=%+v", mi)
	}
	if mi.Retry.Backoff != "fixed" {
		t.Fatalf("keys absent from the file keep defaults, got backoff=%q", mi.Retry.Backoff)
	}
	if cfg.Upstreams.Reviews.Retry.MaxAttempts != 6 {
		t.Fatalf("reviews attempts: want=6 got=%d", cfg.Upstreams.Reviews.Retry.MaxAttempts)
	}
	if cfg.Role != RoleMovie {
		t.Fatalf("role: want=movie got=%s", cfg.Role)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		role Role
		env  map[string]string
		want string
	}{
		{"zero attempts", RoleMovie, map[string]string{"MOVIE_INFO_MAX_ATTEMPTS": "0"}, "max attempts"},
		{"relative url", RoleMovie, map[string]string{"REVIEWS_URL": "/api/v1/reviews"}, "upstreams.reviews"},
		{"bad driver", RoleReviews, map[string]string{"STORE_DRIVER": "mongo", "STORE_DSN": "x"}, "store.driver"},
		{"missing explicit file", RoleMovie, map[string]string{PathEnv: "/does/not/exist.yaml"}, "exist.yaml"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(tc.role)
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("want error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestStoreDSN(t *testing.T) {
	clearEnv(t)
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_USER", "movies")
	t.Setenv("POSTGRES_PASSWORD", "secret")

	cfg, err := Load(RoleReviews)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := "postgres://movies:secret@db:5432/reviews?sslmode=disable"; cfg.Store.DSN != want {
		t.Fatalf("dsn: want=%s got=%s", want, cfg.Store.DSN)
	}

	clearEnv(t)
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("STORE_DSN", "file:movies.db")
	cfg, err = Load(RoleMovieInfo)
	if err != nil {
		t.Fatalf("Load sqlite: %v", err)
	}
	if cfg.Store.Driver != "sqlite" || cfg.Store.DSN != "file:movies.db" {
		t.Fatalf("store: got=%+v", cfg.Store)
	}
}

func TestParseRole(t *testing.T) {
	for in, want := range map[string]Role{"movie": RoleMovie, "Movies": RoleMovie, "movie-info": RoleMovieInfo, "reviews": RoleReviews} {
		got, err := ParseRole(in)
		if err != nil || got != want {
			t.Fatalf("ParseRole(%q): want=%s got=%s err=%v", in, want, got, err)
		}
	}
	if _, err := ParseRole("gateway"); err == nil {
		t.Fatalf("want error for unknown role")
	}
}
