package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/yungbote/movies-backend/internal/upstream"
)

// Role selects which service a process runs and therefore which defaults apply.
type Role string

const (
	RoleMovie     Role = "movie"
	RoleMovieInfo Role = "movieinfo"
	RoleReviews   Role = "reviews"
)

func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToLower(strings.TrimSpace(s))); r {
	case RoleMovie, RoleMovieInfo, RoleReviews:
		return r, nil
	case "movies":
		return RoleMovie, nil
	case "movie-info", "movieinfos":
		return RoleMovieInfo, nil
	case "review":
		return RoleReviews, nil
	default:
		return "", fmt.Errorf("unknown service role %q", s)
	}
}

type Config struct {
	Role      Role            `yaml:"-"`
	LogMode   string          `yaml:"logMode"`
	HTTP      HTTPConfig      `yaml:"http"`
	Upstreams UpstreamsConfig `yaml:"upstreams"`
	Store     StoreConfig     `yaml:"store"`
	Redis     RedisConfig     `yaml:"redis"`
	Stream    StreamConfig    `yaml:"stream"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type HTTPConfig struct {
	Addr           string        `yaml:"addr"`
	AllowedOrigins []string      `yaml:"allowedOrigins"`
	ReadTimeout    time.Duration `yaml:"readTimeout"`
	// ShutdownTimeout bounds graceful drain after a termination signal.
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

type UpstreamsConfig struct {
	MovieInfo UpstreamConfig `yaml:"movieInfo"`
	Reviews   UpstreamConfig `yaml:"reviews"`
}

type UpstreamConfig struct {
	URL string `yaml:"url"`
	// Timeout applies to each attempt, not to the whole retry loop.
	Timeout time.Duration `yaml:"timeout"`
	Retry   RetryConfig   `yaml:"retry"`
}

type RetryConfig struct {
	MaxAttempts int           `yaml:"maxAttempts"`
	Backoff     string        `yaml:"backoff"`
	BaseDelay   time.Duration `yaml:"baseDelay"`
	MaxDelay    time.Duration `yaml:"maxDelay"`
	Jitter      bool          `yaml:"jitter"`
}

func (r RetryConfig) Policy() upstream.RetryPolicy {
	return upstream.RetryPolicy{
		MaxAttempts: r.MaxAttempts,
		Backoff:     upstream.BackoffKind(strings.ToLower(strings.TrimSpace(r.Backoff))),
		BaseDelay:   r.BaseDelay,
		MaxDelay:    r.MaxDelay,
		Jitter:      r.Jitter,
	}
}

type StoreConfig struct {
	Driver        string        `yaml:"driver"`
	DSN           string        `yaml:"dsn"`
	MaxOpenConns  int           `yaml:"maxOpenConns"`
	MaxIdleConns  int           `yaml:"maxIdleConns"`
	SlowThreshold time.Duration `yaml:"slowThreshold"`
}

// RedisConfig enables the cross-instance relay when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

type StreamConfig struct {
	Heartbeat        time.Duration `yaml:"heartbeat"`
	SubscriberBuffer int           `yaml:"subscriberBuffer"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Defaults returns the configuration a role runs with when nothing is overridden.
func Defaults(role Role) *Config {
	cfg := &Config{
		Role:    role,
		LogMode: "production",
		HTTP: HTTPConfig{
			AllowedOrigins:  []string{"*"},
			ReadTimeout:     15 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Upstreams: UpstreamsConfig{
			MovieInfo: UpstreamConfig{
				URL:     "http://localhost:8080/api/v1/movieinfos",
				Timeout: 10 * time.Second,
				Retry: RetryConfig{
					MaxAttempts: 4,
					Backoff:     string(upstream.BackoffFixed),
					BaseDelay:   2 * time.Second,
				},
			},
			Reviews: UpstreamConfig{
				URL:     "http://localhost:8081/api/v1/reviews",
				Timeout: 10 * time.Second,
				Retry: RetryConfig{
					MaxAttempts: 4,
					Backoff:     string(upstream.BackoffExponential),
					BaseDelay:   time.Second,
					MaxDelay:    30 * time.Second,
					Jitter:      true,
				},
			},
		},
		Store: StoreConfig{
			Driver:        "postgres",
			SlowThreshold: time.Second,
		},
		Stream: StreamConfig{
			Heartbeat:        15 * time.Second,
			SubscriberBuffer: 1,
		},
	}
	switch role {
	case RoleMovieInfo:
		cfg.HTTP.Addr = ":8080"
		cfg.Redis.Channel = "movies.movieinfo.created"
	case RoleReviews:
		cfg.HTTP.Addr = ":8081"
		cfg.Redis.Channel = "movies.review.created"
	default:
		cfg.HTTP.Addr = ":8082"
	}
	return cfg
}

// NeedsStore reports whether the role owns a database.
func (c *Config) NeedsStore() bool {
	return c.Role == RoleMovieInfo || c.Role == RoleReviews
}

func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("configuration cannot be nil")
	}
	if _, err := ParseRole(string(c.Role)); err != nil {
		return err
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return fmt.Errorf("http.addr is required")
	}
	if c.Stream.SubscriberBuffer < 1 {
		return fmt.Errorf("stream.subscriberBuffer must be >= 1, got %d", c.Stream.SubscriberBuffer)
	}

	if c.Role == RoleMovie {
		for name, u := range map[string]UpstreamConfig{
			"upstreams.movieInfo": c.Upstreams.MovieInfo,
			"upstreams.reviews":   c.Upstreams.Reviews,
		} {
			if err := validateUpstream(u); err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
		}
	}

	if c.NeedsStore() {
		switch strings.ToLower(strings.TrimSpace(c.Store.Driver)) {
		case "postgres", "postgresql", "sqlite", "sqlite3":
		default:
			return fmt.Errorf("store.driver %q is not supported", c.Store.Driver)
		}
		if strings.TrimSpace(c.Store.DSN) == "" {
			return fmt.Errorf("store.dsn is required")
		}
	}
	return nil
}

func validateUpstream(u UpstreamConfig) error {
	parsed, err := url.Parse(strings.TrimSpace(u.URL))
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("url %q must be absolute", u.URL)
	}
	if u.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return u.Retry.Policy().Validate()
}
