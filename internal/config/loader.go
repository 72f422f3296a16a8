package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/movies-backend/internal/platform/envutil"
)

const (
	PathEnv    = "MOVIES_CONFIG_PATH"
	DefaultDir = "config"
)

// Load builds the configuration for role: defaults, then the YAML file, then
// environment overrides. The default file path is optional; an explicit
// MOVIES_CONFIG_PATH must exist.
func Load(role Role) (*Config, error) {
	cfg := Defaults(role)

	path := strings.TrimSpace(os.Getenv(PathEnv))
	explicit := path != ""
	if !explicit {
		path = filepath.Join(DefaultDir, string(role)+".yaml")
	}
	if err := LoadFile(cfg, path); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	ApplyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadFile overlays the YAML document at path onto cfg. Keys absent from the
// file keep their current values.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read configuration file %s: %w", path, err)
	}
	role := cfg.Role
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse configuration file %s: %w", path, err)
	}
	cfg.Role = role
	return nil
}

func ApplyEnv(cfg *Config) {
	cfg.LogMode = envutil.String("LOG_MODE", cfg.LogMode)

	if port := envutil.String("PORT", ""); port != "" {
		cfg.HTTP.Addr = ":" + strings.TrimPrefix(port, ":")
	}
	cfg.HTTP.Addr = envutil.String("HTTP_ADDR", cfg.HTTP.Addr)
	if origins := envutil.String("CORS_ALLOWED_ORIGINS", ""); origins != "" {
		cfg.HTTP.AllowedOrigins = splitList(origins)
	}

	mi := &cfg.Upstreams.MovieInfo
	mi.URL = envutil.String("MOVIE_INFO_URL", mi.URL)
	mi.Timeout = envutil.Duration("MOVIE_INFO_TIMEOUT", mi.Timeout)
	mi.Retry.MaxAttempts = envutil.Int("MOVIE_INFO_MAX_ATTEMPTS", mi.Retry.MaxAttempts)
	mi.Retry.BaseDelay = envutil.Duration("MOVIE_INFO_RETRY_DELAY", mi.Retry.BaseDelay)

	rv := &cfg.Upstreams.Reviews
	rv.URL = envutil.String("REVIEWS_URL", rv.URL)
	rv.Timeout = envutil.Duration("REVIEWS_TIMEOUT", rv.Timeout)
	rv.Retry.MaxAttempts = envutil.Int("REVIEWS_MAX_ATTEMPTS", rv.Retry.MaxAttempts)
	rv.Retry.BaseDelay = envutil.Duration("REVIEWS_RETRY_DELAY", rv.Retry.BaseDelay)

	cfg.Store.Driver = envutil.String("STORE_DRIVER", cfg.Store.Driver)
	cfg.Store.DSN = envutil.String("STORE_DSN", cfg.Store.DSN)
	if cfg.Store.DSN == "" && isPostgres(cfg.Store.Driver) {
		cfg.Store.DSN = postgresDSNFromEnv(cfg.Role)
	}

	cfg.Redis.Addr = envutil.String("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = envutil.String("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = envutil.Int("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.Channel = envutil.String("REDIS_CHANNEL", cfg.Redis.Channel)

	cfg.Stream.Heartbeat = envutil.Duration("STREAM_HEARTBEAT", cfg.Stream.Heartbeat)
	cfg.Metrics.Addr = envutil.String("METRICS_ADDR", cfg.Metrics.Addr)
}

func postgresDSNFromEnv(role Role) string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		envutil.String("POSTGRES_USER", "postgres"),
		envutil.String("POSTGRES_PASSWORD", ""),
		envutil.String("POSTGRES_HOST", "localhost"),
		envutil.String("POSTGRES_PORT", "5432"),
		envutil.String("POSTGRES_NAME", string(role)),
		envutil.String("POSTGRES_SSLMODE", "disable"),
	)
}

func isPostgres(driver string) bool {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "postgres", "postgresql":
		return true
	}
	return false
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
