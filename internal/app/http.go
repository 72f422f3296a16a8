package app

import (
	"github.com/yungbote/movies-backend/internal/config"
	apphttp "github.com/yungbote/movies-backend/internal/http"
	"github.com/yungbote/movies-backend/internal/observability"
	"github.com/yungbote/movies-backend/internal/platform/logger"
)

func wireRouter(serviceName string, log *logger.Logger, cfg *config.Config, m *observability.Metrics, handlers Handlers) apphttp.RouterConfig {
	return apphttp.RouterConfig{
		ServiceName:      serviceName,
		Log:              log,
		Metrics:          m,
		AllowedOrigins:   cfg.HTTP.AllowedOrigins,
		HealthHandler:    handlers.Health,
		MovieInfoHandler: handlers.MovieInfo,
		ReviewHandler:    handlers.Review,
		MovieHandler:     handlers.Movie,
	}
}
