package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/movies-backend/internal/http/handlers"
	httpMW "github.com/yungbote/movies-backend/internal/http/middleware"
	"github.com/yungbote/movies-backend/internal/observability"
	"github.com/yungbote/movies-backend/internal/platform/logger"
)

type RouterConfig struct {
	ServiceName    string
	Log            *logger.Logger
	Metrics        *observability.Metrics
	AllowedOrigins []string

	HealthHandler    *httpH.HealthHandler
	MovieInfoHandler *httpH.MovieInfoHandler
	ReviewHandler    *httpH.ReviewHandler
	MovieHandler     *httpH.MovieHandler
}

// NewRouter mounts only the handlers that are set, so each service binary
// exposes its own routes from the same router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.TraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins...))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}

	v1 := r.Group("/api/v1")
	{
		// Movie info
		if cfg.MovieInfoHandler != nil {
			v1.POST("/movieinfos", cfg.MovieInfoHandler.Create)
			v1.GET("/movieinfos", cfg.MovieInfoHandler.List)
			v1.GET("/movieinfos/stream", cfg.MovieInfoHandler.Stream)
			v1.GET("/movieinfos/:id", cfg.MovieInfoHandler.Get)
			v1.PUT("/movieinfos/:id", cfg.MovieInfoHandler.Update)
			v1.DELETE("/movieinfos/:id", cfg.MovieInfoHandler.Delete)
		}

		// Reviews
		if cfg.ReviewHandler != nil {
			v1.POST("/reviews", cfg.ReviewHandler.Create)
			v1.GET("/reviews", cfg.ReviewHandler.List)
			v1.GET("/reviews/search", cfg.ReviewHandler.Search)
			v1.GET("/reviews/stream", cfg.ReviewHandler.Stream)
			v1.GET("/reviews/:id", cfg.ReviewHandler.Get)
			v1.PUT("/reviews/:id", cfg.ReviewHandler.Update)
			v1.DELETE("/reviews/:id", cfg.ReviewHandler.Delete)
		}

		// Movies (aggregate)
		if cfg.MovieHandler != nil {
			v1.GET("/movies/stream", cfg.MovieHandler.Stream)
			v1.GET("/movies/:id", cfg.MovieHandler.GetMovie)
		}
	}

	return r
}
