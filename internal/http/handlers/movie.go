package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/movies-backend/internal/domain"
	"github.com/yungbote/movies-backend/internal/http/response"
	"github.com/yungbote/movies-backend/internal/platform/httpx"
	"github.com/yungbote/movies-backend/internal/platform/logger"
	"github.com/yungbote/movies-backend/internal/services"
)

type MovieHandler struct {
	log    *logger.Logger
	movies services.MovieService
}

func NewMovieHandler(log *logger.Logger, movies services.MovieService) *MovieHandler {
	return &MovieHandler{
		log:    log.With("handler", "MovieHandler"),
		movies: movies,
	}
}

// GET /api/v1/movies/:id
func (h *MovieHandler) GetMovie(c *gin.Context) {
	movie, err := h.movies.GetMovie(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, movie)
}

// GET /api/v1/movies/stream
//
// Relays the movie-info feed as SSE. Headers are committed before the
// upstream answers, so a later failure is sent as an "error" event carrying
// the usual error envelope.
func (h *MovieHandler) Stream(c *gin.Context) {
	w := c.Writer
	hdr := w.Header()
	hdr.Set("Content-Type", "text/event-stream")
	hdr.Set("Cache-Control", "no-cache")
	hdr.Set("Connection", "keep-alive")
	hdr.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	w.Flush()

	ctx := c.Request.Context()
	err := h.movies.StreamMovieInfos(ctx, func(mi *types.MovieInfo) error {
		raw, err := json.Marshal(mi)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "event: message\ndata: %s\n\n", raw); err != nil {
			return err
		}
		w.Flush()
		return nil
	})
	if err == nil || ctx.Err() != nil {
		return
	}

	h.log.Warn("movie info relay failed", "error", err)
	raw, _ := json.Marshal(response.ErrorEnvelope{Error: response.APIError{
		Message: httpx.MessageOf(err),
		Code:    httpx.CodeOf(err, "internal_error"),
	}})
	fmt.Fprintf(w, "event: error\ndata: %s\n\n", raw)
	w.Flush()
}
