package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/movies-backend/internal/domain"
	"github.com/yungbote/movies-backend/internal/http/response"
	"github.com/yungbote/movies-backend/internal/platform/logger"
	"github.com/yungbote/movies-backend/internal/realtime"
	"github.com/yungbote/movies-backend/internal/services"
)

type MovieInfoHandler struct {
	log       *logger.Logger
	infos     services.MovieInfoService
	hub       *realtime.Hub[*types.MovieInfo]
	heartbeat time.Duration
}

func NewMovieInfoHandler(log *logger.Logger, infos services.MovieInfoService, hub *realtime.Hub[*types.MovieInfo], heartbeat time.Duration) *MovieInfoHandler {
	return &MovieInfoHandler{
		log:       log.With("handler", "MovieInfoHandler"),
		infos:     infos,
		hub:       hub,
		heartbeat: heartbeat,
	}
}

// POST /api/v1/movieinfos
func (h *MovieInfoHandler) Create(c *gin.Context) {
	var in services.MovieInfoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	mi, err := h.infos.Create(c.Request.Context(), &in)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, mi)
}

// GET /api/v1/movieinfos
func (h *MovieInfoHandler) List(c *gin.Context) {
	rows, err := h.infos.List(c.Request.Context())
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/v1/movieinfos/:id
func (h *MovieInfoHandler) Get(c *gin.Context) {
	mi, err := h.infos.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, mi)
}

// PUT /api/v1/movieinfos/:id
func (h *MovieInfoHandler) Update(c *gin.Context) {
	var in services.MovieInfoInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	mi, err := h.infos.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, mi)
}

// DELETE /api/v1/movieinfos/:id
func (h *MovieInfoHandler) Delete(c *gin.Context) {
	if err := h.infos.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/v1/movieinfos/stream
func (h *MovieInfoHandler) Stream(c *gin.Context) {
	err := realtime.ServeSSE(c.Request.Context(), c.Writer, h.hub, h.log, h.heartbeat)
	if errors.Is(err, realtime.ErrStreamingUnsupported) {
		response.RespondError(c, http.StatusInternalServerError, "streaming_unsupported", err)
		return
	}
	if err != nil {
		h.log.Debug("movie info stream ended", "error", err)
	}
}
