package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	types "github.com/yungbote/movies-backend/internal/domain"
	"github.com/yungbote/movies-backend/internal/http/response"
	"github.com/yungbote/movies-backend/internal/platform/logger"
	"github.com/yungbote/movies-backend/internal/realtime"
	"github.com/yungbote/movies-backend/internal/services"
)

type ReviewHandler struct {
	log     *logger.Logger
	reviews services.ReviewService
	hub     *realtime.Hub[*types.Review]
}

func NewReviewHandler(log *logger.Logger, reviews services.ReviewService, hub *realtime.Hub[*types.Review]) *ReviewHandler {
	return &ReviewHandler{
		log:     log.With("handler", "ReviewHandler"),
		reviews: reviews,
		hub:     hub,
	}
}

// POST /api/v1/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	var in services.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	r, err := h.reviews.Create(c.Request.Context(), &in)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondCreated(c, r)
}

// GET /api/v1/reviews?movieInfoId=
func (h *ReviewHandler) List(c *gin.Context) {
	rows, err := h.reviews.List(c.Request.Context(), c.Query("movieInfoId"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/v1/reviews/search?movieInfoId=
func (h *ReviewHandler) Search(c *gin.Context) {
	rows, err := h.reviews.Search(c.Request.Context(), c.Query("movieInfoId"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/v1/reviews/:id
func (h *ReviewHandler) Get(c *gin.Context) {
	r, err := h.reviews.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, r)
}

// PUT /api/v1/reviews/:id
func (h *ReviewHandler) Update(c *gin.Context) {
	var in services.ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	r, err := h.reviews.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, r)
}

// DELETE /api/v1/reviews/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	if err := h.reviews.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondMessage(c, http.StatusOK, "Review deleted successfully")
}

// GET /api/v1/reviews/stream
func (h *ReviewHandler) Stream(c *gin.Context) {
	err := realtime.ServeNDJSON(c.Request.Context(), c.Writer, h.hub, h.log)
	if errors.Is(err, realtime.ErrStreamingUnsupported) {
		response.RespondError(c, http.StatusInternalServerError, "streaming_unsupported", err)
		return
	}
	if err != nil {
		h.log.Debug("review stream ended", "error", err)
	}
}
