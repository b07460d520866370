package feedback

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shesafe/internal/domain"
	"shesafe/internal/middleware"
	"shesafe/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/vendors/:id/feedback", h.ListForVendor)
}

// RegisterRoutes expects protected to be behind JWTAuth.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.POST("/bookings/:id/feedback", middleware.RequireRole(domain.RoleUser), h.Submit)
}

// Submit handles POST /api/v1/bookings/:id/feedback
// @Summary		Rate a completed visit
// @Tags		Feedback
// @Security	BearerAuth
// @Param		request	body	SubmitRequest	true	"hygiene, safety, staff_behavior (1-5), comments"
// @Success		201	{object}	map[string]interface{}
// @Failure		409	{object}	map[string]interface{}
// @Router		/bookings/{id}/feedback [POST]
func (h *Handler) Submit(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	f, err := h.service.Submit(c.Request.Context(), middleware.ActorFrom(c), id, req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"feedback": f})
}

func (h *Handler) ListForVendor(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vendor ID")
		return
	}

	page := response.ParsePage(c)
	out, err := h.service.ListForVendor(c.Request.Context(), id, page.Limit, page.Offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"feedback": out})
}
