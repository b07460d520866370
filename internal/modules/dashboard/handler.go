package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shesafe/internal/middleware"
	"shesafe/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	protected.GET("/dashboard", h.Get)
}

// Get handles GET /api/v1/dashboard
// @Summary		Role-based landing data
// @Tags		Dashboard
// @Security	BearerAuth
// @Success		200	{object}	View
// @Router		/dashboard [GET]
func (h *Handler) Get(c *gin.Context) {
	view, err := h.service.Get(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, view)
}
