package admin

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

// RegisterRoutes expects admin to be behind JWTAuth and AdminOnly.
func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	// vendor moderation
	admin.GET("/vendors", h.ListVendors)
	admin.POST("/vendors/:id/approve", h.Approve)
	admin.POST("/vendors/:id/reject", h.Reject)
	admin.POST("/vendors/:id/disable", h.Disable)

	admin.GET("/stats", h.Stats)
	admin.GET("/users", h.ListUsers)
	admin.GET("/bookings", h.ListBookings)
}

// ListVendors handles GET /api/v1/admin/vendors?state=pending|active|disabled
// @Summary		Moderation queue
// @Tags		Admin
// @Security	BearerAuth
// @Param		state	query	string	false	"pending, active or disabled"
// @Success		200	{object}	map[string]interface{}
// @Failure		403	{object}	map[string]interface{}
// @Router		/admin/vendors [GET]
func (h *Handler) ListVendors(c *gin.Context) {
	page := response.ParsePage(c)
	rows, total, err := h.service.ListVendors(c.Request.Context(), middleware.ActorFrom(c), c.Query("state"), page.Limit, page.Offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"vendors":    rows,
		"pagination": page.Meta(total),
	})
}

// Approve handles POST /api/v1/admin/vendors/:id/approve
// @Summary		Approve a vendor
// @Tags		Admin
// @Security	BearerAuth
// @Param		id	path	int	true	"Vendor ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/admin/vendors/{id}/approve [POST]
func (h *Handler) Approve(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vendor ID")
		return
	}

	res, err := h.service.Approve(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Reject handles POST /api/v1/admin/vendors/:id/reject
// @Summary		Reject and remove a vendor
// @Tags		Admin
// @Security	BearerAuth
// @Param		id	path	int	true	"Vendor ID"
// @Success		200	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/admin/vendors/{id}/reject [POST]
func (h *Handler) Reject(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vendor ID")
		return
	}

	if err := h.service.Reject(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Vendor rejected", "vendor_id": id})
}

func (h *Handler) Disable(c *gin.Context) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid vendor ID")
		return
	}

	res, err := h.service.Disable(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Stats handles GET /api/v1/admin/stats
// @Summary		Platform usage
// @Tags		Admin
// @Security	BearerAuth
// @Success		200	{object}	StatsResponse
// @Router		/admin/stats [GET]
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) ListUsers(c *gin.Context) {
	page := response.ParsePage(c)
	users, total, err := h.service.ListUsers(c.Request.Context(), middleware.ActorFrom(c), c.Query("role"), page.Limit, page.Offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"users":      users,
		"pagination": page.Meta(total),
	})
}

func (h *Handler) ListBookings(c *gin.Context) {
	page := response.ParsePage(c)
	out, total, err := h.service.ListBookings(c.Request.Context(), middleware.ActorFrom(c), c.Query("status"), page.Limit, page.Offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"bookings":   out,
		"pagination": page.Meta(total),
	})
}
