package booking

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"shesafe/internal/access"
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

// RegisterRoutes expects protected to be behind JWTAuth.
func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	userOnly := middleware.RequireRole(domain.RoleUser)
	vendorOnly := middleware.RequireRole(domain.RoleVendor)

	bookings := protected.Group("/bookings")
	{
		bookings.POST("", userOnly, h.CreateBooking)
		bookings.GET("", userOnly, h.ListMine)
		bookings.GET("/:id", h.GetBooking)
		bookings.GET("/:id/qr", h.ReceiptQR)
		bookings.POST("/:id/complete", vendorOnly, h.Complete)
		bookings.POST("/:id/confirm", vendorOnly, h.Confirm)
		bookings.POST("/:id/cancel", middleware.RequireRole(domain.RoleUser, domain.RoleVendor), h.Cancel)
	}

	protected.GET("/vendor/bookings", vendorOnly, h.ListForVendor)
}

// CreateBooking handles POST /api/v1/bookings
// @Summary		Book a visit
// @Tags		Bookings
// @Security	BearerAuth
// @Param		request	body	CreateBookingRequest	true	"vendor_id, visit_date (YYYY-MM-DDTHH:MM), payment_mode, amount"
// @Success		201	{object}	map[string]interface{}
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/bookings [POST]
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	b, err := h.service.Book(c.Request.Context(), middleware.ActorFrom(c), req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) ListMine(c *gin.Context) {
	page := response.ParsePage(c)
	out, err := h.service.ListMine(c.Request.Context(), middleware.ActorFrom(c), page.Limit, page.Offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": out})
}

func (h *Handler) ListForVendor(c *gin.Context) {
	page := response.ParsePage(c)
	out, err := h.service.ListForVendor(c.Request.Context(), middleware.ActorFrom(c), page.Limit, page.Offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": out})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	d, err := h.service.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": d})
}

// ReceiptQR serves the booking receipt as image/png.
func (h *Handler) ReceiptQR(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	png, err := h.service.ReceiptQR(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

func (h *Handler) Complete(c *gin.Context) { h.changeStatus(c, h.service.Complete) }

func (h *Handler) Confirm(c *gin.Context) { h.changeStatus(c, h.service.Confirm) }

func (h *Handler) Cancel(c *gin.Context) { h.changeStatus(c, h.service.Cancel) }

type statusChange func(ctx context.Context, actor access.Actor, id int64) (*domain.Booking, error)

func (h *Handler) changeStatus(c *gin.Context, fn statusChange) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	b, err := fn(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": gin.H{"id": b.ID, "status": b.Status}})
}

func bookingID(c *gin.Context) (int64, bool) {
	id, ok := response.ParamID(c, "id")
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
	}
	return id, ok
}
