package handlers

import (
	"net/http"

	"dng-api/internal/http/middleware"
	"dng-api/internal/repositories"
	"dng-api/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/admin/bookings?q&destination&status&page&limit&sort&dir
func (h *Handler) ListBookings(c *gin.Context) {
	params := repositories.NewBookingListParams(
		c.Query("q"),
		c.Query("destination"),
		c.Query("status"),
		c.Query("sort"),
		c.Query("dir"),
		c.Query("page"),
		c.Query("limit"),
	)

	svc := h.Admin
	svc.RequestID = middleware.GetRequestID(c)
	page, err := svc.List(c.Request.Context(), params)
	if err != nil {
		h.RespondDomainError(c, "admin", "list", err)
		return
	}
	c.JSON(http.StatusOK, page)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// PATCH /api/admin/bookings/:id/status
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	id, err := services.ParseID(c.Param("id"))
	if err != nil {
		h.RespondDomainError(c, "admin", "update_status", err)
		return
	}
	var req updateStatusRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := h.Bookings
	svc.RequestID = middleware.GetRequestID(c)
	if err := svc.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		h.RespondDomainError(c, "admin", "update_status", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DELETE /api/admin/bookings/:id
func (h *Handler) DeleteBooking(c *gin.Context) {
	id, err := services.ParseID(c.Param("id"))
	if err != nil {
		h.RespondDomainError(c, "admin", "delete", err)
		return
	}

	svc := h.Bookings
	svc.RequestID = middleware.GetRequestID(c)
	if err := svc.Delete(c.Request.Context(), id); err != nil {
		h.RespondDomainError(c, "admin", "delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// GET /api/admin/export?q&destination&status
func (h *Handler) ExportBookings(c *gin.Context) {
	filter := repositories.NewBookingFilter(c.Query("q"), c.Query("destination"), c.Query("status"))

	svc := h.Admin
	svc.RequestID = middleware.GetRequestID(c)
	out, err := svc.Export(c.Request.Context(), filter)
	if err != nil {
		h.RespondDomainError(c, "admin", "export", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="bookings.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", out)
}
