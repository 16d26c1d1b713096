package handlers

import (
	"net/http"

	"dng-api/internal/domain/models"
	"dng-api/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type createBookingRequest struct {
	FullName    Stringish `json:"full_name"`
	Phone       Stringish `json:"phone"`
	Destination Stringish `json:"destination"`
	PickupPoint Stringish `json:"pickup_point"`
	BusType     Stringish `json:"bus_type"`
	Price       Stringish `json:"price"`
	PayerName   Stringish `json:"payer_name"`
}

// POST /api/bookings
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := h.Bookings
	svc.RequestID = middleware.GetRequestID(c)
	created, err := svc.Create(c.Request.Context(), models.CreateBookingInput{
		FullName:    req.FullName.String(),
		Phone:       req.Phone.String(),
		Destination: req.Destination.String(),
		PickupPoint: req.PickupPoint.String(),
		BusType:     req.BusType.String(),
		Price:       req.Price.String(),
		PayerName:   req.PayerName.String(),
	})
	if err != nil {
		h.RespondDomainError(c, "booking", "create", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GET /api/bookings/:code
func (h *Handler) GetBookingByCode(c *gin.Context) {
	svc := h.Bookings
	svc.RequestID = middleware.GetRequestID(c)
	b, err := svc.FetchByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.RespondDomainError(c, "booking", "fetch", err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GET /api/bookings/:code/receipt
func (h *Handler) GetBookingReceipt(c *gin.Context) {
	svc := h.Docs
	svc.RequestID = middleware.GetRequestID(c)
	pdfBytes, filename, err := svc.GenerateReceipt(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.RespondDomainError(c, "docs", "receipt", err)
		return
	}

	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
