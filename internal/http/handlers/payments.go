package handlers

import (
	"net/http"

	"dng-api/internal/domain/models"
	"dng-api/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type confirmPaymentRequest struct {
	BookingNumber  Stringish `json:"booking_number"`
	TransactionRef Stringish `json:"transaction_ref"`
	PayerName      Stringish `json:"payer_name"`
}

// POST /api/payments/confirm
func (h *Handler) ConfirmPayment(c *gin.Context) {
	var req confirmPaymentRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := h.Bookings
	svc.RequestID = middleware.GetRequestID(c)
	status, err := svc.ConfirmPayment(c.Request.Context(), models.PaymentConfirmation{
		BookingNumber:  req.BookingNumber.String(),
		TransactionRef: req.TransactionRef.String(),
		PayerName:      req.PayerName.String(),
	})
	if err != nil {
		h.RespondDomainError(c, "payment", "confirm", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "status": status})
}
