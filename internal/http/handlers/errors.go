package handlers

import (
	"errors"
	"net/http"

	"dng-api/internal/domain"
	"dng-api/internal/http/middleware"
	"dng-api/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error:     message,
		Code:      code,
		RequestID: middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Only messages we
// author reach the client; datastore text stays in the log.
func (h *Handler) RespondDomainError(c *gin.Context, module, action string, err error) {
	_ = c.Error(err)
	reqID := middleware.GetRequestID(c)

	switch {
	case domain.IsValidation(err):
		utils.LogEvent(h.Log, reqID, module, action, "rejected input", zap.String("reason", err.Error()))
		respondError(c, http.StatusBadRequest, "validation_error", validationMessage(err))
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", "Not found")
	case domain.IsUnauthorized(err):
		respondError(c, http.StatusUnauthorized, "unauthorized", "Unauthorized")
	default:
		utils.LogFailure(h.Log, reqID, module, action, "request failed", err)
		respondError(c, http.StatusInternalServerError, "internal_error", "Server error")
	}
}

func validationMessage(err error) string {
	var ve domain.ValidationError
	if errors.As(err, &ve) && ve.Msg != "" {
		return ve.Msg
	}
	return "Invalid request"
}
