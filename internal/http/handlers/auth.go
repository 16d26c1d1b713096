package handlers

import (
	"net/http"

	"dng-api/internal/http/middleware"
	"dng-api/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/admin/login
func (h *Handler) AdminLogin(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	token, expires, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		h.RespondDomainError(c, "auth", "login", err)
		return
	}
	utils.LogEvent(h.Log, middleware.GetRequestID(c), "auth", "login", "admin signed in",
		zap.String("username", req.Username))

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expires.UTC(),
	})
}
