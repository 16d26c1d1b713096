package handlers

import (
	"context"
	"net/http"
	"time"

	"dng-api/internal/http/middleware"
	"dng-api/internal/utils"

	"github.com/gin-gonic/gin"
)

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// DBCheck pings the pool so operators can tell a dead datastore from a dead process.
func (h *Handler) DBCheck(c *gin.Context) {
	if h.DB == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "database not connected"})
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.DB.PingContext(ctx); err != nil {
		utils.LogFailure(h.Log, middleware.GetRequestID(c), "system", "db_check", "ping failed", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "database unreachable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
