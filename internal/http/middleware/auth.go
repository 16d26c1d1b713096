package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenVerifier checks a bearer token; Enabled false means no check at all.
type TokenVerifier interface {
	Enabled() bool
	Verify(token string) error
}

// AdminAuth guards admin routes with a bearer token when auth is configured.
func AdminAuth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if v == nil || !v.Enabled() {
			c.Next()
			return
		}

		header := strings.TrimSpace(c.GetHeader("Authorization"))
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			token = ""
		}
		if err := v.Verify(token); err != nil {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":      "unauthorized",
				"code":       "unauthorized",
				"request_id": GetRequestID(c),
			})
			return
		}
		c.Next()
	}
}
