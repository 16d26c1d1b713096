package api

import (
	stdhttp "net/http"

	intconfig "dng-api/internal/config"
	h "dng-api/internal/http/handlers"
	"dng-api/internal/http/middleware"
	"dng-api/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(env intconfig.Env, hd *h.Handler, log *zap.Logger) *gin.Engine {
	log = utils.OrNop(log)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(log), gin.Recovery(), middleware.CORS(env.CORSOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Warn("failed to set trusted proxies", zap.Error(err))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", hd.DBCheck)

		// Public booking flow
		bookings := api.Group("/bookings")
		bookings.POST("", hd.CreateBooking)
		bookings.GET("/:code", hd.GetBookingByCode)
		bookings.GET("/:code/receipt", hd.GetBookingReceipt)

		payments := api.Group("/payments")
		payments.POST("/confirm", hd.ConfirmPayment)

		// Admin
		admin := api.Group("/admin")
		admin.POST("/login", hd.AdminLogin)

		guarded := admin.Group("", middleware.AdminAuth(hd.Auth))
		guarded.GET("/bookings", hd.ListBookings)
		guarded.PATCH("/bookings/:id/status", hd.UpdateBookingStatus)
		guarded.DELETE("/bookings/:id", hd.DeleteBooking)
		guarded.GET("/export", hd.ExportBookings)
	}

	return r
}
