package handlers

import (
	"database/sql"

	"dng-api/internal/services"

	"go.uber.org/zap"
)

// Handler carries the services every route needs. Services are values; each
// request works on a copy tagged with its request id.
type Handler struct {
	DB       *sql.DB
	Bookings services.BookingService
	Admin    services.AdminService
	Docs     services.DocsService
	Auth     services.AuthService
	Log      *zap.Logger
}
