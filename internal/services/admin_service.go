package services

import (
	"bytes"
	"context"
	"strings"

	"dng-api/internal/domain"
	"dng-api/internal/domain/models"
	"dng-api/internal/repositories"
	"dng-api/internal/utils"

	"go.uber.org/zap"
)

// ExportHeader is the fixed CSV column order.
var ExportHeader = []string{
	"BookingNumber", "CreatedAt", "FullName", "Phone", "PayerName",
	"Destination", "PickupPoint", "BusType", "Price", "Status", "Source",
}

// BookingLister is the read side the admin screens use.
type BookingLister interface {
	ListPage(ctx context.Context, p repositories.BookingListParams) ([]models.Booking, int, error)
	ListForExport(ctx context.Context, f repositories.BookingFilter) ([]models.Booking, error)
}

type AdminService struct {
	Repo      BookingLister
	Log       *zap.Logger
	RequestID string
}

func (s AdminService) List(ctx context.Context, p repositories.BookingListParams) (models.BookingPage, error) {
	p.Page = repositories.ClampPage(p.Page)
	p.Limit = repositories.ClampLimit(p.Limit)

	rows, total, err := s.Repo.ListPage(ctx, p)
	if err != nil {
		utils.LogFailure(s.Log, s.RequestID, "admin", "list", "list query failed", err)
		return models.BookingPage{}, domain.InternalError{Err: err}
	}
	if rows == nil {
		rows = []models.Booking{}
	}
	return models.BookingPage{
		Rows:       rows,
		Pagination: domain.Pagination{Page: p.Page, Limit: p.Limit, Total: total},
	}, nil
}

// Export renders every booking matching f as CSV, newest first.
func (s AdminService) Export(ctx context.Context, f repositories.BookingFilter) ([]byte, error) {
	rows, err := s.Repo.ListForExport(ctx, f)
	if err != nil {
		utils.LogFailure(s.Log, s.RequestID, "admin", "export", "export query failed", err)
		return nil, domain.InternalError{Err: err}
	}
	utils.LogEvent(s.Log, s.RequestID, "admin", "export", "bookings exported", zap.Int("rows", len(rows)))
	return EncodeBookingsCSV(rows), nil
}

// EncodeBookingsCSV quotes every field, doubling embedded quotes. Rows are
// separated by "\n" with no trailing newline.
func EncodeBookingsCSV(rows []models.Booking) []byte {
	var buf bytes.Buffer
	buf.WriteString(strings.Join(ExportHeader, ","))
	buf.WriteByte('\n')
	for i, b := range rows {
		if i > 0 {
			buf.WriteByte('\n')
		}
		fields := []string{
			b.BookingNumber,
			utils.FormatDateTime(b.CreatedAt),
			b.FullName,
			b.Phone,
			b.PayerName,
			b.Destination,
			b.PickupPoint,
			b.BusType,
			utils.FormatMoney(b.Price),
			string(b.Status),
			b.Source,
		}
		for j, f := range fields {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(quoteCSV(f))
		}
	}
	return buf.Bytes()
}

func quoteCSV(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}
