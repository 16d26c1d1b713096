package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"dng-api/internal/domain"
	"dng-api/internal/domain/models"
	"dng-api/internal/utils"

	"github.com/phpdave11/gofpdf"
	"go.uber.org/zap"
)

// BookingFinder looks a booking up by its public code.
type BookingFinder interface {
	GetByCode(ctx context.Context, code string) (models.Booking, error)
}

// DocsService renders printable booking receipts.
type DocsService struct {
	Repo      BookingFinder
	Log       *zap.Logger
	RequestID string
}

func (s DocsService) GenerateReceipt(ctx context.Context, code string) ([]byte, string, error) {
	code = utils.NormalizeCode(code)
	if code == "" {
		return nil, "", domain.ValidationError{Field: "code", Msg: "Invalid code"}
	}
	b, err := s.Repo.GetByCode(ctx, code)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, "", err
		}
		utils.LogFailure(s.Log, s.RequestID, "docs", "generate_receipt", "lookup failed", err)
		return nil, "", domain.InternalError{Err: err}
	}
	utils.LogEvent(s.Log, s.RequestID, "docs", "generate_receipt", "receipt rendered", zap.String("booking_number", code))
	out, name, err := buildReceiptPDF(b)
	if err != nil {
		return nil, "", domain.InternalError{Err: err}
	}
	return out, name, nil
}

func buildReceiptPDF(b models.Booking) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle("Booking Receipt", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "BOOKING RECEIPT")
	pdf.Ln(12)

	ref := "-"
	if b.TransactionRef != nil {
		ref = safe(*b.TransactionRef, "-")
	}

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Booking number : %s", safe(b.BookingNumber, "-")),
		fmt.Sprintf("Booked at      : %s UTC", utils.FormatDateTime(b.CreatedAt)),
		fmt.Sprintf("Passenger      : %s", safe(b.FullName, "-")),
		fmt.Sprintf("Phone          : %s", safe(b.Phone, "-")),
		fmt.Sprintf("Payer          : %s", safe(b.PayerName, "-")),
		fmt.Sprintf("Route          : %s -> %s", safe(b.PickupPoint, "-"), safe(b.Destination, "-")),
		fmt.Sprintf("Bus type       : %s", safe(b.BusType, "-")),
		fmt.Sprintf("Status         : %s", safe(string(b.Status), "-")),
		fmt.Sprintf("Transaction    : %s", ref),
	}
	for _, s := range lines {
		pdf.Cell(0, 7, tr(s))
		pdf.Ln(7)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Total: GHS "+utils.FormatMoney(b.Price))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Present this receipt and your booking number at the pickup point.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), fmt.Sprintf("RECEIPT_%s.pdf", safeFilenamePart(b.BookingNumber)), nil
}

func safe(v, fallback string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return fallback
	}
	return v
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "NA"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_", ":", "_", "*", "_", "?", "_", "\"", "_", "<", "_", ">", "_", "|", "_")
	s = replacer.Replace(s)
	if len(s) > 40 {
		s = s[:40]
	}
	return s
}
