package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"dng-api/internal/domain"
	"dng-api/internal/domain/models"
	"dng-api/internal/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// MaxCreateAttempts bounds booking_number collision retries.
const MaxCreateAttempts = 5

// BookingStore is the datastore surface the booking lifecycle needs.
type BookingStore interface {
	Insert(ctx context.Context, nb models.NewBooking) (int64, error)
	GetByCode(ctx context.Context, code string) (models.Booking, error)
	ConfirmPayment(ctx context.Context, code, transactionRef, payerName string) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	Delete(ctx context.Context, id int64) error
}

var inputValidator = validator.New()

// BookingService owns the booking lifecycle: create, lookup, payment and
// admin status changes.
type BookingService struct {
	Repo      BookingStore
	Log       *zap.Logger
	RequestID string
	// NewCode is swapped in tests; defaults to utils.GenerateBookingCode.
	NewCode func(length int) string
}

func (s BookingService) newCode() string {
	if s.NewCode != nil {
		return s.NewCode(utils.BookingCodeLength)
	}
	return utils.GenerateBookingCode(utils.BookingCodeLength)
}

// Create validates and stores a public booking, drawing a new booking number
// whenever the datastore reports a collision.
func (s BookingService) Create(ctx context.Context, in models.CreateBookingInput) (models.CreatedBooking, error) {
	in = models.CreateBookingInput{
		FullName:    utils.TrimOrEmpty(in.FullName),
		Phone:       utils.TrimOrEmpty(in.Phone),
		Destination: utils.TrimOrEmpty(in.Destination),
		PickupPoint: utils.TrimOrEmpty(in.PickupPoint),
		BusType:     utils.TrimOrEmpty(in.BusType),
		Price:       utils.TrimOrEmpty(in.Price),
		PayerName:   utils.TrimOrEmpty(in.PayerName),
	}
	if err := inputValidator.Struct(in); err != nil {
		return models.CreatedBooking{}, domain.ValidationError{Msg: "Missing required fields", Err: err}
	}

	price, ok := utils.NormalizeMoney(in.Price)
	if !ok || utils.IsNegativeMoney(price) {
		return models.CreatedBooking{}, domain.ValidationError{Field: "price", Msg: "Invalid price"}
	}

	nb := models.NewBooking{
		FullName:    in.FullName,
		Phone:       in.Phone,
		PayerName:   utils.FirstNonEmpty(in.PayerName, in.FullName),
		Destination: in.Destination,
		PickupPoint: in.PickupPoint,
		BusType:     in.BusType,
		Price:       price,
		Status:      domain.StatusPending,
		Source:      domain.SourceClient,
	}

	var id int64
	exhausted, err := utils.Retry(MaxCreateAttempts, domain.IsUniqueViolation, func(attempt int) error {
		nb.BookingNumber = s.newCode()
		var insErr error
		id, insErr = s.Repo.Insert(ctx, nb)
		if insErr != nil && domain.IsUniqueViolation(insErr) {
			utils.LogEvent(s.Log, s.RequestID, "booking", "create", "booking number collision",
				zap.Int("attempt", attempt))
		}
		return insErr
	})
	if exhausted {
		utils.LogFailure(s.Log, s.RequestID, "booking", "create", "booking number retries exhausted", err)
		return models.CreatedBooking{}, domain.InternalError{Msg: "Could not create booking", Err: err}
	}
	if err != nil {
		utils.LogFailure(s.Log, s.RequestID, "booking", "create", "insert failed", err)
		return models.CreatedBooking{}, domain.InternalError{Err: err}
	}

	utils.LogEvent(s.Log, s.RequestID, "booking", "create", "booking created",
		zap.Int64("booking_id", id), zap.String("booking_number", nb.BookingNumber))
	return models.CreatedBooking{ID: id, BookingNumber: nb.BookingNumber, Status: domain.StatusPending}, nil
}

func (s BookingService) FetchByCode(ctx context.Context, code string) (models.Booking, error) {
	code = utils.NormalizeCode(code)
	if code == "" {
		return models.Booking{}, domain.ValidationError{Field: "code", Msg: "Invalid code"}
	}
	b, err := s.Repo.GetByCode(ctx, code)
	if err != nil {
		return models.Booking{}, s.wrap("fetch", err)
	}
	return b, nil
}

// ConfirmPayment records a transaction reference and moves the booking to Paid.
func (s BookingService) ConfirmPayment(ctx context.Context, pc models.PaymentConfirmation) (domain.BookingStatus, error) {
	code := utils.NormalizeCode(pc.BookingNumber)
	ref := utils.TrimOrEmpty(pc.TransactionRef)
	if code == "" || ref == "" {
		return "", domain.ValidationError{Msg: "booking_number and transaction_ref are required"}
	}
	if err := s.Repo.ConfirmPayment(ctx, code, ref, utils.TrimOrEmpty(pc.PayerName)); err != nil {
		return "", s.wrap("confirm_payment", err)
	}
	utils.LogEvent(s.Log, s.RequestID, "payment", "confirm", "payment reference recorded",
		zap.String("booking_number", code))
	return domain.StatusPaid, nil
}

func (s BookingService) UpdateStatus(ctx context.Context, id int64, status string) error {
	st, ok := domain.ParseBookingStatus(status)
	if !ok {
		return domain.ValidationError{Field: "status", Msg: "Invalid status"}
	}
	if id <= 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	if err := s.Repo.UpdateStatus(ctx, id, st); err != nil {
		return s.wrap("update_status", err)
	}
	utils.LogEvent(s.Log, s.RequestID, "booking", "update_status", "status changed",
		zap.Int64("booking_id", id), zap.String("status", string(st)))
	return nil
}

func (s BookingService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return s.wrap("delete", err)
	}
	utils.LogEvent(s.Log, s.RequestID, "booking", "delete", "booking deleted", zap.Int64("booking_id", id))
	return nil
}

// wrap passes domain errors through and turns anything else into InternalError.
func (s BookingService) wrap(action string, err error) error {
	if domain.IsNotFound(err) || domain.IsValidation(err) {
		return err
	}
	utils.LogFailure(s.Log, s.RequestID, "booking", action, "datastore failure", err)
	return domain.InternalError{Err: fmt.Errorf("%s: %w", action, err)}
}

// ParseID reads a positive surrogate id from a path segment. A segment that
// cannot name a row reports NotFoundError, same as an id with no row.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NotFoundError{Resource: "booking", Err: err}
	}
	return id, nil
}
