package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"dng-api/internal/domain"
	"dng-api/internal/domain/models"
	"dng-api/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingService(t *testing.T, codes ...string) (BookingService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	svc := BookingService{Repo: repositories.BookingRepository{DB: db}}
	if len(codes) > 0 {
		i := 0
		svc.NewCode = func(int) string {
			c := codes[i%len(codes)]
			i++
			return c
		}
	}
	return svc, mock
}

func amaInput() models.CreateBookingInput {
	return models.CreateBookingInput{
		FullName:    "Ama K.",
		Phone:       "0551234567",
		Destination: "Kumasi",
		PickupPoint: "Circle",
		BusType:     "VIP",
		Price:       "150",
	}
}

func duplicateEntry() error {
	return &mysql.MySQLError{Number: 1062, Message: "Duplicate entry for key 'uniq_booking_number'"}
}

func TestCreateBookingPersistsNormalizedPrice(t *testing.T) {
	svc, mock := newBookingService(t, "ABCDEFGHJKLMNPQR")

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs("Ama K.", "0551234567", "Ama K.", "Kumasi", "Circle", "VIP", "150.00", "ABCDEFGHJKLMNPQR", "Pending", "client").
		WillReturnResult(sqlmock.NewResult(11, 1))

	got, err := svc.Create(context.Background(), amaInput())
	require.NoError(t, err)
	assert.Equal(t, models.CreatedBooking{ID: 11, BookingNumber: "ABCDEFGHJKLMNPQR", Status: domain.StatusPending}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingDefaultCodeShape(t *testing.T) {
	svc, mock := newBookingService(t)

	mock.ExpectExec("INSERT INTO bookings").WillReturnResult(sqlmock.NewResult(1, 1))

	got, err := svc.Create(context.Background(), amaInput())
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[ABCDEFGHJKLMNPQRSTUVWXYZ2-9]{16}$`), got.BookingNumber)
}

func TestCreateBookingRetriesOnCollision(t *testing.T) {
	svc, mock := newBookingService(t, "AAAAAAAAAAAAAAAA", "BBBBBBBBBBBBBBBB")

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "AAAAAAAAAAAAAAAA", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(duplicateEntry())
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "BBBBBBBBBBBBBBBB", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(5, 1))

	got, err := svc.Create(context.Background(), amaInput())
	require.NoError(t, err)
	assert.Equal(t, "BBBBBBBBBBBBBBBB", got.BookingNumber)
	assert.NotEqual(t, "AAAAAAAAAAAAAAAA", got.BookingNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingGivesUpAfterFiveCollisions(t *testing.T) {
	svc, mock := newBookingService(t, "AAAAAAAAAAAAAAAA")
	for i := 0; i < MaxCreateAttempts; i++ {
		mock.ExpectExec("INSERT INTO bookings").WillReturnError(duplicateEntry())
	}

	_, err := svc.Create(context.Background(), amaInput())
	assert.True(t, domain.IsInternal(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingDoesNotRetryOtherErrors(t *testing.T) {
	svc, mock := newBookingService(t, "AAAAAAAAAAAAAAAA")
	mock.ExpectExec("INSERT INTO bookings").WillReturnError(errors.New("connection refused"))

	_, err := svc.Create(context.Background(), amaInput())
	assert.True(t, domain.IsInternal(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingValidation(t *testing.T) {
	svc, mock := newBookingService(t)

	missing := amaInput()
	missing.BusType = "   "
	_, err := svc.Create(context.Background(), missing)
	assert.True(t, domain.IsValidation(err))

	for _, price := range []string{"", "free", "NaN", "-10", "1e400", "1e20000000", "100000000"} {
		in := amaInput()
		in.Price = price
		_, err := svc.Create(context.Background(), in)
		assert.Truef(t, domain.IsValidation(err), "price %q", price)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBookingKeepsExplicitPayer(t *testing.T) {
	svc, mock := newBookingService(t, "ABCDEFGHJKLMNPQR")
	in := amaInput()
	in.PayerName = "  Kofi Mensah "

	mock.ExpectExec("INSERT INTO bookings").
		WithArgs("Ama K.", "0551234567", "Kofi Mensah", "Kumasi", "Circle", "VIP", "150.00", "ABCDEFGHJKLMNPQR", "Pending", "client").
		WillReturnResult(sqlmock.NewResult(3, 1))

	_, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFetchByCodeUppercases(t *testing.T) {
	svc, mock := newBookingService(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE booking_number = ?")).
		WithArgs("ABCDEFGHJKLMNPQR").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "booking_number", "full_name", "phone", "payer_name", "destination",
			"pickup_point", "bus_type", "price", "status", "source", "transaction_ref", "created_at",
		}).AddRow(1, "ABCDEFGHJKLMNPQR", "Ama K.", "0551234567", "Ama K.", "Kumasi", "Circle", "VIP", "150.00", "Pending", "client", nil, time.Now()))

	b, err := svc.FetchByCode(context.Background(), " abcdefghjklmnpqr ")
	require.NoError(t, err)
	assert.Equal(t, "ABCDEFGHJKLMNPQR", b.BookingNumber)

	_, err = svc.FetchByCode(context.Background(), "   ")
	assert.True(t, domain.IsValidation(err))
}

func TestFetchByCodeDatastoreFailureIsInternal(t *testing.T) {
	svc, mock := newBookingService(t)
	mock.ExpectQuery("FROM bookings").WillReturnError(errors.New("i/o timeout"))

	_, err := svc.FetchByCode(context.Background(), "CODE")
	assert.True(t, domain.IsInternal(err))
}

func TestConfirmPaymentPreservesPayerWhenOmitted(t *testing.T) {
	svc, mock := newBookingService(t)
	mock.ExpectExec(regexp.QuoteMeta("payer_name = COALESCE(?, payer_name)")).
		WithArgs("MOMO-123", "Paid", nil, "ABCDEFGHJKLMNPQR").
		WillReturnResult(sqlmock.NewResult(0, 1))

	st, err := svc.ConfirmPayment(context.Background(), models.PaymentConfirmation{
		BookingNumber:  "abcdefghjklmnpqr",
		TransactionRef: " MOMO-123 ",
		PayerName:      "   ",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPaid, st)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPaymentOverwritesPayerWhenGiven(t *testing.T) {
	svc, mock := newBookingService(t)
	mock.ExpectExec("UPDATE bookings").
		WithArgs("MOMO-123", "Paid", "Kofi", "ABCDEFGHJKLMNPQR").
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := svc.ConfirmPayment(context.Background(), models.PaymentConfirmation{
		BookingNumber:  "ABCDEFGHJKLMNPQR",
		TransactionRef: "MOMO-123",
		PayerName:      "Kofi",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConfirmPaymentValidationAndNotFound(t *testing.T) {
	svc, mock := newBookingService(t)

	_, err := svc.ConfirmPayment(context.Background(), models.PaymentConfirmation{BookingNumber: "X"})
	assert.True(t, domain.IsValidation(err))

	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 0))
	_, err = svc.ConfirmPayment(context.Background(), models.PaymentConfirmation{BookingNumber: "X", TransactionRef: "T"})
	assert.True(t, domain.IsNotFound(err))
}

func TestUpdateStatus(t *testing.T) {
	svc, mock := newBookingService(t)

	assert.True(t, domain.IsValidation(svc.UpdateStatus(context.Background(), 1, "Refunded")))
	assert.True(t, domain.IsValidation(svc.UpdateStatus(context.Background(), 1, "paid")))

	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("Confirmed", int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings SET status").
		WithArgs("Paid", int64(999)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, svc.UpdateStatus(context.Background(), 4, "Confirmed"))
	assert.True(t, domain.IsNotFound(svc.UpdateStatus(context.Background(), 999, "Paid")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	svc, mock := newBookingService(t)
	mock.ExpectExec("DELETE FROM bookings").WithArgs(int64(8)).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM bookings").WithArgs(int64(9)).WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, svc.Delete(context.Background(), 8))
	assert.True(t, domain.IsNotFound(svc.Delete(context.Background(), 9)))
	assert.True(t, domain.IsNotFound(svc.Delete(context.Background(), 0)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestParseID(t *testing.T) {
	id, err := ParseID(" 42 ")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, bad := range []string{"", "abc", "0", "-1"} {
		_, err := ParseID(bad)
		assert.Truef(t, domain.IsNotFound(err), "id %q", bad)
	}
}
