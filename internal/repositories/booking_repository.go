package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	intdb "dng-api/internal/db"
	"dng-api/internal/domain"
	"dng-api/internal/domain/models"
)

const bookingColumns = `
	id,
	booking_number,
	COALESCE(full_name, ''),
	COALESCE(phone, ''),
	COALESCE(payer_name, ''),
	COALESCE(destination, ''),
	COALESCE(pickup_point, ''),
	COALESCE(bus_type, ''),
	COALESCE(price, 0),
	status,
	COALESCE(source, ''),
	transaction_ref,
	created_at`

type BookingRepository struct {
	DB *sql.DB
}

func (r BookingRepository) db() (*sql.DB, error) {
	if r.DB == nil {
		return nil, fmt.Errorf("db not available")
	}
	return r.DB, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBooking(s rowScanner) (models.Booking, error) {
	var (
		b      models.Booking
		status string
		ref    sql.NullString
	)
	if err := s.Scan(
		&b.ID,
		&b.BookingNumber,
		&b.FullName,
		&b.Phone,
		&b.PayerName,
		&b.Destination,
		&b.PickupPoint,
		&b.BusType,
		&b.Price,
		&status,
		&b.Source,
		&ref,
		&b.CreatedAt,
	); err != nil {
		return models.Booking{}, err
	}
	b.Status = domain.BookingStatus(status)
	if ref.Valid {
		v := ref.String
		b.TransactionRef = &v
	}
	return b, nil
}

// Insert stores a new booking. A clash on booking_number comes back as
// domain.UniqueViolationError.
func (r BookingRepository) Insert(ctx context.Context, nb models.NewBooking) (int64, error) {
	db, err := r.db()
	if err != nil {
		return 0, err
	}
	res, err := db.ExecContext(ctx, `
		INSERT INTO bookings
			(full_name, phone, payer_name, destination, pickup_point, bus_type, price, booking_number, status, source)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		nb.FullName,
		nb.Phone,
		nb.PayerName,
		nb.Destination,
		nb.PickupPoint,
		nb.BusType,
		nb.Price,
		nb.BookingNumber,
		string(nb.Status),
		nb.Source,
	)
	if err != nil {
		return 0, intdb.TranslateError(err, "booking_number")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("insert returned no id")
	}
	return id, nil
}

func (r BookingRepository) GetByCode(ctx context.Context, code string) (models.Booking, error) {
	db, err := r.db()
	if err != nil {
		return models.Booking{}, err
	}
	row := db.QueryRowContext(ctx, `SELECT `+bookingColumns+`
		FROM bookings
		WHERE booking_number = ?
		LIMIT 1`, code)
	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Booking{}, domain.NotFoundError{Resource: "booking", Err: err}
		}
		return models.Booking{}, err
	}
	return b, nil
}

// ConfirmPayment marks a booking Paid in one statement. payerName is only
// written when non-empty.
func (r BookingRepository) ConfirmPayment(ctx context.Context, code, transactionRef, payerName string) error {
	db, err := r.db()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `
		UPDATE bookings
		   SET transaction_ref = ?,
		       status = ?,
		       payer_name = COALESCE(?, payer_name)
		 WHERE booking_number = ?`,
		transactionRef,
		string(domain.StatusPaid),
		intdb.NullIfEmpty(payerName),
		code,
	)
	if err != nil {
		return err
	}
	if intdb.RowsAffected(res) == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

func (r BookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	db, err := r.db()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `UPDATE bookings SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	if intdb.RowsAffected(res) == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

func (r BookingRepository) Delete(ctx context.Context, id int64) error {
	db, err := r.db()
	if err != nil {
		return err
	}
	res, err := db.ExecContext(ctx, `DELETE FROM bookings WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if intdb.RowsAffected(res) == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// ListPage runs the page query and its count on the same connection with the
// same predicate.
func (r BookingRepository) ListPage(ctx context.Context, p BookingListParams) ([]models.Booking, int, error) {
	db, err := r.db()
	if err != nil {
		return nil, 0, err
	}
	where, args := p.Filter.Where()

	var (
		list  []models.Booking
		total int
	)
	err = intdb.WithConn(ctx, db, func(q intdb.Querier) error {
		pageArgs := append(append([]any{}, args...), ClampLimit(p.Limit), p.Offset())
		rows, err := q.QueryContext(ctx, `SELECT `+bookingColumns+`
		FROM bookings`+where+p.OrderBy()+`
		LIMIT ? OFFSET ?`, pageArgs...)
		if err != nil {
			return err
		}
		list, err = collectBookings(rows)
		if err != nil {
			return err
		}

		return q.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`+where, args...).Scan(&total)
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// ListForExport returns every matching row, newest first.
func (r BookingRepository) ListForExport(ctx context.Context, f BookingFilter) ([]models.Booking, error) {
	db, err := r.db()
	if err != nil {
		return nil, err
	}
	where, args := f.Where()

	var list []models.Booking
	err = intdb.WithConn(ctx, db, func(q intdb.Querier) error {
		rows, err := q.QueryContext(ctx, `SELECT `+bookingColumns+`
		FROM bookings`+where+`
		ORDER BY created_at DESC`, args...)
		if err != nil {
			return err
		}
		list, err = collectBookings(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

func collectBookings(rows *sql.Rows) ([]models.Booking, error) {
	defer rows.Close()
	list := []models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}
