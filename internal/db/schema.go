package db

import (
	"context"
	"database/sql"
	"fmt"
)

const bookingsDDL = `
CREATE TABLE IF NOT EXISTS bookings (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	booking_number VARCHAR(32) NOT NULL,
	full_name VARCHAR(255) NOT NULL,
	phone VARCHAR(64) NOT NULL,
	payer_name VARCHAR(255) NOT NULL,
	destination VARCHAR(255) NOT NULL,
	pickup_point VARCHAR(255) NOT NULL,
	bus_type VARCHAR(100) NOT NULL,
	price DECIMAL(10,2) NOT NULL,
	status ENUM('Pending','Paid','Confirmed','Cancelled') NOT NULL DEFAULT 'Pending',
	source VARCHAR(50) NOT NULL DEFAULT 'client',
	transaction_ref VARCHAR(255) NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE KEY uniq_booking_number (booking_number),
	KEY idx_created_at (created_at),
	KEY idx_destination (destination),
	KEY idx_status (status)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_0900_ai_ci;
`

func HasTable(ctx context.Context, q Querier, table string) bool {
	var name sql.NullString
	err := q.QueryRowContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = DATABASE()
		  AND table_name = ?
		LIMIT 1
	`, table).Scan(&name)
	if err != nil {
		return false
	}
	return name.Valid && name.String != ""
}

// EnsureSchema creates the bookings table when it is missing.
func EnsureSchema(ctx context.Context, q Querier) error {
	if q == nil {
		return fmt.Errorf("db not available")
	}
	if HasTable(ctx, q, "bookings") {
		return nil
	}
	_, err := q.ExecContext(ctx, bookingsDDL)
	return err
}
