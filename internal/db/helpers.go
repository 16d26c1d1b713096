package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dng-api/internal/domain"

	"github.com/go-sql-driver/mysql"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithConn pins one pooled connection for the duration of fn and always hands
// it back, whatever fn returns.
func WithConn(ctx context.Context, pool *sql.DB, fn func(Querier) error) error {
	if pool == nil {
		return fmt.Errorf("db not available")
	}
	conn, err := pool.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()
	return fn(conn)
}

// NullIfEmpty helps store optional strings without wiping existing data.
func NullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// TranslateError maps driver-specific failures onto domain error kinds.
// Errors it does not recognise are returned unchanged.
func TranslateError(err error, key string) error {
	if err == nil {
		return nil
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return domain.UniqueViolationError{Key: key, Err: err}
	}
	return err
}

// RowsAffected treats a driver that cannot report affected rows as zero.
func RowsAffected(res sql.Result) int64 {
	if res == nil {
		return 0
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0
	}
	return n
}
