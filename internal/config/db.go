package config

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
)

// DSN builds the MySQL connection string. Sessions run in UTC and
// RowsAffected counts matched rows, not changed ones.
func DSN(e DBEnv) string {
	cfg := mysql.NewConfig()
	cfg.User = e.User
	cfg.Passwd = e.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(e.Host, strconv.Itoa(e.Port))
	cfg.DBName = e.Name
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.ClientFoundRows = true
	cfg.Timeout = 5 * time.Second
	cfg.ReadTimeout = 30 * time.Second
	cfg.WriteTimeout = 30 * time.Second
	cfg.Collation = "utf8mb4_0900_ai_ci"
	cfg.Params = map[string]string{
		"time_zone": "'+00:00'",
	}
	return cfg.FormatDSN()
}

// OpenDB opens and pings the pool. The caller owns the handle and closes it.
func OpenDB(ctx context.Context, e DBEnv) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(e))
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	poolSize := e.PoolSize
	if poolSize <= 0 {
		poolSize = 10
	}
	db.SetMaxOpenConns(poolSize)
	db.SetMaxIdleConns(poolSize)
	db.SetConnMaxLifetime(10 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	return db, nil
}
