package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"molnet-polls/internal/config"
	"molnet-polls/internal/retry"
)

// Open connects to the configured store and waits for it to answer a ping.
// SQLite is limited to a single connection so in-memory databases survive
// and writers never contend.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	switch driver {
	case config.DriverPostgres:
		db, err = sql.Open("pgx", dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(time.Hour)
	case config.DriverSQLite:
		db, err = sql.Open("sqlite", sqliteDSN(dsn))
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(1)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	err = retry.Do(ctx, retry.Policy{
		Attempts:  6,
		BaseDelay: 500 * time.Millisecond,
		MaxDelay:  5 * time.Second,
		OnRetry: func(attempt int, err error, wait time.Duration) {
			slog.Warn("database not ready", "driver", driver, "attempt", attempt, "retry_in", wait, "error", err)
		},
	}, func(ctx context.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database ping: %w", err)
	}

	return db, nil
}

// sqliteDSN makes sure cascading deletes are enforced on the connection.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}
