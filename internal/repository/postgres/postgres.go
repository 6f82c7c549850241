package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/lib/pq"
)

//go:embed schema.sql
var schema string

// Open connects to Postgres and waits (with backoff) until the server answers a ping.
func Open(ctx context.Context, dsn string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	_, err = backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, db.PingContext(ctx)
	},
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxElapsedTime(30*time.Second),
		backoff.WithNotify(func(err error, next time.Duration) {
			logger.WarnContext(ctx, "database not ready", "err", err, "retry_in", next)
		}),
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// Migrate creates the tables and indexes if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func pqCode(err error) pq.ErrorCode {
	var perr *pq.Error
	if errors.As(err, &perr) {
		return perr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool { return pqCode(err) == "23505" }

func isCheckViolation(err error) bool { return pqCode(err) == "23514" }

// isTxConflict reports serialization failures and deadlocks.
func isTxConflict(err error) bool {
	code := pqCode(err)
	return code == "40001" || code == "40P01"
}

func nullDate(d *time.Time) sql.NullTime {
	if d == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *d, Valid: true}
}

func datePtr(n sql.NullTime) *time.Time {
	if !n.Valid {
		return nil
	}
	d := time.Date(n.Time.Year(), n.Time.Month(), n.Time.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
