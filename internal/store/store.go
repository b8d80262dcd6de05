// Package store persists imported glucose and insulin series in SQLite so
// analysis tools can run against previously imported data without the
// caller re-sending the whole series.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gluco-mcp/internal/insulin"
	"gluco-mcp/internal/metrics"

	_ "modernc.org/sqlite"
)

// Store is a SQLite-backed readings store.
type Store struct {
	db *sql.DB
}

// OpenMemory creates an in-memory store, used by tests.
func OpenMemory() (*Store, error) {
	return open(":memory:")
}

// OpenFile creates or opens a file-based store.
func OpenFile(path string) (*Store, error) {
	return open(path)
}

func open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveGlucose upserts glucose readings keyed by timestamp, so re-importing
// an overlapping export never duplicates data.
func (s *Store) SaveGlucose(ctx context.Context, readings []metrics.Reading) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO glucose_readings (timestamp, value)
		VALUES (?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range readings {
		if _, err := stmt.ExecContext(ctx, r.Time.UTC(), r.Value); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// QueryGlucose returns readings with since <= timestamp <= until, ascending.
// Zero bounds are open-ended.
func (s *Store) QueryGlucose(ctx context.Context, since, until time.Time) ([]metrics.Reading, error) {
	query, args := rangeQuery("SELECT timestamp, value FROM glucose_readings", since, until)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []metrics.Reading
	for rows.Next() {
		var r metrics.Reading
		if err := rows.Scan(&r.Time, &r.Value); err != nil {
			return nil, err
		}
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

// SaveInsulin upserts insulin readings keyed by timestamp and type.
func (s *Store) SaveInsulin(ctx context.Context, readings []insulin.Reading) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO insulin_readings (timestamp, insulin_type, dose)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range readings {
		if _, err := stmt.ExecContext(ctx, r.Time.UTC(), string(r.Type), r.Dose); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// QueryInsulin returns insulin readings with since <= timestamp <= until,
// ascending. Zero bounds are open-ended.
func (s *Store) QueryInsulin(ctx context.Context, since, until time.Time) ([]insulin.Reading, error) {
	query, args := rangeQuery("SELECT timestamp, insulin_type, dose FROM insulin_readings", since, until)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var readings []insulin.Reading
	for rows.Next() {
		var r insulin.Reading
		var kind string
		if err := rows.Scan(&r.Time, &kind, &r.Dose); err != nil {
			return nil, err
		}
		r.Type = insulin.Type(kind)
		readings = append(readings, r)
	}
	return readings, rows.Err()
}

// GlucoseSpan returns the first and last stored glucose timestamps and the
// row count. An empty table yields zero times and count 0.
func (s *Store) GlucoseSpan(ctx context.Context) (first, last time.Time, count int, err error) {
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM glucose_readings
	`).Scan(&count)
	if err != nil || count == 0 {
		return time.Time{}, time.Time{}, count, err
	}
	// Select the column directly so the driver keeps the DATETIME
	// declared type and scans into time.Time.
	err = s.db.QueryRowContext(ctx, `
		SELECT timestamp FROM glucose_readings ORDER BY timestamp ASC LIMIT 1
	`).Scan(&first)
	if err != nil {
		return time.Time{}, time.Time{}, count, err
	}
	err = s.db.QueryRowContext(ctx, `
		SELECT timestamp FROM glucose_readings ORDER BY timestamp DESC LIMIT 1
	`).Scan(&last)
	return first, last, count, err
}

func rangeQuery(base string, since, until time.Time) (string, []any) {
	var args []any
	where := ""
	if !since.IsZero() {
		where += " WHERE timestamp >= ?"
		args = append(args, since.UTC())
	}
	if !until.IsZero() {
		if where == "" {
			where += " WHERE timestamp <= ?"
		} else {
			where += " AND timestamp <= ?"
		}
		args = append(args, until.UTC())
	}
	return base + where + " ORDER BY timestamp ASC", args
}
