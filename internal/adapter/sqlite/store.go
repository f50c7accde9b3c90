// Package sqlite stores observations and stations in a local SQLite file.
// Each document is kept as JSON next to its key columns.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/couchcryptid/isd-loader/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS observations (
		station_id TEXT NOT NULL,
		ts         TEXT NOT NULL,
		doc        TEXT NOT NULL,
		PRIMARY KEY (station_id, ts)
	);
	CREATE TABLE IF NOT EXISTS stations (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		station_id TEXT NOT NULL,
		doc        TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_stations_station_id ON stations(station_id);
`

// Store is a single-connection SQLite database. Writes from all workers are
// serialized by the connection pool.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// BulkInsert inserts batch in one transaction. Rows whose key already exists
// are skipped and reported as duplicates.
func (s *Store) BulkInsert(ctx context.Context, batch []domain.Record) (domain.BulkResult, error) {
	var res domain.BulkResult
	if len(batch) == 0 {
		return res, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return res, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO observations (station_id, ts, doc) VALUES (?, ?, ?)
		 ON CONFLICT (station_id, ts) DO NOTHING`)
	if err != nil {
		return res, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for i := range batch {
		doc, err := json.Marshal(batch[i].Document())
		if err != nil {
			return domain.BulkResult{}, fmt.Errorf("encode record %d: %w", i, err)
		}
		r, err := stmt.ExecContext(ctx, batch[i].StationID, formatTime(batch[i].Timestamp), string(doc))
		if err != nil {
			return domain.BulkResult{}, fmt.Errorf("insert record %d: %w", i, err)
		}
		n, err := r.RowsAffected()
		if err != nil {
			return domain.BulkResult{}, fmt.Errorf("rows affected: %w", err)
		}
		if n == 0 {
			res.Duplicates = append(res.Duplicates, i)
			continue
		}
		res.Inserted++
	}

	if err := tx.Commit(); err != nil {
		return domain.BulkResult{}, fmt.Errorf("commit: %w", err)
	}
	return res, nil
}

// InsertStation appends one station row.
func (s *Store) InsertStation(ctx context.Context, st domain.Station) error {
	doc, err := json.Marshal(st.Document())
	if err != nil {
		return fmt.Errorf("encode station: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO stations (station_id, doc) VALUES (?, ?)`, st.StationID, string(doc))
	if err != nil {
		return fmt.Errorf("insert station: %w", err)
	}
	return nil
}

// CountObservations returns the number of stored observations.
func (s *Store) CountObservations(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM observations`).Scan(&n)
	return n, err
}

// Observation returns the stored JSON document for one key.
func (s *Store) Observation(ctx context.Context, id domain.RecordID) (string, error) {
	var doc string
	err := s.db.QueryRowContext(ctx,
		`SELECT doc FROM observations WHERE station_id = ? AND ts = ?`,
		id.StationID, formatTime(id.Timestamp)).Scan(&doc)
	return doc, err
}

// CheckReadiness pings the database.
func (s *Store) CheckReadiness(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
