// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package verify

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/turath/rdm-ops/pkg/types"
)

// DefaultLedgerPath is where verification runs are recorded unless
// configured otherwise.
const DefaultLedgerPath = ".rdm-ops/verify.db"

// Ledger records verification runs in a local SQLite database so
// operators can review what was checked and when.
type Ledger struct {
	db *sql.DB
}

// OpenLedger opens or creates the ledger database at path, creating the
// parent directory and schema as needed.
func OpenLedger(path string) (*Ledger, error) {
	if path == "" {
		path = DefaultLedgerPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			ts TEXT NOT NULL,
			source TEXT NOT NULL,
			pid TEXT,
			bucket TEXT,
			key TEXT NOT NULL,
			rest_size INTEGER,
			rest_checksum TEXT,
			local_size INTEGER NOT NULL,
			local_sha256 TEXT NOT NULL,
			local_md5 TEXT NOT NULL,
			matched INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_pid ON runs(pid)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(ts)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record inserts one verification run and returns its row id.
func (l *Ledger) Record(ctx context.Context, run types.VerifyRun) (int64, error) {
	ts := run.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	var restSize sql.NullInt64
	if run.RestSize != nil {
		restSize = sql.NullInt64{Int64: *run.RestSize, Valid: true}
	}

	res, err := l.db.ExecContext(ctx,
		`INSERT INTO runs (ts, source, pid, bucket, key, rest_size, rest_checksum,
			local_size, local_sha256, local_md5, matched)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ts.Format(time.RFC3339), run.Source, run.PID, run.Bucket, run.Key,
		restSize, run.RestChecksum,
		run.LocalSize, run.LocalSHA256, run.LocalMD5, run.Matched,
	)
	if err != nil {
		return 0, fmt.Errorf("recording run: %w", err)
	}
	return res.LastInsertId()
}

// History returns the most recent runs, newest first.
func (l *Ledger) History(ctx context.Context, limit int) ([]types.VerifyRun, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT id, ts, source, pid, bucket, key, rest_size, rest_checksum,
			local_size, local_sha256, local_md5, matched
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var runs []types.VerifyRun
	for rows.Next() {
		var (
			run      types.VerifyRun
			ts       string
			restSize sql.NullInt64
		)
		if err := rows.Scan(&run.ID, &ts, &run.Source, &run.PID, &run.Bucket, &run.Key,
			&restSize, &run.RestChecksum,
			&run.LocalSize, &run.LocalSHA256, &run.LocalMD5, &run.Matched); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, ts); err == nil {
			run.Timestamp = t
		}
		if restSize.Valid {
			v := restSize.Int64
			run.RestSize = &v
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
