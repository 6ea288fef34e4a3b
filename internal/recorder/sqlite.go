package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the run journal to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS forecast_runs (
			run_id        TEXT PRIMARY KEY,
			started_at    INTEGER NOT NULL,
			input_path    TEXT,
			output_path   TEXT,
			months        INTEGER,
			input_rows    INTEGER,
			forecast_rows INTEGER,
			dropped_dates INTEGER,
			duration_ms   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON forecast_runs(started_at)`,

		`CREATE TABLE IF NOT EXISTS column_fits (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        TEXT NOT NULL,
			column_name   TEXT NOT NULL,
			train_rows    INTEGER,
			changepoints  INTEGER,
			residual_std  REAL,
			future_rows   INTEGER,
			duration_ms   INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_fits_run ON column_fits(run_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO forecast_runs
		(run_id, started_at, input_path, output_path, months,
		 input_rows, forecast_rows, dropped_dates, duration_ms)
		VALUES (?,?,?,?,?,?,?,?,?)`,
		run.RunID, run.StartedAt.Unix(), run.InputPath, run.OutputPath, run.Months,
		run.InputRows, run.ForecastRows, run.DroppedDates, run.Duration.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) RecordColumnFit(fit *ColumnFitRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO column_fits
		(run_id, column_name, train_rows, changepoints, residual_std, future_rows, duration_ms)
		VALUES (?,?,?,?,?,?,?)`,
		fit.RunID, fit.Column, fit.TrainRows, fit.Changepoints,
		fit.ResidualStd, fit.FutureRows, fit.Duration.Milliseconds(),
	)
	return err
}

// RecentRuns returns up to limit runs, newest first.
func (r *SQLiteRecorder) RecentRuns(limit int) ([]RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT run_id, started_at, input_path, output_path, months,
		input_rows, forecast_rows, dropped_dates, duration_ms
		FROM forecast_runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var rec RunRecord
		var started, durMs int64
		if err := rows.Scan(&rec.RunID, &started, &rec.InputPath, &rec.OutputPath, &rec.Months,
			&rec.InputRows, &rec.ForecastRows, &rec.DroppedDates, &durMs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.StartedAt = time.Unix(started, 0)
		rec.Duration = time.Duration(durMs) * time.Millisecond
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
