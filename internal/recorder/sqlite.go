package recorder

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
}

// NewSQLiteRecorder opens (or creates) the database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

// newWithDB wires an existing handle, for tests.
func newWithDB(db *sql.DB) *SQLiteRecorder {
	return &SQLiteRecorder{db: db}
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			run_id           TEXT PRIMARY KEY,
			created_at       INTEGER NOT NULL,
			country          TEXT NOT NULL,
			used_lags        INTEGER NOT NULL,
			differenced      INTEGER NOT NULL,
			stable           INTEGER NOT NULL,
			max_root_modulus REAL,
			sample_size      INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_country ON runs(country)`,

		`CREATE TABLE IF NOT EXISTS forecasts (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id   TEXT NOT NULL,
			step     INTEGER NOT NULL,
			variable TEXT NOT NULL,
			level    REAL NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_forecasts_run ON forecasts(run_id)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:30], err)
		}
	}
	return nil
}

// RecordRun inserts the run and its forecast rows in one transaction. A
// missing RunID is assigned.
func (r *SQLiteRecorder) RecordRun(rec *RunRecord) error {
	if rec.RunID == "" {
		rec.RunID = uuid.NewString()
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(run_id, created_at, country, used_lags, differenced, stable, max_root_modulus, sample_size)
		VALUES (?,?,?,?,?,?,?,?)`,
		rec.RunID, time.Now().Unix(), rec.Country, rec.UsedLags,
		rec.Differenced, rec.Stable, rec.MaxRootModulus, rec.SampleSize,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, f := range rec.Forecasts {
		if _, err := tx.Exec(`INSERT INTO forecasts (run_id, step, variable, level) VALUES (?,?,?,?)`,
			rec.RunID, f.Step, f.Variable, f.Level); err != nil {
			return fmt.Errorf("insert forecast step %d: %w", f.Step, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
