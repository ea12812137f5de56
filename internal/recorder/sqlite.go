package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists scan and monitor history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block the writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scan_runs (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			total        INTEGER,
			qualified    INTEGER,
			no_signal    INTEGER,
			not_eligible INTEGER,
			skipped      INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_runs_ts ON scan_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS scan_results (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        INTEGER NOT NULL,
			timestamp     INTEGER NOT NULL,
			code          TEXT,
			name          TEXT,
			market        TEXT,
			current_price REAL,
			monthly_low   REAL,
			trailing_div  REAL,
			yield_pct     REAL,
			regime        TEXT,
			curr_hist     REAL,
			prev_hist     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scan_results_code ON scan_results(code)`,

		`CREATE TABLE IF NOT EXISTS monitor_runs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			checked    INTEGER,
			breached   INTEGER,
			notified   INTEGER,
			suppressed INTEGER,
			skipped    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_monitor_runs_ts ON monitor_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS alert_events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			code        TEXT,
			name        TEXT,
			live_price  REAL,
			monthly_low REAL,
			status      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alert_events_code ON alert_events(code)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordScanRun(evt *ScanRunEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	res, err := r.db.Exec(`INSERT INTO scan_runs
		(timestamp, total, qualified, no_signal, not_eligible, skipped)
		VALUES (?,?,?,?,?,?)`,
		now, evt.Total, evt.Qualified, evt.NoSignal, evt.NotEligible, evt.Skipped,
	)
	if err != nil {
		return err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	for _, row := range evt.Results {
		if _, err := r.db.Exec(`INSERT INTO scan_results
			(run_id, timestamp, code, name, market, current_price, monthly_low,
			 trailing_div, yield_pct, regime, curr_hist, prev_hist)
			VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
			runID, now, row.Code, row.Name, string(row.Market),
			row.CurrentPrice, row.MonthlyLow, row.TrailingDiv, row.YieldPct,
			string(row.Regime), row.CurrHistogram, row.PrevHistogram,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordMonitorRun(evt *MonitorRunEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO monitor_runs
		(timestamp, checked, breached, notified, suppressed, skipped)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Checked, evt.Breached, evt.Notified, evt.Suppressed, evt.Skipped,
	)
	return err
}

func (r *SQLiteRecorder) RecordAlert(evt *AlertEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO alert_events
		(timestamp, code, name, live_price, monthly_low, status)
		VALUES (?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Code, evt.Name, evt.LivePrice, evt.MonthlyLow, evt.Status,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
