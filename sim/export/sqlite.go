// Optional SQLite results sink. Each call records one run row plus its full
// tick and order history, so parameter sweeps can be compared with plain SQL
// instead of juggling CSV directories.

package export

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	_ "modernc.org/sqlite"

	"github.com/jesusroa1/sims/sim"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	label      TEXT NOT NULL,
	created_at TEXT NOT NULL,
	seed       INTEGER,
	config     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS ticks (
	run_id       INTEGER NOT NULL REFERENCES runs(id),
	tick_min     INTEGER NOT NULL,
	arrivals     INTEGER NOT NULL,
	capacity     INTEGER NOT NULL,
	picked       INTEGER NOT NULL,
	backlog      INTEGER NOT NULL,
	in_progress  INTEGER NOT NULL,
	cum_arrivals INTEGER NOT NULL,
	cum_picked   INTEGER NOT NULL,
	cum_on_time  INTEGER NOT NULL,
	on_time_pct  REAL,
	avg_dwell_min REAL,
	throughput_per_hour REAL
);
CREATE TABLE IF NOT EXISTS orders (
	run_id      INTEGER NOT NULL REFERENCES runs(id),
	created_min INTEGER NOT NULL,
	picked_min  INTEGER NOT NULL,
	dwell_min   INTEGER NOT NULL,
	on_time     INTEGER NOT NULL
);
`

// Run identifies one recorded simulation in the results database.
type Run struct {
	Label  string
	Seed   *int64
	Config any // marshalled to JSON in the run row
}

// WriteDB appends one run and its history to the SQLite database at path,
// bootstrapping the schema on first use. Returns the new run's id.
func WriteDB(path string, run Run, h *sim.History) (int64, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, fmt.Errorf("open results db: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return 0, fmt.Errorf("bootstrap schema: %w", err)
	}

	cfgJSON, err := json.Marshal(run.Config)
	if err != nil {
		return 0, fmt.Errorf("marshal run config: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var seed any
	if run.Seed != nil {
		seed = *run.Seed
	}
	res, err := tx.Exec(
		`INSERT INTO runs (label, created_at, seed, config) VALUES (?, ?, ?, ?)`,
		run.Label, time.Now().UTC().Format(time.RFC3339), seed, string(cfgJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	tickStmt, err := tx.Prepare(`INSERT INTO ticks
		(run_id, tick_min, arrivals, capacity, picked, backlog, in_progress,
		 cum_arrivals, cum_picked, cum_on_time, on_time_pct, avg_dwell_min, throughput_per_hour)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer tickStmt.Close()
	for _, t := range h.Ticks {
		_, err := tickStmt.Exec(runID, t.TickMin, t.Arrivals, t.Capacity, t.Served,
			t.Backlog, t.InProgress, t.CumArrivals, t.CumServed, t.CumOnTime,
			nullIfNaN(t.OnTimePctCum), nullIfNaN(t.AvgDwellMinCum), nullIfNaN(t.ThroughputPerHour))
		if err != nil {
			return 0, fmt.Errorf("insert tick %d: %w", t.TickMin, err)
		}
	}

	orderStmt, err := tx.Prepare(`INSERT INTO orders
		(run_id, created_min, picked_min, dwell_min, on_time) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer orderStmt.Close()
	for _, o := range h.Orders {
		if _, err := orderStmt.Exec(runID, o.CreatedMin, o.ServedMin, o.DwellMin, o.OnTime); err != nil {
			return 0, fmt.Errorf("insert order: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return runID, nil
}

func nullIfNaN(v float64) any {
	if math.IsNaN(v) {
		return nil
	}
	return v
}
