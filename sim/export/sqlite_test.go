package export

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteDB_RecordsRunAndHistory(t *testing.T) {
	// GIVEN a fresh database path and a small history
	path := filepath.Join(t.TempDir(), "results.db")
	seed := int64(42)
	h := sampleHistory()

	// WHEN recording a run
	runID, err := WriteDB(path, Run{
		Label:  "throughput",
		Seed:   &seed,
		Config: map[string]any{"hours": 24},
	}, h)
	require.NoError(t, err)
	require.Positive(t, runID)

	// THEN the run row and its full history are queryable
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var label string
	var gotSeed sql.NullInt64
	require.NoError(t, db.QueryRow(
		`SELECT label, seed FROM runs WHERE id = ?`, runID).Scan(&label, &gotSeed))
	require.Equal(t, "throughput", label)
	require.True(t, gotSeed.Valid)
	require.Equal(t, seed, gotSeed.Int64)

	var tickCount, orderCount int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM ticks WHERE run_id = ?`, runID).Scan(&tickCount))
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM orders WHERE run_id = ?`, runID).Scan(&orderCount))
	require.Equal(t, len(h.Ticks), tickCount)
	require.Equal(t, len(h.Orders), orderCount)

	// Undefined metrics land as NULL, not NaN.
	var pct sql.NullFloat64
	require.NoError(t, db.QueryRow(
		`SELECT on_time_pct FROM ticks WHERE run_id = ? AND tick_min = 0`, runID).Scan(&pct))
	require.False(t, pct.Valid)
}

func TestWriteDB_AppendsRuns(t *testing.T) {
	// Two runs against the same file get distinct ids in one schema.
	path := filepath.Join(t.TempDir(), "results.db")
	h := sampleHistory()

	id1, err := WriteDB(path, Run{Label: "a", Config: struct{}{}}, h)
	require.NoError(t, err)
	id2, err := WriteDB(path, Run{Label: "b", Config: struct{}{}}, h)
	require.NoError(t, err)
	require.NotEqual(t, id1, id2)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var runs int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM runs`).Scan(&runs))
	require.Equal(t, 2, runs)

	// An unseeded run records NULL for the seed.
	var seed sql.NullInt64
	require.NoError(t, db.QueryRow(`SELECT seed FROM runs WHERE id = ?`, id1).Scan(&seed))
	require.False(t, seed.Valid)
}
