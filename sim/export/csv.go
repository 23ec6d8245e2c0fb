// Writes the per-tick and per-order tables as CSV files. Export only reads
// History; it never touches engine internals.

package export

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jesusroa1/sims/sim"
)

// TickCSVName and OrderCSVName are the file names WriteTables produces.
const (
	TickCSVName  = "ticks.csv"
	OrderCSVName = "orders.csv"
)

var tickHeader = []string{
	"tick_min", "arrivals", "capacity", "picked", "backlog",
	"cum_arrivals", "cum_picked", "cum_on_time",
	"on_time_pct_cum", "avg_dwell_min_cum", "effective_throughput_per_hour",
}

var orderHeader = []string{"created_min", "picked_min", "dwell_min", "on_time"}

// WriteTables writes ticks.csv and orders.csv under dir, creating it if
// needed.
func WriteTables(dir string, h *sim.History) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := WriteTickCSV(filepath.Join(dir, TickCSVName), h.Ticks); err != nil {
		return err
	}
	return WriteOrderCSV(filepath.Join(dir, OrderCSVName), h.Orders)
}

// WriteTickCSV writes the per-tick metrics table. Undefined percentages and
// averages (no orders served yet) become empty cells.
func WriteTickCSV(path string, ticks []sim.TickRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tickHeader); err != nil {
		return err
	}
	for _, t := range ticks {
		row := []string{
			strconv.FormatInt(t.TickMin, 10),
			strconv.Itoa(t.Arrivals),
			strconv.Itoa(t.Capacity),
			strconv.Itoa(t.Served),
			strconv.Itoa(t.Backlog),
			strconv.Itoa(t.CumArrivals),
			strconv.Itoa(t.CumServed),
			strconv.Itoa(t.CumOnTime),
			formatFloat(t.OnTimePctCum),
			formatFloat(t.AvgDwellMinCum),
			formatFloat(t.ThroughputPerHour),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteOrderCSV writes the per-order record table.
func WriteOrderCSV(path string, orders []sim.OrderRecord) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(orderHeader); err != nil {
		return err
	}
	for _, o := range orders {
		row := []string{
			strconv.FormatInt(o.CreatedMin, 10),
			strconv.FormatInt(o.ServedMin, 10),
			strconv.FormatInt(o.DwellMin, 10),
			strconv.FormatBool(o.OnTime),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}
