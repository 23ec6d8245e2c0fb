// Package render draws read-only views of simulation state: the ASCII
// warehouse board for the lifecycle model and a backlog chart for the
// throughput model. It consumes only the sim package's snapshot types.
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/jesusroa1/sims/sim"
)

const (
	boardColWidth = 12
	chartWidth    = 72
	chartHeight   = 12
)

var boardColumns = []string{"NEW", "PICK", "STAGE", "SHIP", "COMPLETE"}

// Board renders the warehouse floor: one column per stage listing order IDs,
// the worker strip, and the KPI footer.
func Board(snap sim.BoardSnapshot) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Warehouse Board  @ %s\n", snap.KPI.Clock))
	sb.WriteString(strings.Repeat("=", boardColWidth*len(boardColumns)))
	sb.WriteString("\n")

	for _, col := range boardColumns {
		sb.WriteString(pad(col))
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", boardColWidth*len(boardColumns)))
	sb.WriteString("\n")

	cols := [][]int{snap.New, snap.Picking, snap.Staging, snap.Shipping, snap.Completed}
	rows := 0
	for _, c := range cols {
		if len(c) > rows {
			rows = len(c)
		}
	}
	for r := 0; r < rows; r++ {
		for _, c := range cols {
			if r < len(c) {
				sb.WriteString(pad(fmt.Sprintf("#%03d", c[r])))
			} else {
				sb.WriteString(pad(""))
			}
		}
		sb.WriteString("\n")
	}
	if rows == 0 {
		sb.WriteString("(floor is empty)\n")
	}

	sb.WriteString("\nWorkers\n")
	for _, w := range snap.Workers {
		if w.OrderID < 0 {
			sb.WriteString(fmt.Sprintf("  W%d: idle\n", w.ID))
			continue
		}
		sb.WriteString(fmt.Sprintf("  W%d: #%03d %s (%d left)\n", w.ID, w.OrderID, w.Stage, w.Remaining))
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("on-time: %s | throughput: %.1f/hr | avg wait: %s | queue: %d | clock: %s\n",
		pct(snap.KPI.OnTimePct), snap.KPI.ThroughputPerHour, minutes(snap.KPI.AvgDwellMin),
		snap.KPI.Backlog, snap.KPI.Clock))
	return sb.String()
}

// BacklogChart renders backlog depth over the run as a fixed-size ASCII
// chart, one column per sampled tick.
func BacklogChart(ticks []sim.TickRecord) string {
	if len(ticks) == 0 {
		return "No data to display"
	}

	samples := sample(ticks, chartWidth)
	maxBacklog := 0
	for _, t := range samples {
		if t.Backlog > maxBacklog {
			maxBacklog = t.Backlog
		}
	}

	var sb strings.Builder
	sb.WriteString("\n")
	sb.WriteString("Backlog Over Time\n")
	sb.WriteString(strings.Repeat("=", chartWidth))
	sb.WriteString("\n")

	if maxBacklog == 0 {
		sb.WriteString("(backlog never grew)\n")
		return sb.String()
	}

	for row := chartHeight; row >= 1; row-- {
		threshold := float64(row) / float64(chartHeight) * float64(maxBacklog)
		sb.WriteString(fmt.Sprintf("%6d |", int(math.Ceil(threshold))))
		for _, t := range samples {
			if float64(t.Backlog) >= threshold {
				sb.WriteString("█")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("       +")
	sb.WriteString(strings.Repeat("-", len(samples)))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("        %s -> %s (peak backlog %d)\n",
		clockOf(samples[0]), clockOf(samples[len(samples)-1]), maxBacklog))
	return sb.String()
}

// sample thins ticks down to at most width columns, keeping order.
func sample(ticks []sim.TickRecord, width int) []sim.TickRecord {
	if len(ticks) <= width {
		return ticks
	}
	out := make([]sim.TickRecord, 0, width)
	for i := 0; i < width; i++ {
		out = append(out, ticks[i*len(ticks)/width])
	}
	return out
}

func clockOf(t sim.TickRecord) string {
	return sim.ClockString(t.TickMin, 1)
}

func pad(s string) string {
	if len(s) >= boardColWidth {
		return s[:boardColWidth-1] + " "
	}
	return s + strings.Repeat(" ", boardColWidth-len(s))
}

func pct(v float64) string {
	if math.IsNaN(v) {
		return "--"
	}
	return fmt.Sprintf("%.1f%%", v)
}

func minutes(v float64) string {
	if math.IsNaN(v) {
		return "--"
	}
	return fmt.Sprintf("%.1f min", v)
}
