// Tracks per-tick and per-order history for both engines, and derives the
// cumulative statistics (on-time %, throughput, average dwell) consumed by
// the rendering and export collaborators.

package sim

import (
	"fmt"
	"math"
)

// TickRecord is an immutable per-tick snapshot, appended once per tick and
// never mutated afterwards.
type TickRecord struct {
	TickMin  int64 // tick start, in simulation minutes
	Arrivals int   // orders created this tick
	Capacity int   // throughput model: capacity draw; lifecycle model: orders assigned to workers
	Served   int   // orders served/completed this tick
	Backlog  int   // orders still waiting in the queue after this tick

	// InProgress counts orders currently held by workers (always zero in the
	// throughput model, where service is instantaneous). Conservation holds
	// at every tick: CumArrivals == CumServed + Backlog + InProgress.
	InProgress int

	CumArrivals int
	CumServed   int
	CumOnTime   int

	OnTimePctCum      float64 // NaN until at least one order is served
	AvgDwellMinCum    float64 // NaN until at least one order is served
	ThroughputPerHour float64 // cumulative served scaled to orders/hour
}

// OrderRecord is an immutable snapshot of one served/completed order.
type OrderRecord struct {
	CreatedMin int64
	ServedMin  int64
	DwellMin   int64
	OnTime     bool
}

// History accumulates the full simulation record: one TickRecord per tick,
// one OrderRecord per served order, and the cumulative counters the derived
// metrics are computed from. Both engines write it; collaborators only read.
type History struct {
	Ticks  []TickRecord
	Orders []OrderRecord

	Arrived int
	Served  int
	OnTime  int

	dwellSumMin int64
}

// AddArrivals bumps the cumulative arrival counter.
func (h *History) AddArrivals(n int) {
	h.Arrived += n
}

// AddOrder appends one served-order record and folds it into the counters.
func (h *History) AddOrder(rec OrderRecord) {
	h.Orders = append(h.Orders, rec)
	h.Served++
	if rec.OnTime {
		h.OnTime++
	}
	h.dwellSumMin += rec.DwellMin
}

// AddTick appends the per-tick snapshot.
func (h *History) AddTick(rec TickRecord) {
	h.Ticks = append(h.Ticks, rec)
}

// OnTimePct is the cumulative on-time percentage among served orders.
// NaN when nothing has been served yet.
func (h *History) OnTimePct() float64 {
	if h.Served == 0 {
		return math.NaN()
	}
	return float64(h.OnTime) / float64(h.Served) * 100.0
}

// AvgDwellMin is the running average dwell, in minutes, over all served
// orders so far. NaN when nothing has been served yet.
func (h *History) AvgDwellMin() float64 {
	if h.Served == 0 {
		return math.NaN()
	}
	return float64(h.dwellSumMin) / float64(h.Served)
}

// ThroughputPerHour scales cumulative served orders to an hourly rate.
// elapsedMin is floored at one minute to guard the division.
func (h *History) ThroughputPerHour(elapsedMin int64) float64 {
	if elapsedMin < 1 {
		elapsedMin = 1
	}
	return float64(h.Served) / float64(elapsedMin) * 60.0
}

// PrintSummary displays the aggregated run statistics on stdout.
func (h *History) PrintSummary() {
	fmt.Println("=== Simulation Summary ===")
	fmt.Printf("Orders arrived  : %d\n", h.Arrived)
	fmt.Printf("Orders served   : %d\n", h.Served)
	if h.Served > 0 {
		fmt.Printf("On-time         : %d (%.1f%%)\n", h.OnTime, h.OnTimePct())
		fmt.Printf("Average dwell   : %.2f min\n", h.AvgDwellMin())
	}
	if n := len(h.Ticks); n > 0 {
		last := h.Ticks[n-1]
		fmt.Printf("Final backlog   : %d\n", last.Backlog)
		fmt.Printf("Throughput      : %.1f orders/hour\n", last.ThroughputPerHour)
	}
}

// KPI is the headline tuple consumed by renderers: read-only, derived on
// demand from engine state.
type KPI struct {
	OnTimePct         float64 // NaN when nothing served yet
	ThroughputPerHour float64
	AvgDwellMin       float64 // NaN when nothing served yet
	Backlog           int
	Clock             string // elapsed simulation time as HH:MM
}

// ClockString formats elapsed ticks as an HH:MM wall-clock value.
func ClockString(ticks int64, tickMinutes int) string {
	totalMin := ticks * int64(tickMinutes)
	return fmt.Sprintf("%02d:%02d", totalMin/60, totalMin%60)
}
