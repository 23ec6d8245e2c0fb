// Implements the single-queue throughput model: stochastic arrivals fill a
// FIFO queue that a stochastic picking capacity drains, minute by minute.

package sim

import (
	"math"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// ThroughputModel is the simple engine: an order is just its arrival
// timestamp, service is instantaneous once capacity reaches it, and the only
// question is how deep the backlog gets. Deterministic given a seed.
type ThroughputModel struct {
	cfg ThroughputConfig
	rng *rand.Rand

	arrivals RateSampler
	capacity RateSampler

	queue ArrivalQueue
	hist  History

	tick       int64 // ticks completed so far
	totalTicks int
	slaMin     int64
}

// NewThroughputModel validates cfg and builds a ready-to-run engine.
func NewThroughputModel(cfg ThroughputConfig) (*ThroughputModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// Per-hour rates become per-tick rates in the tick's own minute span.
	perTick := float64(cfg.TickMinutes) / 60.0
	return &ThroughputModel{
		cfg:        cfg,
		rng:        newSource(cfg.Seed),
		arrivals:   RateSampler{Mean: cfg.ArrivalMeanPerHour * perTick, Std: cfg.ArrivalStdPerHour * perTick},
		capacity:   RateSampler{Mean: cfg.PickMeanPerHour * perTick, Std: cfg.PickStdPerHour * perTick},
		totalTicks: cfg.TotalTicks(),
		slaMin:     int64(math.Round(cfg.SLAHours * 60)),
	}, nil
}

// Done reports whether the horizon has been reached.
func (m *ThroughputModel) Done() bool {
	return m.tick >= int64(m.totalTicks)
}

// Step advances the model by one tick. The intra-tick order is fixed:
// arrivals enqueue, then capacity serves from the head. A tick with zero
// arrivals and zero capacity is a valid no-op; there is no early exit on an
// empty queue.
func (m *ThroughputModel) Step() {
	minute := m.tick * int64(m.cfg.TickMinutes)

	arrived := m.arrivals.Sample(m.rng)
	for i := 0; i < arrived; i++ {
		m.queue.Enqueue(minute)
	}
	m.hist.AddArrivals(arrived)

	capacity := m.capacity.Sample(m.rng)

	served := 0
	for served < capacity && m.queue.Len() > 0 {
		createdMin, _ := m.queue.Dequeue()
		dwell := minute - createdMin
		m.hist.AddOrder(OrderRecord{
			CreatedMin: createdMin,
			ServedMin:  minute,
			DwellMin:   dwell,
			OnTime:     dwell <= m.slaMin,
		})
		served++
	}

	backlog := m.queue.Len()
	m.hist.AddTick(TickRecord{
		TickMin:           minute,
		Arrivals:          arrived,
		Capacity:          capacity,
		Served:            served,
		Backlog:           backlog,
		CumArrivals:       m.hist.Arrived,
		CumServed:         m.hist.Served,
		CumOnTime:         m.hist.OnTime,
		OnTimePctCum:      m.hist.OnTimePct(),
		AvgDwellMinCum:    m.hist.AvgDwellMin(),
		ThroughputPerHour: m.hist.ThroughputPerHour(minute + 1),
	})

	logrus.Debugf("[tick %06d] arrivals=%d capacity=%d served=%d backlog=%d",
		m.tick, arrived, capacity, served, backlog)

	m.tick++
}

// Run steps the model to its horizon.
func (m *ThroughputModel) Run() {
	for !m.Done() {
		m.Step()
	}
	logrus.Infof("[tick %06d] throughput simulation ended, served %d of %d orders",
		m.tick, m.hist.Served, m.hist.Arrived)
}

// History exposes the accumulated record for export and rendering.
// Callers must treat it as read-only.
func (m *ThroughputModel) History() *History {
	return &m.hist
}

// KPI derives the headline tuple from current state.
func (m *ThroughputModel) KPI() KPI {
	elapsedMin := m.tick * int64(m.cfg.TickMinutes)
	if elapsedMin < 1 {
		elapsedMin = 1
	}
	return KPI{
		OnTimePct:         m.hist.OnTimePct(),
		ThroughputPerHour: m.hist.ThroughputPerHour(elapsedMin),
		AvgDwellMin:       m.hist.AvgDwellMin(),
		Backlog:           m.queue.Len(),
		Clock:             ClockString(m.tick, m.cfg.TickMinutes),
	}
}
