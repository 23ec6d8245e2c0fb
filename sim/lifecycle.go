// Implements the multi-stage lifecycle engine: a fixed worker pool walks
// orders through pick → staging → ship, one tick-unit of service at a time.

package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// LifecycleModel is the richer engine. Orders arrive one at a time via a
// Bernoulli trial, wait in a FIFO queue, and are carried through the working
// stages by whichever worker picked them up. Deterministic given a seed.
//
// The intra-tick ordering is fixed and observable: arrival, then work
// progression over every busy worker, then assignment of idle workers. A
// worker freed during progression is NOT eligible for assignment until the
// next tick, so a completed order's replacement always starts one tick
// later. Changing that rule would shift every dwell time by up to one
// tick-unit.
type LifecycleModel struct {
	cfg LifecycleConfig
	rng *rand.Rand

	workers   []*Worker
	newOrders OrderQueue
	completed []*Order

	nextID int
	tick   int64
	hist   History
}

// NewLifecycleModel validates cfg and builds a ready-to-run engine with an
// all-idle worker pool.
func NewLifecycleModel(cfg LifecycleConfig) (*LifecycleModel, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &LifecycleModel{
		cfg: cfg,
		rng: newSource(cfg.Seed),
	}
	for i := 0; i < cfg.Workers; i++ {
		m.workers = append(m.workers, &Worker{ID: i, freedTick: -1})
	}
	return m, nil
}

// Done reports whether the horizon has been reached.
func (m *LifecycleModel) Done() bool {
	return m.tick >= int64(m.cfg.Ticks)
}

// Step advances the model by one tick: arrival, progression, assignment.
func (m *LifecycleModel) Step() {
	arrived := 0
	if m.rng.Float64() < m.cfg.ArrivalProbability {
		o := &Order{ID: m.nextID, CreatedTick: m.tick, Stage: StageNew}
		m.nextID++
		m.newOrders.Enqueue(o)
		arrived = 1
	}
	m.hist.AddArrivals(arrived)

	completedNow := m.progressWorkers()
	assigned := m.assignIdleWorkers()

	minute := m.tick * int64(m.cfg.TickMinutes)
	m.hist.AddTick(TickRecord{
		TickMin:           minute,
		Arrivals:          arrived,
		Capacity:          assigned,
		Served:            completedNow,
		Backlog:           m.newOrders.Len(),
		InProgress:        m.busyWorkers(),
		CumArrivals:       m.hist.Arrived,
		CumServed:         m.hist.Served,
		CumOnTime:         m.hist.OnTime,
		OnTimePctCum:      m.hist.OnTimePct(),
		AvgDwellMinCum:    m.hist.AvgDwellMin(),
		ThroughputPerHour: m.hist.ThroughputPerHour(minute + int64(m.cfg.TickMinutes)),
	})

	logrus.Debugf("[tick %06d] arrivals=%d assigned=%d completed=%d queue=%d busy=%d",
		m.tick, arrived, assigned, completedNow, m.newOrders.Len(), m.busyWorkers())

	m.tick++
}

// progressWorkers burns one tick-unit of service on every busy worker,
// advancing stages as their durations run out. Returns the number of orders
// completed this tick.
func (m *LifecycleModel) progressWorkers() int {
	completedNow := 0
	for _, w := range m.workers {
		if w.Order == nil {
			continue
		}
		w.Remaining--
		if w.Remaining > 0 {
			continue
		}
		next, _ := w.Order.Stage.Next()
		if next == StageComplete {
			w.Order.Stage = StageComplete
			w.Order.CompletedTick = m.tick
			m.completed = append(m.completed, w.Order)

			dwellTicks := m.tick - w.Order.CreatedTick
			tickMin := int64(m.cfg.TickMinutes)
			m.hist.AddOrder(OrderRecord{
				CreatedMin: w.Order.CreatedTick * tickMin,
				ServedMin:  m.tick * tickMin,
				DwellMin:   dwellTicks * tickMin,
				OnTime:     dwellTicks <= int64(m.cfg.SLATicks),
			})

			w.Order = nil
			w.Remaining = 0
			w.freedTick = m.tick
			completedNow++
			continue
		}
		w.Order.Stage = next
		w.Remaining = m.cfg.Durations.For(next)
	}
	return completedNow
}

// assignIdleWorkers hands the oldest waiting orders to idle workers in
// worker-index order, one order per worker. Workers freed earlier in this
// same tick are skipped. Returns the number of assignments made.
func (m *LifecycleModel) assignIdleWorkers() int {
	assigned := 0
	for _, w := range m.workers {
		if m.newOrders.Len() == 0 {
			break
		}
		if w.Order != nil || w.freedTick == m.tick {
			continue
		}
		o := m.newOrders.Dequeue()
		o.Stage = WorkingStages[0]
		w.Order = o
		w.Remaining = m.cfg.Durations.For(o.Stage)
		assigned++
	}
	return assigned
}

func (m *LifecycleModel) busyWorkers() int {
	n := 0
	for _, w := range m.workers {
		if w.Order != nil {
			n++
		}
	}
	return n
}

// Run steps the model to its horizon.
func (m *LifecycleModel) Run() {
	for !m.Done() {
		m.Step()
	}
	logrus.Infof("[tick %06d] lifecycle simulation ended, completed %d of %d orders",
		m.tick, len(m.completed), m.hist.Arrived)
}

// History exposes the accumulated record for export and rendering.
// Callers must treat it as read-only.
func (m *LifecycleModel) History() *History {
	return &m.hist
}

// Workers exposes the pool for inspection. Callers must not mutate it.
func (m *LifecycleModel) Workers() []*Worker {
	return m.workers
}

// KPI derives the headline tuple from current state.
func (m *LifecycleModel) KPI() KPI {
	elapsedMin := m.tick * int64(m.cfg.TickMinutes)
	if elapsedMin < 1 {
		elapsedMin = 1
	}
	return KPI{
		OnTimePct:         m.hist.OnTimePct(),
		ThroughputPerHour: m.hist.ThroughputPerHour(elapsedMin),
		AvgDwellMin:       m.hist.AvgDwellMin(),
		Backlog:           m.newOrders.Len(),
		Clock:             ClockString(m.tick, m.cfg.TickMinutes),
	}
}

// WorkerView is a renderer-facing snapshot of one worker.
type WorkerView struct {
	ID        int
	OrderID   int // -1 when idle
	Stage     Stage
	Remaining int
}

// BoardSnapshot is the renderer-facing picture of the whole floor: order IDs
// per stage, the worker strip, and the KPI tuple. It copies engine state and
// shares nothing mutable.
type BoardSnapshot struct {
	New       []int
	Picking   []int
	Staging   []int
	Shipping  []int
	Completed []int
	Workers   []WorkerView
	KPI       KPI
}

// Board builds the current snapshot.
func (m *LifecycleModel) Board() BoardSnapshot {
	snap := BoardSnapshot{KPI: m.KPI()}
	for _, o := range m.newOrders.Items() {
		snap.New = append(snap.New, o.ID)
	}
	for _, w := range m.workers {
		wv := WorkerView{ID: w.ID, OrderID: -1}
		if w.Order != nil {
			wv.OrderID = w.Order.ID
			wv.Stage = w.Order.Stage
			wv.Remaining = w.Remaining
			switch w.Order.Stage {
			case StagePick:
				snap.Picking = append(snap.Picking, w.Order.ID)
			case StageStaging:
				snap.Staging = append(snap.Staging, w.Order.ID)
			case StageShip:
				snap.Shipping = append(snap.Shipping, w.Order.ID)
			}
		}
		snap.Workers = append(snap.Workers, wv)
	}
	for _, o := range m.completed {
		snap.Completed = append(snap.Completed, o.ID)
	}
	return snap
}
