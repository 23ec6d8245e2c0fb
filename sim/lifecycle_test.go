package sim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lifecycleTestConfig() LifecycleConfig {
	seed := int64(42)
	return LifecycleConfig{
		Ticks:              100,
		TickMinutes:        1,
		Workers:            1,
		ArrivalProbability: 1.0,
		Durations:          StageDurations{Pick: 3, Staging: 2, Ship: 2},
		SLATicks:           60,
		Seed:               &seed,
	}
}

func TestLifecycleModel_NoArrivals_StaysIdle(t *testing.T) {
	// GIVEN arrival probability zero
	cfg := lifecycleTestConfig()
	cfg.ArrivalProbability = 0

	m, err := NewLifecycleModel(cfg)
	require.NoError(t, err)

	// WHEN the model runs to its horizon
	m.Run()

	// THEN no order ever exists and the worker never leaves idle
	require.Empty(t, m.History().Orders)
	require.Zero(t, m.History().Arrived)
	for _, w := range m.Workers() {
		require.True(t, w.Idle())
	}
	for _, rec := range m.History().Ticks {
		require.Zero(t, rec.Arrivals)
		require.Zero(t, rec.InProgress)
		require.Zero(t, rec.Backlog)
	}
}

func TestLifecycleModel_SingleWorker_PinnedTimeline(t *testing.T) {
	// One worker, one arrival per tick, durations pick=3 staging=2 ship=2.
	// Order 0 arrives at tick 0 and is assigned the same tick; its service
	// burns ticks 1-3 (pick), 4-5 (staging), 6-7 (ship), completing at tick 7.
	// The worker is freed at tick 7 and may not take order 1 until tick 8,
	// so order 1 (created tick 1) completes at tick 15 with dwell 14.
	m, err := NewLifecycleModel(lifecycleTestConfig())
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		m.Step()
	}

	// After tick 7: order 0 complete, worker idle for exactly this tick.
	h := m.History()
	require.Len(t, h.Orders, 1)
	require.Equal(t, int64(0), h.Orders[0].CreatedMin)
	require.Equal(t, int64(7), h.Orders[0].ServedMin)
	require.Equal(t, int64(7), h.Orders[0].DwellMin)
	require.True(t, m.Workers()[0].Idle(), "freed worker must stay idle for the rest of the completion tick")

	// Tick 8: the worker picks up order 1.
	m.Step()
	w := m.Workers()[0]
	require.False(t, w.Idle())
	require.Equal(t, 1, w.Order.ID)
	require.Equal(t, StagePick, w.Order.Stage)
	require.Equal(t, 3, w.Remaining)

	for i := 9; i < 16; i++ {
		m.Step()
	}
	require.Len(t, m.History().Orders, 2)
	require.Equal(t, int64(1), m.History().Orders[1].CreatedMin)
	require.Equal(t, int64(15), m.History().Orders[1].ServedMin)
	require.Equal(t, int64(14), m.History().Orders[1].DwellMin)
}

func TestLifecycleModel_ConservationAndExclusivity(t *testing.T) {
	// GIVEN a stochastic run with two workers
	cfg := lifecycleTestConfig()
	cfg.Ticks = 300
	cfg.Workers = 2
	cfg.ArrivalProbability = 0.7
	cfg.Durations = StageDurations{Pick: 5, Staging: 3, Ship: 4}

	m, err := NewLifecycleModel(cfg)
	require.NoError(t, err)

	lastStage := map[int]int{} // order ID -> highest observed stage index

	for !m.Done() {
		m.Step()

		// Conservation: every arrived order is waiting, in progress, or done.
		rec := m.History().Ticks[len(m.History().Ticks)-1]
		require.Equal(t, rec.CumArrivals, rec.CumServed+rec.Backlog+rec.InProgress,
			"conservation violated at tick %d", rec.TickMin)

		// Worker exclusivity: no order held by two workers, no worker with
		// remaining time but no order.
		seen := map[int]bool{}
		for _, w := range m.Workers() {
			if w.Order == nil {
				continue
			}
			require.False(t, seen[w.Order.ID], "order %d held by two workers", w.Order.ID)
			seen[w.Order.ID] = true
			require.Greater(t, w.Remaining, 0, "busy worker %d has no remaining service time", w.ID)
		}

		// An order in the new-orders queue must not also be on a worker.
		snap := m.Board()
		for _, id := range snap.New {
			require.False(t, seen[id], "order %d is both queued and assigned", id)
		}

		// Stage monotonicity: observed stages never move backwards.
		observe := func(ids []int, s Stage) {
			for _, id := range ids {
				idx := s.Index()
				if prev, ok := lastStage[id]; ok {
					require.GreaterOrEqual(t, idx, prev, "order %d regressed from stage %d to %d", id, prev, idx)
				}
				lastStage[id] = idx
			}
		}
		observe(snap.New, StageNew)
		observe(snap.Picking, StagePick)
		observe(snap.Staging, StageStaging)
		observe(snap.Shipping, StageShip)
		observe(snap.Completed, StageComplete)
	}

	// Every completed order went out through the terminal stage.
	for _, id := range m.Board().Completed {
		require.Equal(t, StageComplete.Index(), lastStage[id])
	}
}

func TestLifecycleModel_Determinism(t *testing.T) {
	cfg := lifecycleTestConfig()
	seed := int64(777)
	cfg.Seed = &seed
	cfg.ArrivalProbability = 0.5
	cfg.Workers = 2

	m1, err := NewLifecycleModel(cfg)
	require.NoError(t, err)
	m2, err := NewLifecycleModel(cfg)
	require.NoError(t, err)

	m1.Run()
	m2.Run()

	assertSameHistory(t, m1.History(), m2.History())
}

func TestLifecycleModel_OrderIDsMonotonic(t *testing.T) {
	cfg := lifecycleTestConfig()
	cfg.ArrivalProbability = 0.6
	cfg.Workers = 2

	m, err := NewLifecycleModel(cfg)
	require.NoError(t, err)
	m.Run()

	// Completed IDs must come out in creation order with a single worker...
	// not guaranteed with two, but creation ticks of the order records must
	// respect FIFO assignment: an order created earlier is assigned (and so
	// completes) no later than one created after it, given identical
	// per-stage durations.
	orders := m.History().Orders
	for i := 1; i < len(orders); i++ {
		require.LessOrEqual(t, orders[i-1].CreatedMin, orders[i].CreatedMin)
		require.LessOrEqual(t, orders[i-1].ServedMin, orders[i].ServedMin)
	}
}

func TestLifecycleModel_ZeroWorkers_QueueOnlyGrows(t *testing.T) {
	cfg := lifecycleTestConfig()
	cfg.Workers = 0
	cfg.ArrivalProbability = 1.0
	cfg.Ticks = 20

	m, err := NewLifecycleModel(cfg)
	require.NoError(t, err)
	m.Run()

	h := m.History()
	require.Equal(t, 20, h.Arrived)
	require.Zero(t, h.Served)
	require.Equal(t, 20, h.Ticks[len(h.Ticks)-1].Backlog)
}

func TestNewLifecycleModel_RejectsInvalidConfig(t *testing.T) {
	cfg := lifecycleTestConfig()
	cfg.Durations.Pick = 0
	_, err := NewLifecycleModel(cfg)
	require.Error(t, err)
}
