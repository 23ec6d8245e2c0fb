// Defines the Order struct that models a single customer order in the
// lifecycle engine, and the fixed stage sequence it moves through.

package sim

import "fmt"

// Stage represents one phase of order fulfillment. The sequence is a strict
// total order: new → pick → staging → ship → complete. No stage is ever
// skipped or revisited.
type Stage string

const (
	StageNew      Stage = "new"
	StagePick     Stage = "pick"
	StageStaging  Stage = "staging"
	StageShip     Stage = "ship"
	StageComplete Stage = "complete"
)

// stageOrder is the fixed total order over stages.
var stageOrder = []Stage{StageNew, StagePick, StageStaging, StageShip, StageComplete}

// WorkingStages are the stages a worker actively services, in order.
var WorkingStages = []Stage{StagePick, StageStaging, StageShip}

// Next returns the stage following s in the fixed sequence.
// ok is false when s is terminal (or unknown).
func (s Stage) Next() (next Stage, ok bool) {
	for i, st := range stageOrder {
		if st == s && i+1 < len(stageOrder) {
			return stageOrder[i+1], true
		}
	}
	return s, false
}

// Index returns the position of s in the fixed sequence, or -1.
func (s Stage) Index() int {
	for i, st := range stageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Order models a single order's lifecycle in the simulation. An order is
// exclusively owned by whichever container currently holds it -- the
// new-orders queue, one worker, or the completed list -- and ownership
// transfers only inside a tick step, never across goroutines.
type Order struct {
	ID          int   // unique, monotonically assigned
	CreatedTick int64 // tick the order arrived
	Stage       Stage

	CompletedTick int64 // meaningful only once Stage == StageComplete
}

func (o Order) String() string {
	return fmt.Sprintf("Order: (ID: %d, Stage: %s, CreatedTick: %d)", o.ID, o.Stage, o.CreatedTick)
}

// Worker is one member of the fixed fulfillment pool. It holds at most one
// order at a time and counts down the remaining service time of that
// order's current stage.
type Worker struct {
	ID        int
	Order     *Order // nil when idle
	Remaining int    // tick-units left in the current stage

	// freedTick is the tick this worker last completed an order, -1 when it
	// never has. A worker freed during work progression is not eligible for
	// reassignment until the next tick.
	freedTick int64
}

// Idle reports whether the worker currently holds no order.
func (w *Worker) Idle() bool {
	return w.Order == nil
}
