// Package sim provides the core discrete-time simulation engine for the
// warehouse order-flow simulator.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - order.go: Order lifecycle (new → pick → staging → ship → complete) and stage machine
//   - throughput.go: the single-queue capacity model (arrivals vs. picking capacity)
//   - lifecycle.go: the worker-pool scheduler that walks orders through stages
//
// # Architecture
//
// Both engines are closed, single-threaded steppers: a driver calls Step()
// once per tick (or Run() for the whole horizon), and the engine draws from
// its instance-owned random source, mutates its queue/worker state, and
// appends exactly one TickRecord to its History. Nothing inside a Step
// blocks, and two engines never share state, so independent simulations may
// run concurrently (e.g. parameter sweeps) as long as each has its own
// seeded source.
//
// Collaborators never touch engine internals; they consume History, KPI, and
// BoardSnapshot values:
//   - sim/export/: CSV tables and the optional SQLite results sink
//   - sim/render/: the ASCII warehouse board and backlog chart
package sim
