// Package sim provides the discrete-event engine for CPU-scheduling simulation.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - process.go: Process lifecycle (created → ready → running → blocked → finished)
//   - event.go / queue.go: state-transition events and the time-ordered queue that holds them
//   - simulator.go: the event loop, burst arithmetic and dispatch deferral
//
// # Architecture
//
// The sim package owns the engine and the policy family; helpers live in
// sub-packages:
//   - sim/workload/: parsing of workload and random-trace files
//   - sim/trace/: transition trace recording and rendering (verbose mode)
//   - sim/report/: report rendering (fixed width, table, JSON)
//
// # Key Interfaces
//
//   - Scheduler: ready-queue discipline (Admit, Next), built from a Policy value
//   - RandomSource: the deterministic cyclic trace every burst length is drawn from
//
// A Simulator owns all of its state, so independent runs can share one process.
package sim
