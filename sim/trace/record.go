// Package trace provides transition-trace recording for verbose simulation output.
// This package has no dependencies on sim/ — it stores pure data types, and
// the engine fills them in.
package trace

// TransitionRecord captures a single processed state-transition event.
// From and To hold the state names as the engine prints them
// (CREATED, READY, RUNNING, BLOCK, PREEMPT, DONE).
type TransitionRecord struct {
	Clock        int64
	PID          int
	Elapsed      int64 // time the process spent in its previous state
	From         string
	To           string
	CPUBurst     int64 // set on RUNNING entries: CPU time granted in this dispatch
	IOBurst      int64 // set on BLOCK entries: IO time drawn for this block
	Remaining    int64 // CPU demand left after the transition
	CarriedBurst int64 // unfinished CPU burst carried to the next dispatch
	Priority     int   // dynamic priority after the transition
}
