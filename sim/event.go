package sim

import "fmt"

// Event is a scheduled state transition of one process.
// Events carry the process's arena index rather than a pointer, so a
// finished process can never be reached through a stale event.
type Event struct {
	Time int64        // Simulation time of the transition
	PID  int          // Index of the process in the simulator's arena
	From ProcessState // State being left
	To   ProcessState // State being entered
}

// Timestamp returns the scheduled time of the Event.
func (e Event) Timestamp() int64 {
	return e.Time
}

func (e Event) String() string {
	return fmt.Sprintf("%d %d %s -> %s", e.Time, e.PID, e.From, e.To)
}
