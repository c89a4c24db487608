package trace

import (
	"fmt"
	"io"
)

// TraceLevel controls the verbosity of transition tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelTransitions captures every processed state transition.
	TraceLevelTransitions TraceLevel = "transitions"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:        true,
	TraceLevelTransitions: true,
	"":                    true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects transition records during a simulation run.
type SimulationTrace struct {
	Config      TraceConfig
	Transitions []TransitionRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
// Returns nil for TraceLevelNone so callers can attach the result directly.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	if config.Level == TraceLevelNone || config.Level == "" {
		return nil
	}
	return &SimulationTrace{
		Config:      config,
		Transitions: make([]TransitionRecord, 0),
	}
}

// RecordTransition appends a transition record.
func (st *SimulationTrace) RecordTransition(record TransitionRecord) {
	st.Transitions = append(st.Transitions, record)
}

// Render writes one line per record, in the order the engine processed them:
//
//	<clock> <pid> <elapsed>: <from> -> <to> [details]
//
// RUNNING lines add the granted burst, the remaining demand, the carried
// burst and the dynamic priority; BLOCK lines add the IO burst and the
// remaining demand.
func (st *SimulationTrace) Render(w io.Writer) error {
	if st == nil {
		return nil
	}
	for _, r := range st.Transitions {
		if _, err := fmt.Fprintln(w, FormatRecord(r)); err != nil {
			return err
		}
	}
	return nil
}

// FormatRecord returns the text line for one record.
func FormatRecord(r TransitionRecord) string {
	head := fmt.Sprintf("%d %d %d: %s -> %s", r.Clock, r.PID, r.Elapsed, r.From, r.To)
	switch r.To {
	case "RUNNING":
		return fmt.Sprintf("%s cb=%d rem=%d cbrem=%d prio=%d", head, r.CPUBurst, r.Remaining, r.CarriedBurst, r.Priority)
	case "BLOCK":
		return fmt.Sprintf("%s ib=%d rem=%d", head, r.IOBurst, r.Remaining)
	default:
		return head
	}
}
