// Defines the Process struct that models one workload entry in the simulation.
// Tracks static inputs, run-state and the accumulated per-process metrics.

package sim

import (
	"fmt"
)

// ProcessState represents the lifecycle state of a process.
// StatePreempted is only ever an event tag: the engine converts it into a
// READY entry immediately, so no process rests in it.
type ProcessState int

const (
	StateCreated ProcessState = iota
	StateReady
	StateRunning
	StateBlocked
	StatePreempted
	StateFinished
)

func (s ProcessState) String() string {
	switch s {
	case StateCreated:
		return "CREATED"
	case StateReady:
		return "READY"
	case StateRunning:
		return "RUNNING"
	case StateBlocked:
		return "BLOCK"
	case StatePreempted:
		return "PREEMPT"
	case StateFinished:
		return "DONE"
	default:
		return fmt.Sprintf("ProcessState(%d)", int(s))
	}
}

// legalTransitions lists, per resting state, the states a process may move into.
// A preemption is the RUNNING -> READY edge.
var legalTransitions = map[ProcessState][]ProcessState{
	StateCreated: {StateReady},
	StateReady:   {StateRunning},
	StateRunning: {StateBlocked, StateReady, StateFinished},
	StateBlocked: {StateReady},
}

// IsLegalTransition reports whether from → to is an edge of the process state graph.
func IsLegalTransition(from, to ProcessState) bool {
	for _, s := range legalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ProcessSpec is one parsed workload line. It is immutable and may be shared
// between runs; each run builds its own Process values from it.
type ProcessSpec struct {
	ArrivalTime   int64 // time the process becomes ready for the first time
	TotalCPU      int64 // total CPU demand
	CPUBurstBound int   // CPU bursts are drawn as Next(CPUBurstBound)+1
	IOBurstBound  int   // IO bursts are drawn as Next(IOBurstBound)+1
}

// Process models a single process's lifecycle in the simulation.
type Process struct {
	PID int // index in the simulator's process arena, assigned in workload order

	ArrivalTime    int64
	TotalCPU       int64
	CPUBurstBound  int
	IOBurstBound   int
	StaticPriority int // drawn once at load time, in [1, 4]

	State        ProcessState
	StateTime    int64 // clock of the last state change
	Remaining    int64 // CPU demand not yet executed; reaches 0 exactly once
	CarriedBurst int64 // unfinished part of a CPU burst cut by a quantum (preemptive policies only)
	Priority     int   // dynamic priority, aged by the PRIO policy

	FinishTime int64
	Turnaround int64
	IOTime     int64 // sum of IO bursts
	CPUWait    int64 // time spent READY but not RUNNING
}

// NewProcess creates a process in the CREATED state.
func NewProcess(pid int, spec ProcessSpec, priority int) *Process {
	return &Process{
		PID:            pid,
		ArrivalTime:    spec.ArrivalTime,
		TotalCPU:       spec.TotalCPU,
		CPUBurstBound:  spec.CPUBurstBound,
		IOBurstBound:   spec.IOBurstBound,
		StaticPriority: priority,
		State:          StateCreated,
		StateTime:      spec.ArrivalTime,
		Remaining:      spec.TotalCPU,
		Priority:       priority,
	}
}

// NewProcesses builds the process arena for one run. Static priorities are
// drawn from rng as Next(4)+1, one draw per process in workload order, so
// the draws happen before any burst is drawn.
func NewProcesses(specs []ProcessSpec, rng *RandomSource) []*Process {
	procs := make([]*Process, len(specs))
	for i, spec := range specs {
		procs[i] = NewProcess(i, spec, rng.Next(4)+1)
	}
	return procs
}

// IsFinished reports whether the process reached its terminal state.
func (p *Process) IsFinished() bool {
	return p.State == StateFinished
}

// transition moves p into state to at clock and returns the time spent in
// the previous state. Panics on an edge that is not part of the state graph.
func (p *Process) transition(to ProcessState, clock int64) int64 {
	if !IsLegalTransition(p.State, to) {
		panic(fmt.Sprintf("process %d: illegal transition %s -> %s at %d", p.PID, p.State, to, clock))
	}
	elapsed := clock - p.StateTime
	p.State = to
	p.StateTime = clock
	return elapsed
}

// This method returns a human-readable string representation of a Process.
func (p Process) String() string {
	return fmt.Sprintf("Process: (PID: %d, State: %s, Remaining: %d, ArrivalTime: %d)", p.PID, p.State, p.Remaining, p.ArrivalTime)
}
