// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim/trace"
)

// ioTracker measures the time during which at least one process is BLOCKED,
// i.e. the union of all IO intervals rather than their sum.
type ioTracker struct {
	blocked int
	since   int64
	busy    int64
}

func (t *ioTracker) enter(clock int64) {
	if t.blocked == 0 {
		t.since = clock
	}
	t.blocked++
}

func (t *ioTracker) leave(clock int64) {
	t.blocked--
	if t.blocked == 0 {
		t.busy += clock - t.since
	}
}

// Simulator is the core object that holds simulation time, the process arena and the event loop.
// All state is owned by the Simulator; nothing is shared with other runs.
type Simulator struct {
	Clock int64
	// EventQueue has all pending state transitions
	EventQueue *EventQueue
	// Processes is the arena, indexed by PID
	Processes []*Process
	Policy    Policy
	Scheduler Scheduler
	// Trace receives one record per processed event when non-nil
	Trace *trace.SimulationTrace

	rng     *RandomSource
	running *Process
	// callScheduler is set by any transition that may free the CPU or make a
	// process ready; the dispatch itself waits until the instant has settled
	callScheduler bool
	io            ioTracker
	eventCount    int
}

// NewSimulator creates a simulator for one run and queues an arrival event per process.
// Arrivals use ordered insertion, so the workload need not be sorted by arrival time.
// Panics if a preemptive policy has no positive quantum or if a process has a
// non-positive burst bound; loaders reject both before a run is built.
func NewSimulator(policy Policy, procs []*Process, rng *RandomSource) *Simulator {
	if policy.Preemptive() && policy.Quantum <= 0 {
		panic(fmt.Sprintf("NewSimulator: policy %s requires a positive quantum", policy.Selector()))
	}
	if rng == nil {
		panic("NewSimulator: rng must not be nil")
	}
	s := &Simulator{
		EventQueue: &EventQueue{},
		Processes:  procs,
		Policy:     policy,
		Scheduler:  NewScheduler(policy),
		rng:        rng,
	}
	for i, p := range procs {
		if p.PID != i {
			panic(fmt.Sprintf("NewSimulator: process at index %d has PID %d", i, p.PID))
		}
		if p.CPUBurstBound <= 0 || p.IOBurstBound <= 0 {
			panic(fmt.Sprintf("NewSimulator: process %d has non-positive burst bound (cpu=%d, io=%d)", p.PID, p.CPUBurstBound, p.IOBurstBound))
		}
		s.Schedule(Event{Time: p.ArrivalTime, PID: p.PID, From: StateCreated, To: StateReady})
	}
	return s
}

// Schedule pushes an event into the simulator's EventQueue in timestamp order.
func (sim *Simulator) Schedule(ev Event) {
	sim.EventQueue.Insert(ev, InsertOrdered)
}

// Run drains the event queue and returns the run's metrics.
func (sim *Simulator) Run() *Metrics {
	logrus.Infof("Starting %s simulation with %d processes", sim.Policy, len(sim.Processes))
	for {
		ev, ok := sim.EventQueue.PopEarliest()
		if !ok {
			break
		}
		sim.Clock = ev.Time
		sim.eventCount++
		logrus.Debugf("[t=%07d] pid=%d %s -> %s", sim.Clock, ev.PID, ev.From, ev.To)
		sim.process(ev)
		sim.dispatch()
	}
	logrus.Infof("[t=%07d] Simulation ended after %d events", sim.Clock, sim.eventCount)
	return ComputeMetrics(sim.Processes, sim.io.busy)
}

// EventCount returns the number of events processed so far.
func (sim *Simulator) EventCount() int {
	return sim.eventCount
}

// IOBusyTime returns the time during which at least one process was blocked.
func (sim *Simulator) IOBusyTime() int64 {
	return sim.io.busy
}

// process applies the transition carried by ev.
func (sim *Simulator) process(ev Event) {
	p := sim.Processes[ev.PID]
	rec := trace.TransitionRecord{
		Clock:   sim.Clock,
		PID:     p.PID,
		Elapsed: sim.Clock - p.StateTime,
		From:    ev.From.String(),
		To:      ev.To.String(),
	}

	switch ev.To {
	case StateReady:
		p.transition(StateReady, sim.Clock)
		if ev.From == StateBlocked {
			sim.io.leave(sim.Clock)
		}
		sim.Scheduler.Admit(p)
		sim.callScheduler = true

	case StateRunning:
		rec.Elapsed = p.transition(StateRunning, sim.Clock)
		p.CPUWait += rec.Elapsed
		burst, preempt := sim.cpuBurst(p)
		if burst > p.Remaining {
			burst = p.Remaining
		}
		p.Remaining -= burst
		rec.CPUBurst = burst

		next := StateBlocked
		switch {
		case p.Remaining == 0:
			next = StateFinished
		case preempt:
			next = StatePreempted
		}
		sim.Schedule(Event{Time: sim.Clock + burst, PID: p.PID, From: StateRunning, To: next})

	case StateBlocked:
		sim.releaseCPU(p)
		if sim.Policy.Aging() {
			p.Priority = p.StaticPriority
		}
		ioBurst := int64(sim.rng.Next(p.IOBurstBound) + 1)
		p.IOTime += ioBurst
		rec.IOBurst = ioBurst
		p.transition(StateBlocked, sim.Clock)
		sim.io.enter(sim.Clock)
		sim.Schedule(Event{Time: sim.Clock + ioBurst, PID: p.PID, From: StateBlocked, To: StateReady})

	case StatePreempted:
		sim.releaseCPU(p)
		p.transition(StateReady, sim.Clock)
		sim.Scheduler.Admit(p)

	case StateFinished:
		sim.releaseCPU(p)
		p.transition(StateFinished, sim.Clock)
		p.FinishTime = sim.Clock
		p.Turnaround = p.FinishTime - p.ArrivalTime
		logrus.Debugf("Finished pid %d at %d (turnaround %d)", p.PID, p.FinishTime, p.Turnaround)

	default:
		panic(fmt.Sprintf("unhandled event %s", ev))
	}

	rec.Remaining = p.Remaining
	rec.CarriedBurst = p.CarriedBurst
	rec.Priority = p.Priority
	if sim.Trace != nil {
		sim.Trace.RecordTransition(rec)
	}
}

// cpuBurst draws the CPU time p runs in this dispatch and reports whether the
// slice ends in a preemption rather than a burst completion.
// The caller clips the result to the remaining demand.
func (sim *Simulator) cpuBurst(p *Process) (burst int64, preempt bool) {
	if !sim.Policy.Preemptive() {
		return int64(sim.rng.Next(p.CPUBurstBound) + 1), false
	}
	quantum := sim.Policy.Quantum
	if p.CarriedBurst == 0 {
		p.CarriedBurst = int64(sim.rng.Next(p.CPUBurstBound) + 1)
	}
	burst = p.CarriedBurst
	if burst > quantum {
		burst = quantum
		preempt = true
	}
	p.CarriedBurst -= burst
	if sim.Policy.Aging() {
		p.Priority--
	}
	return burst, preempt
}

// releaseCPU clears the running slot when its occupant leaves RUNNING.
func (sim *Simulator) releaseCPU(p *Process) {
	if sim.running != p {
		panic(fmt.Sprintf("process %d left RUNNING but is not on the CPU", p.PID))
	}
	sim.running = nil
	sim.callScheduler = true
}

// dispatch asks the scheduler for the next process once every event at the
// current instant has been applied, and only while the CPU is idle.
func (sim *Simulator) dispatch() {
	if !sim.callScheduler {
		return
	}
	if next, ok := sim.EventQueue.PeekTime(); ok && next == sim.Clock {
		return
	}
	sim.callScheduler = false
	if sim.running != nil {
		return
	}
	p := sim.Scheduler.Next()
	if p == nil {
		return
	}
	sim.running = p
	sim.Schedule(Event{Time: sim.Clock, PID: p.PID, From: p.State, To: StateRunning})
}
