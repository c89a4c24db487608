package sim

import (
	"fmt"

	"github.com/emirpasic/gods/lists/doublylinkedlist"
)

// Scheduler owns the ready queue(s) of one run.
// Admit is called on every READY entry (arrival, IO completion, preemption);
// Next is called when the CPU is idle and the current instant has settled.
// A process is referenced by at most one queue at a time.
type Scheduler interface {
	Admit(p *Process)
	Next() *Process // nil when no process is ready
	Len() int
}

// readyQueue is a doubly linked list of processes with the few insertion
// disciplines the policies need.
type readyQueue struct {
	list *doublylinkedlist.List
}

func newReadyQueue() *readyQueue {
	return &readyQueue{list: doublylinkedlist.New()}
}

func (q *readyQueue) pushBack(p *Process)  { q.list.Add(p) }
func (q *readyQueue) pushFront(p *Process) { q.list.Prepend(p) }

// insertBefore places p before the first queued process for which before
// returns true, or at the tail if there is none.
func (q *readyQueue) insertBefore(p *Process, before func(queued *Process) bool) {
	it := q.list.Iterator()
	for it.Next() {
		if before(it.Value().(*Process)) {
			q.list.Insert(it.Index(), p)
			return
		}
	}
	q.list.Add(p)
}

func (q *readyQueue) popFront() *Process {
	v, ok := q.list.Get(0)
	if !ok {
		return nil
	}
	q.list.Remove(0)
	return v.(*Process)
}

func (q *readyQueue) len() int { return q.list.Size() }

// FCFSScheduler runs processes in the order they became ready.
// Round-robin uses the same queue; the engine enforces the quantum.
type FCFSScheduler struct {
	queue *readyQueue
}

func (s *FCFSScheduler) Admit(p *Process) { s.queue.pushBack(p) }
func (s *FCFSScheduler) Next() *Process   { return s.queue.popFront() }
func (s *FCFSScheduler) Len() int         { return s.queue.len() }

// LCFSScheduler runs the most recently readied process first.
type LCFSScheduler struct {
	queue *readyQueue
}

func (s *LCFSScheduler) Admit(p *Process) { s.queue.pushFront(p) }
func (s *LCFSScheduler) Next() *Process   { return s.queue.popFront() }
func (s *LCFSScheduler) Len() int         { return s.queue.len() }

// SJFScheduler orders ready processes by remaining CPU demand (ascending).
// Equal demands keep the order in which they became ready.
// Warning: SJF can starve long processes under sustained load.
type SJFScheduler struct {
	queue *readyQueue
}

func (s *SJFScheduler) Admit(p *Process) {
	s.queue.insertBefore(p, func(queued *Process) bool {
		return queued.Remaining > p.Remaining
	})
}
func (s *SJFScheduler) Next() *Process { return s.queue.popFront() }
func (s *SJFScheduler) Len() int       { return s.queue.len() }

// PriorityScheduler keeps an active and an expired queue, each ordered by
// dynamic priority (descending, ties in ready order). A process whose
// dynamic priority has decayed to 0 gets its static priority back and waits
// in the expired queue, so lower-priority work is not starved. When the
// active queue drains the two queues swap roles.
type PriorityScheduler struct {
	queues [2]*readyQueue
	active int
}

func (s *PriorityScheduler) Admit(p *Process) {
	target := s.queues[s.active]
	if p.Priority == 0 {
		p.Priority = p.StaticPriority
		target = s.queues[1-s.active]
	}
	target.insertBefore(p, func(queued *Process) bool {
		return queued.Priority < p.Priority
	})
}

func (s *PriorityScheduler) Next() *Process {
	if s.queues[s.active].len() == 0 {
		s.active = 1 - s.active
	}
	return s.queues[s.active].popFront()
}

func (s *PriorityScheduler) Len() int {
	return s.queues[0].len() + s.queues[1].len()
}

// ActiveLen returns the number of processes in the active queue.
func (s *PriorityScheduler) ActiveLen() int {
	return s.queues[s.active].len()
}

// NewScheduler creates the Scheduler for a policy.
// Panics on unrecognized kinds.
func NewScheduler(policy Policy) Scheduler {
	switch policy.Kind {
	case PolicyFCFS, PolicyRoundRobin:
		return &FCFSScheduler{queue: newReadyQueue()}
	case PolicyLCFS:
		return &LCFSScheduler{queue: newReadyQueue()}
	case PolicySJF:
		return &SJFScheduler{queue: newReadyQueue()}
	case PolicyPriority:
		return &PriorityScheduler{queues: [2]*readyQueue{newReadyQueue(), newReadyQueue()}}
	default:
		panic(fmt.Sprintf("unhandled policy kind %d", int(policy.Kind)))
	}
}
