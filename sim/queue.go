// Implements the EventQueue, which holds all pending state-transition events.
// Events are kept in timestamp order; equal timestamps keep insertion order.

package sim

import (
	"fmt"
	"strings"
)

// InsertMode selects how EventQueue.Insert places a new event.
type InsertMode int

const (
	// InsertOrdered places the event before the first queued event with a
	// strictly greater timestamp, so equal timestamps pop in insertion order.
	InsertOrdered InsertMode = iota
	// InsertAppend pushes the event at the tail without looking at timestamps.
	// Only safe when the caller already guarantees timestamp order.
	InsertAppend
)

// EventQueue is the simulator's time-ordered event list.
// It is a plain slice rather than a heap: a heap does not keep insertion
// order among equal timestamps, and the dispatch rules depend on it.
type EventQueue struct {
	events []Event
}

// Insert adds an event according to mode.
func (q *EventQueue) Insert(ev Event, mode InsertMode) {
	if mode == InsertAppend {
		q.events = append(q.events, ev)
		return
	}
	idx := len(q.events)
	for i, queued := range q.events {
		if queued.Time > ev.Time {
			idx = i
			break
		}
	}
	q.events = append(q.events, Event{})
	copy(q.events[idx+1:], q.events[idx:])
	q.events[idx] = ev
}

// PopEarliest removes and returns the event at the head of the queue.
// The bool is false when the queue is empty.
func (q *EventQueue) PopEarliest() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, true
}

// PeekTime returns the timestamp of the head event without removing it.
// The bool is false when the queue is empty.
func (q *EventQueue) PeekTime() (int64, bool) {
	if len(q.events) == 0 {
		return 0, false
	}
	return q.events[0].Time, true
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.events)
}

func (q *EventQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, ev := range q.events {
		sb.WriteString(fmt.Sprint(ev))
		if i < len(q.events)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}
