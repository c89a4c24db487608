package sim

import (
	"errors"
	"fmt"
)

// ErrEmptyTrace is returned when a RandomSource is built from no values.
var ErrEmptyTrace = errors.New("random trace is empty")

// RandomSource replays a fixed integer sequence cyclically.
// Every stochastic quantity in a run (priorities, CPU bursts, IO bursts) is
// drawn from it, so two runs over the same sequence are bit-for-bit identical.
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
type RandomSource struct {
	values []int
	cursor int
}

// NewRandomSource creates a RandomSource over a copy of values.
func NewRandomSource(values []int) (*RandomSource, error) {
	if len(values) == 0 {
		return nil, ErrEmptyTrace
	}
	v := make([]int, len(values))
	copy(v, values)
	return &RandomSource{values: v}, nil
}

// Next returns values[cursor] mod bound and advances the cursor, wrapping at the end.
// Panics if bound is not positive; loaders reject zero bounds before a run starts.
func (r *RandomSource) Next(bound int) int {
	if bound <= 0 {
		panic(fmt.Sprintf("RandomSource.Next: bound must be positive, got %d", bound))
	}
	n := r.values[r.cursor] % bound
	r.cursor = (r.cursor + 1) % len(r.values)
	return n
}

// Len returns the length of the cycle.
func (r *RandomSource) Len() int {
	return len(r.values)
}

// Cursor returns the index of the next value to be consumed.
func (r *RandomSource) Cursor() int {
	return r.cursor
}
