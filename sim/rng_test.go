package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSource_Next_ModuloBound(t *testing.T) {
	rs, err := NewRandomSource([]int{7, 12, 3})
	require.NoError(t, err)

	assert.Equal(t, 3, rs.Next(4))  // 7 % 4
	assert.Equal(t, 2, rs.Next(5))  // 12 % 5
	assert.Equal(t, 0, rs.Next(1))  // 3 % 1
	assert.Equal(t, 0, rs.Cursor()) // wrapped
}

func TestRandomSource_WrapsCyclically(t *testing.T) {
	// GIVEN a two-value trace
	rs, err := NewRandomSource([]int{1, 2})
	require.NoError(t, err)

	// WHEN drawing five values with a large bound
	got := make([]int, 5)
	for i := range got {
		got[i] = rs.Next(100)
	}

	// THEN the sequence repeats
	assert.Equal(t, []int{1, 2, 1, 2, 1}, got)
	assert.Equal(t, 2, rs.Len())
}

func TestRandomSource_CopiesInput(t *testing.T) {
	values := []int{5}
	rs, err := NewRandomSource(values)
	require.NoError(t, err)
	values[0] = 6
	assert.Equal(t, 5, rs.Next(10))
}

func TestRandomSource_Empty_ReturnsError(t *testing.T) {
	_, err := NewRandomSource(nil)
	if !errors.Is(err, ErrEmptyTrace) {
		t.Errorf("NewRandomSource(nil): got %v, want ErrEmptyTrace", err)
	}
}

func TestRandomSource_NonPositiveBound_Panics(t *testing.T) {
	rs, err := NewRandomSource([]int{1})
	require.NoError(t, err)
	assert.Panics(t, func() { rs.Next(0) })
	assert.Panics(t, func() { rs.Next(-3) })
}

func TestRandomSource_SameTrace_SameDraws(t *testing.T) {
	values := []int{17, 4, 99, 23, 8}
	a, _ := NewRandomSource(values)
	b, _ := NewRandomSource(values)
	for i := 0; i < 12; i++ {
		bound := i%5 + 1
		if x, y := a.Next(bound), b.Next(bound); x != y {
			t.Fatalf("draw %d: got %d and %d from identical traces", i, x, y)
		}
	}
}
