package workload

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/schedsim/sim"
)

func TestLoadProcessSpecs_ValidWorkload_ParsesInOrder(t *testing.T) {
	// GIVEN a workload with two processes and a blank line
	input := "0 100 10 10\n\n  500 100 20 10\n"

	// WHEN parsed
	specs, err := LoadProcessSpecs(strings.NewReader(input))

	// THEN both processes are returned in file order
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, sim.ProcessSpec{ArrivalTime: 0, TotalCPU: 100, CPUBurstBound: 10, IOBurstBound: 10}, specs[0])
	assert.Equal(t, sim.ProcessSpec{ArrivalTime: 500, TotalCPU: 100, CPUBurstBound: 20, IOBurstBound: 10}, specs[1])
}

func TestLoadProcessSpecs_EmptyInput_NoProcesses(t *testing.T) {
	specs, err := LoadProcessSpecs(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, specs)
}

func TestLoadProcessSpecs_UnsortedArrivals_Accepted(t *testing.T) {
	// Arrival order is the engine's job; the loader only warns.
	specs, err := LoadProcessSpecs(strings.NewReader("10 5 2 2\n0 5 2 2\n"))
	require.NoError(t, err)
	require.Len(t, specs, 2)
	assert.Equal(t, int64(10), specs[0].ArrivalTime)
}

func TestLoadProcessSpecs_Malformed_ReturnsLineNumber(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  string
	}{
		{"too few fields", "0 10 2 2\n0 10 2\n", "line 2"},
		{"too many fields", "0 10 2 2 9\n", "line 1"},
		{"not an integer", "0 ten 2 2\n", "line 1"},
		{"negative arrival", "-1 10 2 2\n", "line 1"},
		{"zero demand", "0 0 2 2\n", "line 1"},
		{"zero cpu bound", "0 10 0 2\n", "line 1"},
		{"zero io bound", "0 10 2 0\n", "line 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadProcessSpecs(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "expected ErrMalformed, got %v", err)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestLoadRandomValues_ValidTrace(t *testing.T) {
	values, err := LoadRandomValues(strings.NewReader("3\n7\n0\n12\n"))
	require.NoError(t, err)
	assert.Equal(t, []int{7, 0, 12}, values)
}

func TestLoadRandomValues_ExtraValues_Ignored(t *testing.T) {
	values, err := LoadRandomValues(strings.NewReader("2 1 2 3 4"))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, values)
}

func TestLoadRandomValues_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"zero count", "0"},
		{"negative count", "-3 1 2 3"},
		{"short", "4 1 2 3"},
		{"not an integer", "2 1 x"},
		{"negative value", "2 1 -5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRandomValues(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestLoadFiles_MissingPath_ReturnsError(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.txt")

	_, err := LoadProcessSpecsFile(missing)
	assert.Error(t, err)
	_, err = LoadRandomValuesFile(missing)
	assert.Error(t, err)
}

func TestLoadFiles_RoundTripThroughWriters(t *testing.T) {
	// GIVEN specs and values written in the file formats
	dir := t.TempDir()
	specs := []sim.ProcessSpec{
		{ArrivalTime: 0, TotalCPU: 40, CPUBurstBound: 5, IOBurstBound: 7},
		{ArrivalTime: 3, TotalCPU: 12, CPUBurstBound: 2, IOBurstBound: 1},
	}
	values := []int{9, 8, 7}
	inPath := filepath.Join(dir, "input")
	rPath := filepath.Join(dir, "rfile")
	inFile, err := os.Create(inPath)
	require.NoError(t, err)
	require.NoError(t, WriteProcessSpecs(inFile, specs))
	require.NoError(t, inFile.Close())
	rFile, err := os.Create(rPath)
	require.NoError(t, err)
	require.NoError(t, WriteRandomValues(rFile, values))
	require.NoError(t, rFile.Close())

	// WHEN loaded back
	gotSpecs, err := LoadProcessSpecsFile(inPath)
	require.NoError(t, err)
	gotValues, err := LoadRandomValuesFile(rPath)
	require.NoError(t, err)

	// THEN the loaders see what the writers produced
	assert.Equal(t, specs, gotSpecs)
	assert.Equal(t, values, gotValues)
}
