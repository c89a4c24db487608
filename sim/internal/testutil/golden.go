// Package testutil provides shared test infrastructure for the simulator.
// It holds the golden dataset types and assertion helpers used across the
// sim/ and cmd/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase is one hand-verified scenario: a workload, a random trace
// and a scheduler selector, with the expected per-process and summary results.
type GoldenTestCase struct {
	Name      string          `json:"name"`
	Scheduler string          `json:"scheduler"`
	Workload  []string        `json:"workload"` // one workload line per process
	Random    []int           `json:"random"`   // trace values without the leading count
	Processes []GoldenProcess `json:"processes"`
	Metrics   GoldenMetrics   `json:"metrics"`
}

// GoldenProcess holds the expected per-process results, indexed by pid.
type GoldenProcess struct {
	Finish     int64 `json:"finish"`
	Turnaround int64 `json:"turnaround"`
	IOTime     int64 `json:"io_time"`
	CPUWait    int64 `json:"cpu_wait"`
	Priority   int   `json:"priority"`
}

// GoldenMetrics represents the expected summary of a golden test case.
type GoldenMetrics struct {
	// Exact match
	TotalTime int64 `json:"total_time"`

	// Ratios, compared with relative tolerance
	CPUUtilization float64 `json:"cpu_utilization"`
	IOUtilization  float64 `json:"io_utilization"`
	AvgTurnaround  float64 `json:"avg_turnaround"`
	AvgCPUWait     float64 `json:"avg_cpu_wait"`
	Throughput     float64 `json:"throughput"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// WriteScenarioFiles writes a golden case as a workload file and a random
// trace file (count first) under dir and returns both paths.
func WriteScenarioFiles(t *testing.T, dir string, tc GoldenTestCase) (inputPath, randPath string) {
	t.Helper()
	inputPath = filepath.Join(dir, tc.Name+".input")
	randPath = filepath.Join(dir, tc.Name+".rfile")

	var input []byte
	for _, line := range tc.Workload {
		input = append(input, line...)
		input = append(input, '\n')
	}
	if err := os.WriteFile(inputPath, input, 0o644); err != nil {
		t.Fatalf("writing workload: %v", err)
	}

	trace := []byte(strconv.Itoa(len(tc.Random)) + "\n")
	for _, v := range tc.Random {
		trace = append(trace, strconv.Itoa(v)...)
		trace = append(trace, '\n')
	}
	if err := os.WriteFile(randPath, trace, 0o644); err != nil {
		t.Fatalf("writing random trace: %v", err)
	}
	return inputPath, randPath
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
