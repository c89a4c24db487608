package report

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schedsim/schedsim/sim"
)

// fixture mirrors the single-process FCFS run of the end-to-end example.
func fixture() *Results {
	policy := sim.NewPolicy(sim.PolicyFCFS, 0)
	p := sim.NewProcess(0, sim.ProcessSpec{ArrivalTime: 0, TotalCPU: 4, CPUBurstBound: 9, IOBurstBound: 1}, 1)
	p.FinishTime = 7
	p.Turnaround = 7
	p.IOTime = 3
	m := &sim.Metrics{
		Processes: 1, TotalTime: 7, TotalCPU: 4, IOBusyTime: 3,
		CPUUtilization: 400.0 / 7, IOUtilization: 300.0 / 7,
		AvgTurnaround: 7, AvgCPUWait: 0, Throughput: 100.0 / 7, Defined: true,
	}
	return NewResults(policy, []*sim.Process{p}, m)
}

func TestWriteText_FixedWidthFormat(t *testing.T) {
	// GIVEN results of a finished run
	r := fixture()

	// WHEN rendered as text
	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))

	// THEN header, process line and summary match the fixed-width layout
	want := "FCFS\n" +
		"0000:    0    4    9    1 1 |     7     7     3     0\n" +
		"SUM: 7 57.14 42.86 7.00 0.00 14.286\n"
	assert.Equal(t, want, buf.String())
}

func TestSummaryLine_Undefined(t *testing.T) {
	assert.Equal(t, "SUM: undefined", SummaryLine(&sim.Metrics{}))
	assert.Equal(t, "SUM: undefined", SummaryLine(nil))
}

func TestWriteText_EmptyRun(t *testing.T) {
	r := NewResults(sim.NewPolicy(sim.PolicyRoundRobin, 4), nil, sim.ComputeMetrics(nil, 0))
	var buf bytes.Buffer
	require.NoError(t, r.WriteText(&buf))
	assert.Equal(t, "RR 4\nSUM: undefined\n", buf.String())
}

func TestWriteJSON_Decodes(t *testing.T) {
	r := fixture()
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, "json"))

	var got Results
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "FCFS", got.Policy)
	require.Len(t, got.Processes, 1)
	assert.Equal(t, int64(7), got.Processes[0].Turnaround)
	require.NotNil(t, got.Summary)
	assert.True(t, got.Summary.Defined)
	assert.InDelta(t, 57.142857, got.Summary.CPUUtilization, 1e-4)
}

func TestWriteTable_ContainsRowsAndSummary(t *testing.T) {
	r := fixture()
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, "table"))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "FCFS\n"))
	assert.Contains(t, out, "TURNAROUND")
	assert.Contains(t, out, "0000")
	assert.Contains(t, out, "SUM: 7 57.14 42.86 7.00 0.00 14.286")
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, fixture().Write(&buf, "xml"))
}

func TestSaveJSON_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.json")
	require.NoError(t, fixture().SaveJSON(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"policy": "FCFS"`)
}

func TestWriteComparison_OneRowPerRun(t *testing.T) {
	// GIVEN a defined and an undefined run
	empty := NewResults(sim.NewPolicy(sim.PolicySJF, 0), nil, sim.ComputeMetrics(nil, 0))
	runs := []*Results{fixture(), empty}

	// WHEN compared
	var buf bytes.Buffer
	WriteComparison(&buf, runs)
	out := buf.String()

	// THEN each policy appears with its metrics
	assert.Contains(t, out, "FCFS")
	assert.Contains(t, out, "57.14")
	assert.Contains(t, out, "14.286")
	assert.Contains(t, out, "SJF")
	assert.Contains(t, out, "undefined")
}
