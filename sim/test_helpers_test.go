package sim

import (
	"fmt"
	"testing"

	"github.com/schedsim/schedsim/sim/trace"
)

// parseSpecs converts workload lines into specs. The sim package cannot import
// sim/workload from its own tests, so this is a minimal parser for fixtures.
func parseSpecs(t *testing.T, lines []string) []ProcessSpec {
	t.Helper()
	specs := make([]ProcessSpec, len(lines))
	for i, line := range lines {
		var s ProcessSpec
		if _, err := fmt.Sscan(line, &s.ArrivalTime, &s.TotalCPU, &s.CPUBurstBound, &s.IOBurstBound); err != nil {
			t.Fatalf("fixture line %d %q: %v", i, line, err)
		}
		specs[i] = s
	}
	return specs
}

// newTestSimulator builds a simulator with a transition trace attached.
func newTestSimulator(t *testing.T, selector string, specs []ProcessSpec, values []int) *Simulator {
	t.Helper()
	policy, err := ParsePolicy(selector)
	if err != nil {
		t.Fatalf("ParsePolicy(%q): %v", selector, err)
	}
	rng, err := NewRandomSource(values)
	if err != nil {
		t.Fatalf("NewRandomSource: %v", err)
	}
	s := NewSimulator(policy, NewProcesses(specs, rng), rng)
	s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelTransitions})
	return s
}

// mixedWorkload exercises blocking, preemption and simultaneous arrivals.
var mixedWorkload = []ProcessSpec{
	{ArrivalTime: 0, TotalCPU: 40, CPUBurstBound: 7, IOBurstBound: 5},
	{ArrivalTime: 0, TotalCPU: 25, CPUBurstBound: 3, IOBurstBound: 9},
	{ArrivalTime: 6, TotalCPU: 60, CPUBurstBound: 12, IOBurstBound: 2},
	{ArrivalTime: 15, TotalCPU: 8, CPUBurstBound: 20, IOBurstBound: 4},
	{ArrivalTime: 15, TotalCPU: 33, CPUBurstBound: 5, IOBurstBound: 6},
}

var mixedTrace = []int{1804289383, 846930886, 1681692777, 1714636915, 1957747793,
	424238335, 719885386, 1649760492, 596516649, 1189641421, 1025202362, 1350490027,
	783368690, 1102520059, 2044897763, 1967513926, 1365180540, 1540383426, 304089172}

var allSelectors = []string{"F", "L", "S", "R1", "R3", "P1", "P4"}
