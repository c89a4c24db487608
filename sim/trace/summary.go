package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalTransitions int
	Dispatches       int
	Preemptions      int
	IOBlocks         int
	Completions      int
	MaxIOBurst       int64
	MeanCPUBurst     float64
	DispatchesPerPID map[int]int // pid → number of times it was put on the CPU
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		DispatchesPerPID: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalTransitions = len(st.Transitions)
	var cpuSum int64
	for _, r := range st.Transitions {
		switch r.To {
		case "RUNNING":
			summary.Dispatches++
			summary.DispatchesPerPID[r.PID]++
			cpuSum += r.CPUBurst
		case "PREEMPT":
			summary.Preemptions++
		case "BLOCK":
			summary.IOBlocks++
			if r.IOBurst > summary.MaxIOBurst {
				summary.MaxIOBurst = r.IOBurst
			}
		case "DONE":
			summary.Completions++
		}
	}
	if summary.Dispatches > 0 {
		summary.MeanCPUBurst = float64(cpuSum) / float64(summary.Dispatches)
	}

	return summary
}
