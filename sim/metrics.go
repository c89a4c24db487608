// Derives the summary statistics of a finished run from the process arena.

package sim

// Metrics aggregates statistics about a completed simulation
// for final reporting.
type Metrics struct {
	Processes      int     `json:"processes"`
	TotalTime      int64   `json:"total_time"`      // max finish time over all processes
	TotalCPU       int64   `json:"total_cpu"`       // sum of CPU demands
	IOBusyTime     int64   `json:"io_busy_time"`    // time with at least one process blocked
	CPUUtilization float64 `json:"cpu_utilization"` // percent
	IOUtilization  float64 `json:"io_utilization"`  // percent
	AvgTurnaround  float64 `json:"avg_turnaround"`
	AvgCPUWait     float64 `json:"avg_cpu_wait"`
	Throughput     float64 `json:"throughput"` // processes per 100 time units

	Turnaround Distribution `json:"turnaround_distribution"`
	CPUWait    Distribution `json:"cpu_wait_distribution"`

	// Defined is false for a degenerate run (no processes, or nothing took
	// any time); the ratio fields are then zero and must not be reported.
	Defined bool `json:"defined"`
}

// ComputeMetrics summarizes the process arena after the event queue drained.
// ioBusy is the union of BLOCKED intervals as tracked by the engine.
func ComputeMetrics(procs []*Process, ioBusy int64) *Metrics {
	m := &Metrics{Processes: len(procs), IOBusyTime: ioBusy}
	var turnaroundSum, cpuWaitSum int64
	turnarounds := make([]int64, 0, len(procs))
	waits := make([]int64, 0, len(procs))
	for _, p := range procs {
		if p.FinishTime > m.TotalTime {
			m.TotalTime = p.FinishTime
		}
		m.TotalCPU += p.TotalCPU
		turnaroundSum += p.Turnaround
		cpuWaitSum += p.CPUWait
		turnarounds = append(turnarounds, p.Turnaround)
		waits = append(waits, p.CPUWait)
	}
	if len(procs) == 0 || m.TotalTime == 0 {
		return m
	}

	total := float64(m.TotalTime)
	count := float64(len(procs))
	m.CPUUtilization = float64(m.TotalCPU) / total * 100
	m.IOUtilization = float64(ioBusy) / total * 100
	m.AvgTurnaround = float64(turnaroundSum) / count
	m.AvgCPUWait = float64(cpuWaitSum) / count
	m.Throughput = count / (total / 100)
	m.Turnaround = NewDistribution(turnarounds)
	m.CPUWait = NewDistribution(waits)
	m.Defined = true
	return m
}
