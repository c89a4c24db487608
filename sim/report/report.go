// Package report renders the results of a finished run: the fixed-width text
// report, a tablewriter table, JSON, and the cross-policy comparison table.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/schedsim/schedsim/sim"
)

// ProcessResult is the per-process line of a report.
type ProcessResult struct {
	PID            int   `json:"pid"`
	ArrivalTime    int64 `json:"arrival_time"`
	TotalCPU       int64 `json:"total_cpu"`
	CPUBurstBound  int   `json:"cpu_burst_bound"`
	IOBurstBound   int   `json:"io_burst_bound"`
	StaticPriority int   `json:"static_priority"`
	FinishTime     int64 `json:"finish_time"`
	Turnaround     int64 `json:"turnaround"`
	IOTime         int64 `json:"io_time"`
	CPUWait        int64 `json:"cpu_wait"`
}

// Results is everything a report prints for one run.
type Results struct {
	Policy    string          `json:"policy"`
	Processes []ProcessResult `json:"processes"`
	Summary   *sim.Metrics    `json:"summary"`
}

// NewResults snapshots the process arena of a finished run.
func NewResults(policy sim.Policy, procs []*sim.Process, metrics *sim.Metrics) *Results {
	r := &Results{
		Policy:    policy.String(),
		Processes: make([]ProcessResult, len(procs)),
		Summary:   metrics,
	}
	for i, p := range procs {
		r.Processes[i] = ProcessResult{
			PID:            p.PID,
			ArrivalTime:    p.ArrivalTime,
			TotalCPU:       p.TotalCPU,
			CPUBurstBound:  p.CPUBurstBound,
			IOBurstBound:   p.IOBurstBound,
			StaticPriority: p.StaticPriority,
			FinishTime:     p.FinishTime,
			Turnaround:     p.Turnaround,
			IOTime:         p.IOTime,
			CPUWait:        p.CPUWait,
		}
	}
	return r
}

// Write renders r in the named format ("" means text).
func (r *Results) Write(w io.Writer, format string) error {
	switch format {
	case "", "text":
		return r.WriteText(w)
	case "table":
		return r.WriteTable(w)
	case "json":
		return r.WriteJSON(w)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteText writes the fixed-width report: the policy header, one line per
// process in pid order, then the SUM line.
func (r *Results) WriteText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, r.Policy); err != nil {
		return err
	}
	for _, p := range r.Processes {
		if _, err := fmt.Fprintf(w, "%04d: %4d %4d %4d %4d %1d | %5d %5d %5d %5d\n",
			p.PID, p.ArrivalTime, p.TotalCPU, p.CPUBurstBound, p.IOBurstBound, p.StaticPriority,
			p.FinishTime, p.Turnaround, p.IOTime, p.CPUWait); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, SummaryLine(r.Summary))
	return err
}

// SummaryLine formats the SUM line; a run whose ratios are undefined prints
// "SUM: undefined".
func SummaryLine(m *sim.Metrics) string {
	if m == nil || !m.Defined {
		return "SUM: undefined"
	}
	return fmt.Sprintf("SUM: %d %.2f %.2f %.2f %.2f %.3f",
		m.TotalTime, m.CPUUtilization, m.IOUtilization, m.AvgTurnaround, m.AvgCPUWait, m.Throughput)
}

// WriteTable writes the same data as WriteText as a table, with the summary
// in the footer.
func (r *Results) WriteTable(w io.Writer) error {
	if _, err := fmt.Fprintln(w, r.Policy); err != nil {
		return err
	}
	rows := make([][]string, 0, len(r.Processes))
	for _, p := range r.Processes {
		rows = append(rows, []string{
			fmt.Sprintf("%04d", p.PID),
			itoa(p.ArrivalTime),
			itoa(p.TotalCPU),
			strconv.Itoa(p.CPUBurstBound),
			strconv.Itoa(p.IOBurstBound),
			strconv.Itoa(p.StaticPriority),
			itoa(p.FinishTime),
			itoa(p.Turnaround),
			itoa(p.IOTime),
			itoa(p.CPUWait),
		})
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"PID", "Arrival", "CPU", "CB", "IB", "Prio", "Finish", "Turnaround", "IO", "Wait"})
	table.AppendBulk(rows)
	if m := r.Summary; m != nil && m.Defined {
		table.SetFooter([]string{"", "", "", "", "", "",
			fmt.Sprintf("Total\n%d", m.TotalTime),
			fmt.Sprintf("Average\n%.2f", m.AvgTurnaround),
			fmt.Sprintf("IO\n%.2f%%", m.IOUtilization),
			fmt.Sprintf("Average\n%.2f", m.AvgCPUWait)})
	}
	table.Render()
	_, err := fmt.Fprintln(w, SummaryLine(r.Summary))
	return err
}

// WriteJSON writes r as indented JSON.
func (r *Results) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// SaveJSON writes r as JSON to path.
func (r *Results) SaveJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	if err := r.WriteJSON(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteComparison writes one table row of summary metrics per run.
func WriteComparison(w io.Writer, runs []*Results) {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		m := r.Summary
		if m == nil || !m.Defined {
			rows = append(rows, []string{r.Policy, "undefined", "", "", "", "", "", ""})
			continue
		}
		rows = append(rows, []string{
			r.Policy,
			itoa(m.TotalTime),
			fmt.Sprintf("%.2f", m.CPUUtilization),
			fmt.Sprintf("%.2f", m.IOUtilization),
			fmt.Sprintf("%.2f", m.AvgTurnaround),
			fmt.Sprintf("%.2f", m.Turnaround.P90),
			fmt.Sprintf("%.2f", m.AvgCPUWait),
			fmt.Sprintf("%.3f", m.Throughput),
		})
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Total", "CPU%", "IO%", "Turnaround", "P90 Turnaround", "Wait", "Throughput"})
	table.AppendBulk(rows)
	table.Render()
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
