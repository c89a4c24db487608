package workload

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/schedsim/schedsim/sim"
)

// ErrMalformed is wrapped by every parse error of the workload and random files.
var ErrMalformed = errors.New("malformed input")

// LoadProcessSpecs parses a workload: one process per non-blank line, four
// whitespace-separated integers "arrival total_cpu cpu_burst_bound io_burst_bound".
// PIDs are assigned in line order by the caller (index in the returned slice).
// The file need not be sorted by arrival time; a warning is logged if it is not.
func LoadProcessSpecs(r io.Reader) ([]sim.ProcessSpec, error) {
	var specs []sim.ProcessSpec
	scanner := bufio.NewScanner(r)
	lineNo := 0
	sorted := true
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: line %d: expected 4 integers, got %d", ErrMalformed, lineNo, len(fields))
		}
		var vals [4]int64
		for i, f := range fields {
			v, err := strconv.ParseInt(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q is not an integer", ErrMalformed, lineNo, f)
			}
			vals[i] = v
		}
		spec := sim.ProcessSpec{
			ArrivalTime:   vals[0],
			TotalCPU:      vals[1],
			CPUBurstBound: int(vals[2]),
			IOBurstBound:  int(vals[3]),
		}
		if err := validateSpec(spec); err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformed, lineNo, err)
		}
		if n := len(specs); n > 0 && spec.ArrivalTime < specs[n-1].ArrivalTime {
			sorted = false
		}
		specs = append(specs, spec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading workload: %w", err)
	}
	if !sorted {
		logrus.Warnf("workload is not sorted by arrival time; arrivals are ordered by timestamp, ties in file order")
	}
	logrus.Infof("Loaded %d processes", len(specs))
	return specs, nil
}

func validateSpec(spec sim.ProcessSpec) error {
	if spec.ArrivalTime < 0 {
		return fmt.Errorf("arrival time must be non-negative, got %d", spec.ArrivalTime)
	}
	if spec.TotalCPU <= 0 {
		return fmt.Errorf("total CPU demand must be positive, got %d", spec.TotalCPU)
	}
	if spec.CPUBurstBound <= 0 {
		return fmt.Errorf("CPU burst bound must be positive, got %d", spec.CPUBurstBound)
	}
	if spec.IOBurstBound <= 0 {
		return fmt.Errorf("IO burst bound must be positive, got %d", spec.IOBurstBound)
	}
	return nil
}

// LoadRandomValues parses a random trace: the first integer is the count N,
// followed by at least N non-negative integers. Values past N are ignored.
func LoadRandomValues(r io.Reader) ([]int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)

	next := func(what string) (int, error) {
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return 0, fmt.Errorf("reading random trace: %w", err)
			}
			return 0, fmt.Errorf("%w: random trace ended before %s", ErrMalformed, what)
		}
		v, err := strconv.Atoi(scanner.Text())
		if err != nil {
			return 0, fmt.Errorf("%w: %s: %q is not an integer", ErrMalformed, what, scanner.Text())
		}
		return v, nil
	}

	count, err := next("count")
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, fmt.Errorf("%w: random trace count must be positive, got %d", ErrMalformed, count)
	}
	values := make([]int, count)
	for i := range values {
		v, err := next(fmt.Sprintf("value %d of %d", i+1, count))
		if err != nil {
			return nil, err
		}
		if v < 0 {
			return nil, fmt.Errorf("%w: value %d of %d is negative (%d)", ErrMalformed, i+1, count, v)
		}
		values[i] = v
	}
	if scanner.Scan() {
		logrus.Warnf("random trace has more than %d values; extra values ignored", count)
	}
	logrus.Infof("Loaded %d random values", count)
	return values, nil
}

// LoadProcessSpecsFile opens path and parses it with LoadProcessSpecs.
func LoadProcessSpecsFile(path string) ([]sim.ProcessSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening workload: %w", err)
	}
	defer func() { _ = f.Close() }()
	specs, err := LoadProcessSpecs(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return specs, nil
}

// LoadRandomValuesFile opens path and parses it with LoadRandomValues.
func LoadRandomValuesFile(path string) ([]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening random trace: %w", err)
	}
	defer func() { _ = f.Close() }()
	values, err := LoadRandomValues(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}
