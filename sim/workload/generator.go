package workload

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/schedsim/schedsim/sim"
)

// RangeSpec is an inclusive integer range sampled uniformly.
type RangeSpec struct {
	Min int64 `yaml:"min"`
	Max int64 `yaml:"max"`
}

func (r RangeSpec) sample(rng *rand.Rand) int64 {
	if r.Max <= r.Min {
		return r.Min
	}
	return r.Min + rng.Int63n(r.Max-r.Min+1)
}

func (r RangeSpec) validate(name string, lowest int64) error {
	if r.Min < lowest {
		return fmt.Errorf("%s.min must be >= %d, got %d", name, lowest, r.Min)
	}
	if r.Max < r.Min {
		return fmt.Errorf("%s.max (%d) must be >= %s.min (%d)", name, r.Max, name, r.Min)
	}
	return nil
}

// GeneratorSpec describes a synthetic workload and random trace.
// Loaded from YAML via LoadGeneratorSpec(path).
type GeneratorSpec struct {
	Seed           int64     `yaml:"seed"`
	NumProcesses   int       `yaml:"num_processes"`
	MeanArrivalGap float64   `yaml:"mean_arrival_gap"` // exponential inter-arrival mean; 0 = all arrive at t=0
	TotalCPU       RangeSpec `yaml:"total_cpu"`
	CPUBurst       RangeSpec `yaml:"cpu_burst"`
	IOBurst        RangeSpec `yaml:"io_burst"`
	RandomValues   int       `yaml:"random_values"`
	RandomMax      int       `yaml:"random_max"` // trace values are drawn from [0, RandomMax)
}

// DefaultGeneratorSpec returns a small mixed CPU/IO workload.
func DefaultGeneratorSpec() GeneratorSpec {
	return GeneratorSpec{
		Seed:           42,
		NumProcesses:   8,
		MeanArrivalGap: 20,
		TotalCPU:       RangeSpec{Min: 20, Max: 200},
		CPUBurst:       RangeSpec{Min: 2, Max: 20},
		IOBurst:        RangeSpec{Min: 2, Max: 20},
		RandomValues:   1000,
		RandomMax:      1_000_000_000,
	}
}

// Validate checks field ranges.
func (g *GeneratorSpec) Validate() error {
	if g.NumProcesses < 0 {
		return fmt.Errorf("num_processes must be non-negative, got %d", g.NumProcesses)
	}
	if g.MeanArrivalGap < 0 {
		return fmt.Errorf("mean_arrival_gap must be non-negative, got %f", g.MeanArrivalGap)
	}
	if err := g.TotalCPU.validate("total_cpu", 1); err != nil {
		return err
	}
	if err := g.CPUBurst.validate("cpu_burst", 1); err != nil {
		return err
	}
	if err := g.IOBurst.validate("io_burst", 1); err != nil {
		return err
	}
	if g.RandomValues <= 0 {
		return fmt.Errorf("random_values must be positive, got %d", g.RandomValues)
	}
	if g.RandomMax <= 0 {
		return fmt.Errorf("random_max must be positive, got %d", g.RandomMax)
	}
	return nil
}

// LoadGeneratorSpec reads a YAML generator spec. Fields absent from the file
// keep the values of DefaultGeneratorSpec; unknown fields are errors.
func LoadGeneratorSpec(path string) (*GeneratorSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading generator spec: %w", err)
	}
	spec := DefaultGeneratorSpec()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing generator spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}
	return &spec, nil
}

// Generate produces a workload sorted by arrival time and a random trace.
// The same spec (including seed) always yields the same output.
func Generate(spec GeneratorSpec) ([]sim.ProcessSpec, []int) {
	rng := rand.New(rand.NewSource(spec.Seed))

	procs := make([]sim.ProcessSpec, spec.NumProcesses)
	var clock int64
	for i := range procs {
		if i > 0 && spec.MeanArrivalGap > 0 {
			clock += int64(rng.ExpFloat64() * spec.MeanArrivalGap)
		}
		procs[i] = sim.ProcessSpec{
			ArrivalTime:   clock,
			TotalCPU:      spec.TotalCPU.sample(rng),
			CPUBurstBound: int(spec.CPUBurst.sample(rng)),
			IOBurstBound:  int(spec.IOBurst.sample(rng)),
		}
	}

	values := make([]int, spec.RandomValues)
	for i := range values {
		values[i] = rng.Intn(spec.RandomMax)
	}
	return procs, values
}

// WriteProcessSpecs writes specs in the workload file format.
func WriteProcessSpecs(w io.Writer, specs []sim.ProcessSpec) error {
	bw := bufio.NewWriter(w)
	for _, s := range specs {
		if _, err := fmt.Fprintf(bw, "%d %d %d %d\n", s.ArrivalTime, s.TotalCPU, s.CPUBurstBound, s.IOBurstBound); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteRandomValues writes values in the random trace format (count first).
func WriteRandomValues(w io.Writer, values []int) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, len(values)); err != nil {
		return err
	}
	for _, v := range values {
		if _, err := fmt.Fprintln(bw, v); err != nil {
			return err
		}
	}
	return bw.Flush()
}
