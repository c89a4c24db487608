package workload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_SameSeed_SameOutput(t *testing.T) {
	// GIVEN the default spec
	spec := DefaultGeneratorSpec()

	// WHEN generated twice
	p1, v1 := Generate(spec)
	p2, v2 := Generate(spec)

	// THEN outputs are identical
	assert.Equal(t, p1, p2)
	assert.Equal(t, v1, v2)
}

func TestGenerate_RespectsRangesAndOrder(t *testing.T) {
	spec := DefaultGeneratorSpec()
	spec.NumProcesses = 50
	procs, values := Generate(spec)

	require.Len(t, procs, 50)
	require.Len(t, values, spec.RandomValues)
	for i, p := range procs {
		assert.GreaterOrEqual(t, p.TotalCPU, spec.TotalCPU.Min)
		assert.LessOrEqual(t, p.TotalCPU, spec.TotalCPU.Max)
		assert.GreaterOrEqual(t, int64(p.CPUBurstBound), spec.CPUBurst.Min)
		assert.LessOrEqual(t, int64(p.CPUBurstBound), spec.CPUBurst.Max)
		assert.GreaterOrEqual(t, int64(p.IOBurstBound), spec.IOBurst.Min)
		assert.LessOrEqual(t, int64(p.IOBurstBound), spec.IOBurst.Max)
		if i > 0 {
			assert.GreaterOrEqual(t, p.ArrivalTime, procs[i-1].ArrivalTime, "arrivals must be sorted")
		}
	}
	for _, v := range values {
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, spec.RandomMax)
	}
}

func TestGenerate_ZeroArrivalGap_AllArriveAtZero(t *testing.T) {
	spec := DefaultGeneratorSpec()
	spec.MeanArrivalGap = 0
	procs, _ := Generate(spec)
	for _, p := range procs {
		assert.Equal(t, int64(0), p.ArrivalTime)
	}
}

func TestLoadGeneratorSpec_PartialYAML_KeepsDefaults(t *testing.T) {
	// GIVEN a YAML file overriding two fields
	path := filepath.Join(t.TempDir(), "gen.yaml")
	content := "num_processes: 3\ncpu_burst:\n  min: 1\n  max: 4\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	// WHEN loaded
	spec, err := LoadGeneratorSpec(path)

	// THEN overridden fields change and the rest keep defaults
	require.NoError(t, err)
	assert.Equal(t, 3, spec.NumProcesses)
	assert.Equal(t, RangeSpec{Min: 1, Max: 4}, spec.CPUBurst)
	assert.Equal(t, DefaultGeneratorSpec().IOBurst, spec.IOBurst)
	assert.Equal(t, DefaultGeneratorSpec().Seed, spec.Seed)
}

func TestLoadGeneratorSpec_UnknownField_Rejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("num_procs: 3\n"), 0o644))
	_, err := LoadGeneratorSpec(path)
	assert.Error(t, err)
}

func TestLoadGeneratorSpec_InvalidRange_Rejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("io_burst:\n  min: 0\n  max: 3\n"), 0o644))
	_, err := LoadGeneratorSpec(path)
	assert.Error(t, err)
}

func TestLoadGeneratorSpec_ExampleFile(t *testing.T) {
	// GIVEN the generator.yaml example spec
	spec, err := LoadGeneratorSpec(filepath.Join("..", "..", "examples", "generator.yaml"))
	require.NoError(t, err, "failed to load generator.yaml")

	// THEN every field is taken from the file
	assert.Equal(t, int64(7), spec.Seed)
	assert.Equal(t, 12, spec.NumProcesses)
	assert.Equal(t, RangeSpec{Min: 30, Max: 150}, spec.TotalCPU)
	assert.Equal(t, 500, spec.RandomValues)

	procs, values := Generate(*spec)
	assert.Len(t, procs, 12)
	assert.Len(t, values, 500)
}
