package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/workload"
)

var (
	// CLI flags for synthetic input generation
	genSpecPath    string // Optional YAML generator spec
	genSeed        int64  // Overrides the spec seed when set
	genProcesses   int    // Overrides the spec process count when set
	genWorkloadOut string // Workload output file ("" = stdout)
	genRandomOut   string // Random trace output file (required)
)

// resolveGeneratorSpec loads the generator spec and applies explicit flag overrides.
func resolveGeneratorSpec(path string, changed func(name string) bool) (*workload.GeneratorSpec, error) {
	spec := workload.DefaultGeneratorSpec()
	if path != "" {
		loaded, err := workload.LoadGeneratorSpec(path)
		if err != nil {
			return nil, err
		}
		spec = *loaded
	}
	if changed("seed") {
		spec.Seed = genSeed
	}
	if changed("processes") {
		spec.NumProcesses = genProcesses
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generator spec: %w", err)
	}
	return &spec, nil
}

func writeTo(path string, write func(w io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// generateCmd writes a synthetic workload file and random trace file
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a synthetic workload and random trace",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		spec, err := resolveGeneratorSpec(genSpecPath, cmd.Flags().Changed)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if genRandomOut == "" {
			logrus.Fatalf("--random-out is required")
		}
		specs, values := workload.Generate(*spec)

		if err := writeTo(genWorkloadOut, func(w io.Writer) error { return workload.WriteProcessSpecs(w, specs) }); err != nil {
			logrus.Fatalf("writing workload: %v", err)
		}
		if err := writeTo(genRandomOut, func(w io.Writer) error { return workload.WriteRandomValues(w, values) }); err != nil {
			logrus.Fatalf("writing random trace: %v", err)
		}
		logrus.Infof("Generated %d processes (seed %d, total demand %d) and %d random values",
			len(specs), spec.Seed, totalDemand(specs), len(values))
	},
}

func totalDemand(specs []sim.ProcessSpec) int64 {
	var sum int64
	for _, s := range specs {
		sum += s.TotalCPU
	}
	return sum
}

func init() {
	generateCmd.Flags().StringVar(&genSpecPath, "spec", "", "Path to YAML generator spec")
	generateCmd.Flags().Int64Var(&genSeed, "seed", 42, "Seed for workload generation (overrides spec)")
	generateCmd.Flags().IntVar(&genProcesses, "processes", 8, "Number of processes (overrides spec)")
	generateCmd.Flags().StringVar(&genWorkloadOut, "workload-out", "", "Workload output file (default stdout)")
	generateCmd.Flags().StringVar(&genRandomOut, "random-out", "", "Random trace output file")
	rootCmd.AddCommand(generateCmd)
}
