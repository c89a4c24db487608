package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/report"
	"github.com/schedsim/schedsim/sim/trace"
	"github.com/schedsim/schedsim/sim/workload"
)

var (
	// CLI flags for a single run
	scheduler   string // Policy selector: F, L, S, R<n>, P<n>
	verbose     bool   // Print the transition trace before the report
	logLevel    string // Log verbosity level
	format      string // Report format: text, table, json
	configPath  string // Optional YAML run bundle
	resultsPath string // Optional JSON results file
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "schedsim",
	Short: "Discrete-event simulator for CPU scheduling policies",
}

// runOptions are the effective settings of a run after flags and bundle are merged.
type runOptions struct {
	Scheduler string
	Verbose   bool
	Format    string
	Quantum   int64 // compare only
}

// resolveOptions merges a run bundle into the flag values. A flag the user
// set explicitly always wins; a bundle value only fills in defaults.
func resolveOptions(flags runOptions, bundle *sim.RunBundle, changed func(name string) bool) runOptions {
	opts := flags
	if bundle == nil {
		return opts
	}
	if bundle.Scheduler != "" && !changed("scheduler") {
		opts.Scheduler = bundle.Scheduler
	}
	if bundle.Verbose != nil && !changed("verbose") {
		opts.Verbose = *bundle.Verbose
	}
	if bundle.Format != "" && !changed("format") {
		opts.Format = bundle.Format
	}
	if bundle.Quantum != nil && !changed("quantum") {
		opts.Quantum = *bundle.Quantum
	}
	return opts
}

// loadBundle reads and validates the run bundle, or returns nil when path is empty.
func loadBundle(path string) (*sim.RunBundle, error) {
	if path == "" {
		return nil, nil
	}
	bundle, err := sim.LoadRunBundle(path)
	if err != nil {
		return nil, err
	}
	if err := bundle.Validate(); err != nil {
		return nil, fmt.Errorf("invalid run config %s: %w", path, err)
	}
	logrus.Infof("Loaded run config from %s", path)
	return bundle, nil
}

// inputs holds the parsed workload and random trace. Both are reused
// read-only by every run built from them.
type inputs struct {
	Specs  []sim.ProcessSpec
	Values []int
}

func loadInputs(inputPath, randPath string) (*inputs, error) {
	specs, err := workload.LoadProcessSpecsFile(inputPath)
	if err != nil {
		return nil, err
	}
	values, err := workload.LoadRandomValuesFile(randPath)
	if err != nil {
		return nil, err
	}
	return &inputs{Specs: specs, Values: values}, nil
}

// runPolicy simulates one policy over fresh processes and a fresh random
// source, so repeated calls never observe each other's draws.
func runPolicy(policy sim.Policy, in *inputs, withTrace bool) (*report.Results, *trace.SimulationTrace, error) {
	rng, err := sim.NewRandomSource(in.Values)
	if err != nil {
		return nil, nil, err
	}
	procs := sim.NewProcesses(in.Specs, rng)
	s := sim.NewSimulator(policy, procs, rng)
	if withTrace {
		s.Trace = trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelTransitions})
	}
	metrics := s.Run()
	return report.NewResults(policy, s.Processes, metrics), s.Trace, nil
}

func setLogLevel() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run [flags] <inputfile> <randfile>",
	Short: "Run the scheduling simulation for one policy",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		bundle, err := loadBundle(configPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		opts := resolveOptions(runOptions{Scheduler: scheduler, Verbose: verbose, Format: format}, bundle, cmd.Flags().Changed)

		if opts.Scheduler == "" {
			logrus.Fatalf("No scheduler given; use -s F|L|S|R<n>|P<n>")
		}
		policy, err := sim.ParsePolicy(opts.Scheduler)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if !sim.ValidFormats[opts.Format] {
			logrus.Fatalf("Unknown format %q; valid formats: text, table, json", opts.Format)
		}

		in, err := loadInputs(args[0], args[1])
		if err != nil {
			logrus.Fatalf("%v", err)
		}

		results, st, err := runPolicy(policy, in, opts.Verbose)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := st.Render(os.Stdout); err != nil {
			logrus.Fatalf("writing trace: %v", err)
		}
		if opts.Verbose {
			s := trace.Summarize(st)
			logrus.Infof("Trace: %d transitions, %d dispatches, %d preemptions, %d IO blocks",
				s.TotalTransitions, s.Dispatches, s.Preemptions, s.IOBlocks)
		}
		if err := results.Write(os.Stdout, opts.Format); err != nil {
			logrus.Fatalf("writing report: %v", err)
		}
		if resultsPath != "" {
			if err := results.SaveJSON(resultsPath); err != nil {
				logrus.Fatalf("%v", err)
			}
			logrus.Infof("Results written to %s", resultsPath)
		}
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML run config (scheduler, verbose, format, quantum)")

	runCmd.Flags().StringVarP(&scheduler, "scheduler", "s", "", "Scheduling policy: F, L, S, R<quantum>, P<quantum>")
	runCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Print every state transition before the report")
	runCmd.Flags().StringVar(&format, "format", "text", "Report format: text, table, json")
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "File to write the JSON results to")

	rootCmd.AddCommand(runCmd)
}
