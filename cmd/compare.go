package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/schedsim/schedsim/sim"
	"github.com/schedsim/schedsim/sim/report"
)

var compareQuantum int64 // Quantum for the preemptive policies in compare

// runComparison runs every policy in selector order over the same inputs.
func runComparison(in *inputs, quantum int64) ([]*report.Results, error) {
	runs := make([]*report.Results, 0, len(sim.AllPolicyKinds))
	for _, kind := range sim.AllPolicyKinds {
		policy := sim.NewPolicy(kind, quantum)
		results, _, err := runPolicy(policy, in, false)
		if err != nil {
			return nil, err
		}
		logrus.Infof("%s: %s", policy, report.SummaryLine(results.Summary))
		runs = append(runs, results)
	}
	return runs, nil
}

// compareCmd runs every policy on one workload and tabulates the summaries
var compareCmd = &cobra.Command{
	Use:   "compare [flags] <inputfile> <randfile>",
	Short: "Run every scheduling policy on the same workload and compare summaries",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		setLogLevel()

		bundle, err := loadBundle(configPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		opts := resolveOptions(runOptions{Quantum: compareQuantum}, bundle, cmd.Flags().Changed)
		if opts.Quantum <= 0 {
			logrus.Fatalf("--quantum must be positive, got %d", opts.Quantum)
		}

		in, err := loadInputs(args[0], args[1])
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		runs, err := runComparison(in, opts.Quantum)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		report.WriteComparison(os.Stdout, runs)
	},
}

func init() {
	compareCmd.Flags().Int64Var(&compareQuantum, "quantum", 2, "Quantum for RR and PRIO")
	rootCmd.AddCommand(compareCmd)
}
