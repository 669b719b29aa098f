// Package cmd wires the nebula genotyper's subcommands onto a cobra
// root command, ported from the teacher's unikmer/cmd/root.go
// persistent-flags-plus-subcommand-registration structure.
package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/shenwei356/nebula/internal/config"
	"github.com/shenwei356/nebula/internal/logging"
)

// RootCmd is the base command when nebula is called without subcommands.
var RootCmd = &cobra.Command{
	Use:   "nebula",
	Short: "SV genotyping via k-mer counting and linear programming",
	Long: `nebula - structural variant genotyper

Genotypes deletions and inversions in a sequenced sample genome by
counting k-mers and solving a linear program that allocates observed
k-mer counts to candidate SV events.
`,
}

// Execute runs the root command; called once from main.main.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultThreads := runtime.NumCPU()
	if defaultThreads > 2 {
		defaultThreads = 2
	}
	RootCmd.PersistentFlags().IntP("threads", "j", defaultThreads, "number of worker threads to use")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "print verbose progress information")
	RootCmd.PersistentFlags().IntP("k", "k", 31, "k-mer length (<=32)")
	RootCmd.PersistentFlags().Int("read-length", 100, "sample read length")
	RootCmd.PersistentFlags().Int("radius", 50, "breakpoint grid search radius R")
	RootCmd.PersistentFlags().Float64("coverage", 30, "sample mean read depth")
	RootCmd.PersistentFlags().Bool("simulation", false, "use in-memory map providers instead of mmap index providers")
}

// configFromFlags builds an internal/config.Configuration from the
// persistent flags every subcommand shares (spec.md §9: no
// package-level singleton — this is constructed fresh per invocation
// and threaded explicitly into component constructors).
func configFromFlags(cmd *cobra.Command) config.Configuration {
	threads, _ := cmd.Flags().GetInt("threads")
	k, _ := cmd.Flags().GetInt("k")
	readLength, _ := cmd.Flags().GetInt("read-length")
	radius, _ := cmd.Flags().GetInt("radius")
	coverage, _ := cmd.Flags().GetFloat64("coverage")
	simulation, _ := cmd.Flags().GetBool("simulation")

	return config.Configuration{
		K:          k,
		ReadLength: readLength,
		Radius:     radius,
		Coverage:   coverage,
		MaxThreads: threads,
		Simulation: simulation,
	}
}

func verboseFlag(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("verbose")
	return v
}

// loggerFor builds a named, verbosity-aware internal/logging.Logger
// for one subcommand invocation.
func loggerFor(name string, cmd *cobra.Command) *logging.Logger {
	return logging.New(name, verboseFlag(cmd))
}

func checkError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
