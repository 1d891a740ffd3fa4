// Command battlecli is the spec.md §6 external-collaborator CLI: a
// line-oriented REPL over a single in-memory State, grounded on the
// teacher's zurichess/main.go + zurichess/uci.go split (a thin main that
// wires flags and a logger, a command loop that does the real work), with
// the top-level flag/mode selection routed through cobra the way codenerd's
// cmd/ tree roots its subcommands.
package main

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildVersion = "(devel)"

	cpuprofile    string
	printVersion  bool
	seed          int64
	probabilityFloor float64
)

func main() {
	root := &cobra.Command{
		Use:   "battlecli",
		Short: "battlecore's REPL: state, matchup, generate-instructions, search",
		RunE:  run,
	}
	root.Flags().StringVar(&cpuprofile, "cpuprofile", "", "write cpu profile to file")
	root.Flags().BoolVar(&printVersion, "version", false, "only print version and exit")
	root.Flags().Int64Var(&seed, "seed", 0, "seed for an MCTS sampler's PRNG; accepted but not read, since no REPL command runs MCTS")
	root.Flags().Float64Var(&probabilityFloor, "floor", 1e-12, "branches below this probability are dropped before merging")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	fmt.Printf("battlecli %s\n", buildVersion)
	if printVersion {
		return nil
	}

	if cpuprofile != "" {
		f, err := os.Create(cpuprofile)
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	repl := NewREPL(os.Stdout, logger.Sugar(), probabilityFloor)
	return repl.Run(os.Stdin)
}
