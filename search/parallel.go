package search

import (
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/battlecore/battlecore/engine"
)

// RunParallelMCTS runs n independent MCTS trees on n goroutines, each owning
// its own deep-cloned State (spec.md §5: "The search drivers are permitted
// to run on worker threads with each thread owning an independent deep copy
// of the state; no shared mutable structure crosses threads"), then sums
// per-action visit/score statistics once every tree finishes. Grounded on
// golang.org/x/sync/errgroup, the concurrency primitive both codenerd and
// galaxyCore reach for in the retrieved pack; each worker gets its own
// *rand.Rand seeded by its index so trees diversify instead of lock-stepping
// on a shared source.
func RunParallelMCTS(st *engine.State, deadline *Deadline, cfg MCTSConfig, n int) MCTSResult {
	if n <= 1 {
		return RunMCTS(st, deadline, cfg)
	}

	results := make([]MCTSResult, n)
	var g errgroup.Group
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			workerState := st.Clone()
			workerCfg := cfg
			workerCfg.Rand = rand.New(rand.NewPCG(uint64(i)+1, uint64(i)*2+1))
			workerCfg.Logger = NopLogger{} // only the caller's own logger reports progress
			results[i] = RunMCTS(workerState, deadline, workerCfg)
			return nil
		})
	}
	_ = g.Wait()

	return mergeResults(results)
}

func mergeResults(results []MCTSResult) MCTSResult {
	if len(results) == 0 {
		return MCTSResult{}
	}
	oneTotals := make(map[engine.Option]*actionStats)
	twoTotals := make(map[engine.Option]*actionStats)
	var oneOrder, twoOrder []engine.Option
	iterations := 0

	for _, r := range results {
		iterations += r.Iterations
		mergeInto(oneTotals, &oneOrder, r.SideOne)
		mergeInto(twoTotals, &twoOrder, r.SideTwo)
	}

	return MCTSResult{
		SideOne:    collectResults(oneOrder, oneTotals),
		SideTwo:    collectResults(twoOrder, twoTotals),
		Iterations: iterations,
	}
}

func mergeInto(totals map[engine.Option]*actionStats, order *[]engine.Option, results []ActionResult) {
	for _, ar := range results {
		s, ok := totals[ar.Action]
		if !ok {
			s = &actionStats{}
			totals[ar.Action] = s
			*order = append(*order, ar.Action)
		}
		s.visits += ar.Visits
		s.score += ar.Score * float64(ar.Visits)
	}
}
