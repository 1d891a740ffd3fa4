// Command branchcount is a perft-style integration/benchmark tool for the
// instruction generator: instead of counting chess leaf positions at a
// search depth, it counts generator branches reached by exhaustively trying
// every legal (side-one, side-two) action pair down to a given ply depth.
// Grounded on the teacher's perft/perft.go: a recursive counters-accumulator
// walked via Apply/Reverse (DoMove/UndoMove there) and a depth/split flag
// surface. There is no known-position table to check counts against.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/battlecore/battlecore/engine"
	"github.com/battlecore/battlecore/notation"
)

var (
	state      = flag.String("state", "", "serialized state to search from (required)")
	minDepth   = flag.Int("min_depth", 1, "minimum ply depth to search (inclusive)")
	maxDepth   = flag.Int("max_depth", 3, "maximum ply depth to search (inclusive)")
	depth      = flag.Int("depth", 0, "if non-zero, searches only this depth")
	splitDepth = flag.Int("split", 0, "split depth: print per-action-pair subtotals above this ply")
	floor      = flag.Float64("floor", 1e-9, "branch probability floor passed to the generator")

	splitPath []string
)

// counters tallies leaves reached after backtracking on a state up to a
// given ply, mirroring perft's counters but keyed to battle events instead
// of chess move classes.
type counters struct {
	branches   uint64 // total generator branches explored (one per Apply/Reverse)
	leaves     uint64 // terminal nodes (depth 0 reached or battle over)
	faints     uint64 // branches that left at least one creature newly fainted
	statusHits uint64 // branches that newly inflicted a major status
}

func (c *counters) add(o counters) {
	c.branches += o.branches
	c.leaves += o.leaves
	c.faints += o.faints
	c.statusHits += o.statusHits
}

func countFainted(st *engine.State) int {
	n := 0
	for i := range st.SideOne.Pokemon {
		if st.SideOne.Pokemon[i].Fainted() {
			n++
		}
	}
	for i := range st.SideTwo.Pokemon {
		if st.SideTwo.Pokemon[i].Fainted() {
			n++
		}
	}
	return n
}

func countStatus(st *engine.State) int {
	n := 0
	for i := range st.SideOne.Pokemon {
		if st.SideOne.Pokemon[i].Status != engine.StatusNone {
			n++
		}
	}
	for i := range st.SideTwo.Pokemon {
		if st.SideTwo.Pokemon[i].Status != engine.StatusNone {
			n++
		}
	}
	return n
}

func walk(st *engine.State, ply int) counters {
	if ply == 0 || st.BattleOver() != 0.0 {
		return counters{leaves: 1}
	}

	r := counters{}
	oneOpts := engine.Options(st, engine.SideOne)
	twoOpts := engine.Options(st, engine.SideTwo)

	for _, o1 := range oneOpts {
		for _, o2 := range twoOpts {
			faintedBefore := countFainted(st)
			statusBefore := countStatus(st)
			branches := engine.GenerateInstructions(st, o1, o2, engine.RollAverage, *floor)
			for _, b := range branches {
				engine.ApplyList(st, b.Instructions)
				r.branches++
				if countFainted(st) > faintedBefore {
					r.faints++
				}
				if countStatus(st) > statusBefore {
					r.statusHits++
				}
				r.add(walk(st, ply-1))
				engine.ReverseList(st, b.Instructions)
			}
		}
	}
	return r
}

func split(st *engine.State, ply, splitDepth int) counters {
	if ply == 0 || splitDepth == 0 {
		return walk(st, ply)
	}

	r := counters{}
	oneOpts := engine.Options(st, engine.SideOne)
	twoOpts := engine.Options(st, engine.SideTwo)
	for _, o1 := range oneOpts {
		for _, o2 := range twoOpts {
			name1, _ := notation.FormatAction(st, engine.SideOne, o1)
			name2, _ := notation.FormatAction(st, engine.SideTwo, o2)
			branches := engine.GenerateInstructions(st, o1, o2, engine.RollAverage, *floor)
			sub := counters{}
			for _, b := range branches {
				engine.ApplyList(st, b.Instructions)
				sub.branches++
				sub.add(split(st, ply-1, splitDepth-1))
				engine.ReverseList(st, b.Instructions)
			}
			splitPath = append(splitPath, name1+"/"+name2)
			fmt.Printf("   %2d %12d %8d split %s\n", ply, sub.branches, sub.leaves, strings.Join(splitPath, " "))
			splitPath = splitPath[:len(splitPath)-1]
			r.add(sub)
		}
	}
	return r
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	if *state == "" {
		log.Fatalln("--state is required")
	}
	if *depth != 0 {
		*minDepth = *depth
		*maxDepth = *depth
	}

	st, err := notation.Deserialize(*state)
	if err != nil {
		log.Fatalln("cannot parse --state:", err)
	}

	fmt.Printf("ply   branches       leaves       faints        status  elapsed\n")
	fmt.Printf("---+------------+------------+------------+------------+--------\n")
	for d := *minDepth; d <= *maxDepth; d++ {
		start := time.Now()
		c := split(st, d, *splitDepth)
		elapsed := time.Since(start)
		fmt.Printf("%3d %12d %12d %12d %12d %v\n", d, c.branches, c.leaves, c.faints, c.statusHits, elapsed)
	}
}
