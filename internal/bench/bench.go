// Tool bench benchmarks the search package.
//
// The benchmark runs expectiminimax on several hand-authored battle
// scenarios and outputs the total node count and nodes per second.
// Grounded on the teacher's internal/bench/bench.go (three fixed games run
// through a fixed-depth search, summing eng.Stats.Nodes); here the "games"
// are battle matchups built from tables.go's seed species, and "nodes" are
// expectiminimax tree nodes rather than chess positions.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/battlecore/battlecore/engine"
	"github.com/battlecore/battlecore/search"
)

var depth = flag.Int("depth", 5, "depth to search to")

// scenarioInfo is one fixed battle matchup to benchmark, analogous to the
// teacher's gameInfo: a description plus enough to rebuild the starting
// state deterministically.
type scenarioInfo struct {
	description string
	build       func() *engine.State
}

// scenarios are the fixed battles played through the search at *depth.
// Unlike the teacher's downloaded games, these matchups are hand-authored
// from tables.go's seed species/moves (spec.md §1's "opaque lookup
// dictionaries", given a small realistic seed rather than a full dex) so
// the benchmark has no external data dependency.
var scenarios = []scenarioInfo{
	{"squirtle vs charmander, neutral field", buildSquirtleVsCharmander},
	{"gengar vs tyranitar, both near full HP", buildGengarVsTyranitar},
	{"bulbasaur vs gengar, status pressure", buildBulbasaurVsGengar},
}

func mustCreature(species string, moveIDs []string) engine.Creature {
	c, err := engine.NewCreatureFromSpecies(species, 100, moveIDs)
	if err != nil {
		log.Fatalf("building %s: %v", species, err)
	}
	return c
}

func buildSquirtleVsCharmander() *engine.State {
	st := engine.NewState()
	st.SideOne.Pokemon[0] = mustCreature("squirtle", []string{"watergun", "protect", "rest", "toxic"})
	st.SideTwo.Pokemon[0] = mustCreature("charmander", []string{"flamethrower", "willowisp", "substitute", "splash"})
	return st
}

func buildGengarVsTyranitar() *engine.State {
	st := engine.NewState()
	st.SideOne.Pokemon[0] = mustCreature("gengar", []string{"hex", "thunderbolt", "painsplit", "substitute"})
	st.SideTwo.Pokemon[0] = mustCreature("tyranitar", []string{"stoneedge", "knockoff", "pursuit", "rest"})
	return st
}

func buildBulbasaurVsGengar() *engine.State {
	st := engine.NewState()
	st.SideOne.Pokemon[0] = mustCreature("bulbasaur", []string{"toxic", "protect", "knockoff", "rest"})
	st.SideTwo.Pokemon[1] = mustCreature("gengar", []string{"hex", "willowisp", "thief", "substitute"})
	st.SideTwo.ActiveIndex = 1
	return st
}

// eval returns the number of expectiminimax tree nodes needed to search s.build() to depth.
func (s *scenarioInfo) eval(depth int) uint64 {
	st := s.build()
	deadline := search.NewDeadline(24 * time.Hour) // depth-capped, not time-capped
	rec := &search.RecordingLogger{}
	cfg := search.ExpectiminimaxConfig{
		Policy:           engine.RollAverage,
		ProbabilityFloor: 1e-9,
		MaxDepth:         depth + 1, // searches depths 0..depth
		Logger:           rec,
	}
	search.RunExpectiminimax(st, deadline, cfg)
	return rec.Last.Nodes
}

// evalAll evaluates every scenario at ply depth.
func evalAll(depth int) (uint64, float64) {
	start := time.Now()
	var nodes uint64
	for i := range scenarios {
		n := scenarios[i].eval(depth)
		nodes += n
		log.Printf("#%d %d %s\n", i, n, scenarios[i].description)
	}
	elapsed := time.Since(start)
	return nodes, float64(nodes) / elapsed.Seconds()
}

func main() {
	flag.Parse()
	nodes, nps := evalAll(*depth)
	fmt.Printf("nodes %d\n", nodes)
	fmt.Printf("  nps %.0f\n", nps)
}
