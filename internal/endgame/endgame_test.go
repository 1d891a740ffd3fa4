// Package endgame regression-tests the search the way the teacher's
// internal/mates package does: a small set of positions with a known best
// move, run through the search at a fixed depth, tallying solved/failed.
// Grounded directly on internal/mates/mates_test.go's helper/TestMateIn1/
// TestMateIn2 shape (read a puzzle, search it, compare pv[0], tally
// failures against an expected count). Chess has a large public corpus of
// hand-solved mate-in-N EPD files to read from; no battle equivalent
// exists, so the scenarios here are hand-built the same way
// internal/bench/bench.go's are, rather than loaded from testdata.
package endgame

import (
	"testing"
	"time"

	"github.com/battlecore/battlecore/engine"
	"github.com/battlecore/battlecore/notation"
	"github.com/battlecore/battlecore/search"
)

// puzzle is one scenario: a starting state, the depth to search it at, and
// the expected best action for side one.
type puzzle struct {
	description string
	state       *engine.State
	depth       int
	expected    string
}

func mustCreature(t *testing.T, species string, moveIDs []string) engine.Creature {
	t.Helper()
	c, err := engine.NewCreatureFromSpecies(species, 100, moveIDs)
	if err != nil {
		t.Fatalf("building %s: %v", species, err)
	}
	return c
}

// lethalIn1 returns puzzles solvable at depth 1: the opponent's active
// creature is down to 1 HP and side one holds one damaging move alongside a
// no-op status move, so any non-zero roll lethals it and the search's
// rolloutValue scores the resulting state as a known win (spec.md §4.8).
func lethalIn1(t *testing.T) []puzzle {
	t.Helper()
	var out []puzzle

	build := func(attacker, damagingMove, defender string) *engine.State {
		st := engine.NewState()
		st.SideOne.Pokemon[0] = mustCreature(t, attacker, []string{damagingMove, "splash"})
		def := mustCreature(t, defender, []string{"splash"})
		def.HP = 1
		st.SideTwo.Pokemon[0] = def
		return st
	}

	// depth 2 so RunExpectiminimax's iterative-deepening loop (0..depth-1)
	// actually reaches plies[1], the first pass that calls
	// GenerateInstructions instead of returning the rollout value for every
	// action pair unconditionally.
	out = append(out,
		puzzle{"squirtle watergun vs 1hp charmander", build("squirtle", "watergun", "charmander"), 2, "watergun"},
		puzzle{"gengar thunderbolt vs 1hp squirtle", build("gengar", "thunderbolt", "squirtle"), 2, "thunderbolt"},
		puzzle{"tyranitar stoneedge vs 1hp gengar", build("tyranitar", "stoneedge", "gengar"), 2, "stoneedge"},
	)
	return out
}

func helper(t *testing.T, puzzles []puzzle, allowedFailures int) {
	t.Helper()
	failed := 0
	for _, p := range puzzles {
		deadline := search.NewDeadline(5 * time.Second)
		matrix := search.RunExpectiminimax(p.state, deadline, search.ExpectiminimaxConfig{
			Policy:           engine.RollAverage,
			ProbabilityFloor: 1e-9,
			MaxDepth:         p.depth,
		})

		chosen := bestAction(matrix)
		name, err := notation.FormatAction(p.state, engine.SideOne, chosen)
		if err != nil {
			t.Fatalf("%s: formatting chosen action: %v", p.description, err)
		}

		if name != p.expected {
			failed++
			t.Logf("%s: expected %q, got %q", p.description, p.expected, name)
		}
	}
	if failed > allowedFailures {
		t.Errorf("failed %d out of %d puzzles, allowed %d", failed, len(puzzles), allowedFailures)
	}
}

// bestAction mirrors solve.go's row-selection rule: side-one's best
// worst-case action from the payoff matrix.
func bestAction(matrix search.PayoffMatrix) engine.Option {
	bestIdx, best := 0, -1.0
	for i, row := range matrix.Values {
		worst := 1.0
		for _, v := range row {
			if v < worst {
				worst = v
			}
		}
		if worst > best {
			best, bestIdx = worst, i
		}
	}
	if len(matrix.SideOneActions) == 0 {
		return engine.Option{Kind: engine.OptionNoOp}
	}
	return matrix.SideOneActions[bestIdx]
}

func TestLethalIn1(t *testing.T) {
	helper(t, lethalIn1(t), 0)
}
