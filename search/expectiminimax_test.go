package search

import (
	"testing"
	"time"

	"github.com/battlecore/battlecore/engine"
)

// TestRunExpectiminimaxPrefersLethalMove checks the search's decision end to
// end: given a damaging move that can knock out a 1-HP opponent alongside a
// no-op status move, the best row of the returned payoff matrix should be
// the damaging move.
func TestRunExpectiminimaxPrefersLethalMove(t *testing.T) {
	st := engine.NewState()
	attacker, err := engine.NewCreatureFromSpecies("squirtle", 100, []string{"watergun", "splash"})
	if err != nil {
		t.Fatalf("building squirtle: %v", err)
	}
	st.SideOne.Pokemon[0] = attacker

	defender, err := engine.NewCreatureFromSpecies("charmander", 100, []string{"splash"})
	if err != nil {
		t.Fatalf("building charmander: %v", err)
	}
	defender.HP = 1
	st.SideTwo.Pokemon[0] = defender

	deadline := NewDeadline(5 * time.Second)
	matrix := RunExpectiminimax(st, deadline, ExpectiminimaxConfig{
		Policy:           engine.RollAverage,
		ProbabilityFloor: 1e-9,
		MaxDepth:         2,
	})

	if matrix.DepthReached < 1 {
		t.Fatalf("DepthReached = %d, want at least 1", matrix.DepthReached)
	}

	best := bestRowValue(matrix.Values)
	bestIdx := -1
	for i, row := range matrix.Values {
		worst := 1.0
		for _, v := range row {
			if v < worst {
				worst = v
			}
		}
		if worst == best {
			bestIdx = i
			break
		}
	}
	if bestIdx < 0 {
		t.Fatalf("could not find the best row in %v", matrix.Values)
	}
	if matrix.SideOneActions[bestIdx].Kind != engine.OptionUseMove || matrix.SideOneActions[bestIdx].MoveIndex != 0 {
		t.Errorf("best action = %v, want the watergun move (index 0)", matrix.SideOneActions[bestIdx])
	}
}

func TestRunExpectiminimaxDeadlineStopsDeepening(t *testing.T) {
	st := engine.NewState()
	one, err := engine.NewCreatureFromSpecies("gengar", 100, []string{"hex", "thunderbolt"})
	if err != nil {
		t.Fatalf("building gengar: %v", err)
	}
	two, err := engine.NewCreatureFromSpecies("tyranitar", 100, []string{"stoneedge", "knockoff"})
	if err != nil {
		t.Fatalf("building tyranitar: %v", err)
	}
	st.SideOne.Pokemon[0] = one
	st.SideTwo.Pokemon[0] = two

	deadline := NewDeadline(0)
	matrix := RunExpectiminimax(st, deadline, ExpectiminimaxConfig{
		Policy:           engine.RollAverage,
		ProbabilityFloor: 1e-9,
		MaxDepth:         64,
	})

	// An already-expired deadline still guarantees depth 0 (spec.md §5: at
	// least one full depth before returning).
	if matrix.DepthReached != 0 {
		t.Errorf("DepthReached = %d, want 0 with a zero-budget deadline", matrix.DepthReached)
	}
}
