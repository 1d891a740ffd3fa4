package engine

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// buildMatchup returns a two-sided battle with one creature per side, built
// from the seed tables, used as a generic fixture across the reversibility
// and probability tests below.
func buildMatchup(t *testing.T, oneSpecies string, oneMoves []string, twoSpecies string, twoMoves []string) *State {
	t.Helper()
	st := NewState()
	one, err := NewCreatureFromSpecies(oneSpecies, 100, oneMoves)
	if err != nil {
		t.Fatalf("building %s: %v", oneSpecies, err)
	}
	two, err := NewCreatureFromSpecies(twoSpecies, 100, twoMoves)
	if err != nil {
		t.Fatalf("building %s: %v", twoSpecies, err)
	}
	st.SideOne.Pokemon[0] = one
	st.SideTwo.Pokemon[0] = two
	return st
}

// TestGenerateInstructionsReversible asserts that for every legal action
// pair and every branch the generator returns, ApplyList followed by
// ReverseList leaves the state byte-identical to before (spec.md §4.2's
// reversibility contract, and the regression guard for the withState
// purity bug documented in generator.go).
func TestGenerateInstructionsReversible(t *testing.T) {
	matchups := []*State{
		buildMatchup(t, "squirtle", []string{"watergun", "protect", "rest", "toxic"}, "charmander", []string{"flamethrower", "willowisp", "substitute", "splash"}),
		buildMatchup(t, "gengar", []string{"hex", "thunderbolt", "painsplit", "substitute"}, "tyranitar", []string{"stoneedge", "knockoff", "pursuit", "rest"}),
		buildMatchup(t, "bulbasaur", []string{"toxic", "protect", "knockoff", "rest"}, "gengar", []string{"hex", "willowisp", "thief", "substitute"}),
	}

	for mi, st := range matchups {
		oneOpts := Options(st, SideOne)
		twoOpts := Options(st, SideTwo)

		for _, o1 := range oneOpts {
			for _, o2 := range twoOpts {
				before := st.Clone()
				branches := GenerateInstructions(st, o1, o2, RollAverage, 1e-9)
				for bi, b := range branches {
					ApplyList(st, b.Instructions)
					ReverseList(st, b.Instructions)
					if diff := cmp.Diff(before, st); diff != "" {
						t.Fatalf("matchup %d, action (%v,%v), branch %d: state not restored after apply+reverse:\n%s", mi, o1, o2, bi, diff)
					}
				}
			}
		}
	}
}

// TestGenerateInstructionsProbabilitiesSumToOne checks every branch set the
// generator returns is a proper probability distribution, within the float
// slop the probability floor's filtering introduces.
func TestGenerateInstructionsProbabilitiesSumToOne(t *testing.T) {
	st := buildMatchup(t, "squirtle", []string{"watergun", "protect", "rest", "toxic"}, "charmander", []string{"flamethrower", "willowisp", "substitute", "splash"})

	oneOpts := Options(st, SideOne)
	twoOpts := Options(st, SideTwo)

	for _, o1 := range oneOpts {
		for _, o2 := range twoOpts {
			branches := GenerateInstructions(st, o1, o2, RollAverage, 0)
			var total float64
			for _, b := range branches {
				if b.Probability < 0 || b.Probability > 1 {
					t.Fatalf("action (%v,%v): branch probability %v out of [0,1]", o1, o2, b.Probability)
				}
				total += b.Probability
			}
			if len(branches) > 0 && math.Abs(total-1) > 1e-6 {
				t.Errorf("action (%v,%v): branch probabilities sum to %v, want 1", o1, o2, total)
			}
		}
	}
}
