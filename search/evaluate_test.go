package search

import (
	"testing"

	"github.com/battlecore/battlecore/engine"
)

func buildEvalMatchup(t *testing.T, oneSpecies, twoSpecies string) *engine.State {
	t.Helper()
	st := engine.NewState()
	one, err := engine.NewCreatureFromSpecies(oneSpecies, 100, []string{"tackle"})
	if err != nil {
		t.Fatalf("building %s: %v", oneSpecies, err)
	}
	two, err := engine.NewCreatureFromSpecies(twoSpecies, 100, []string{"tackle"})
	if err != nil {
		t.Fatalf("building %s: %v", twoSpecies, err)
	}
	st.SideOne.Pokemon[0] = one
	st.SideTwo.Pokemon[0] = two
	return st
}

func TestRolloutValueSaturatesOnTerminalStates(t *testing.T) {
	st := buildEvalMatchup(t, "squirtle", "charmander")
	st.SideTwo.Pokemon[0].HP = 0
	if got := rolloutValue(st); got != 1 {
		t.Errorf("rolloutValue with side two fainted = %v, want 1", got)
	}

	st = buildEvalMatchup(t, "squirtle", "charmander")
	st.SideOne.Pokemon[0].HP = 0
	if got := rolloutValue(st); got != 0 {
		t.Errorf("rolloutValue with side one fainted = %v, want 0", got)
	}
}

func TestRolloutValueBoundedAndMonotonicInEvaluation(t *testing.T) {
	st := buildEvalMatchup(t, "gengar", "tyranitar")
	even := rolloutValue(st)
	if even <= 0 || even >= 1 {
		t.Errorf("non-terminal rolloutValue = %v, want strictly between 0 and 1", even)
	}

	// Damaging side two should raise side one's rollout value: a worse
	// state for side two, from side one's point of view, must score higher.
	st.SideTwo.Pokemon[0].HP /= 2
	worseForTwo := rolloutValue(st)
	if worseForTwo <= even {
		t.Errorf("rolloutValue after damaging the opponent = %v, want > %v", worseForTwo, even)
	}
}
