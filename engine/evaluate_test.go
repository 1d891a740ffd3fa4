package engine

import "testing"

// swapped returns a state identical to st but with the two sides exchanged,
// used to check Evaluate's side-swap antisymmetry (spec.md §4.8).
func swapped(st *State) *State {
	out := st.Clone()
	out.SideOne, out.SideTwo = out.SideTwo, out.SideOne
	return out
}

func TestEvaluateAntisymmetric(t *testing.T) {
	cases := []*State{
		buildMatchupForEval("squirtle", "charmander"),
		buildMatchupForEval("gengar", "tyranitar"),
	}
	for _, st := range cases {
		a := Evaluate(st)
		b := Evaluate(swapped(st))
		if a != -b {
			t.Errorf("Evaluate(st)=%d, Evaluate(swapped(st))=%d, want negatives of each other", a, b)
		}
	}
}

func TestEvaluateTerminalStates(t *testing.T) {
	st := buildMatchupForEval("squirtle", "charmander")
	st.SideTwo.Pokemon[0].HP = 0
	if got := Evaluate(st); got != WinScore {
		t.Errorf("Evaluate with side two fainted = %d, want %d", got, WinScore)
	}

	st = buildMatchupForEval("squirtle", "charmander")
	st.SideOne.Pokemon[0].HP = 0
	if got := Evaluate(st); got != LossScore {
		t.Errorf("Evaluate with side one fainted = %d, want %d", got, LossScore)
	}
}

func buildMatchupForEval(oneSpecies, twoSpecies string) *State {
	st := NewState()
	one, err := NewCreatureFromSpecies(oneSpecies, 100, []string{"tackle"})
	if err != nil {
		panic(err)
	}
	two, err := NewCreatureFromSpecies(twoSpecies, 100, []string{"tackle"})
	if err != nil {
		panic(err)
	}
	st.SideOne.Pokemon[0] = one
	st.SideTwo.Pokemon[0] = two
	return st
}
