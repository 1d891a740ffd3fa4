// Grounded on perft/perft_test.go's shape (a helper walking known FENs to
// fixed depths, checking against known node-count constants). Those
// constants come from actually running the reference engine once and
// pinning its output; there is no equivalent corpus of known-good branch
// counts for this battle engine, and no way to compute one without running
// the Go toolchain, so these tests check structural invariants of walk
// instead of pinned exact counts.
package main

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/battlecore/battlecore/engine"
)

func buildCountFixture(t *testing.T) *engine.State {
	t.Helper()
	st := engine.NewState()
	one, err := engine.NewCreatureFromSpecies("squirtle", 100, []string{"watergun", "protect"})
	if err != nil {
		t.Fatalf("building squirtle: %v", err)
	}
	two, err := engine.NewCreatureFromSpecies("charmander", 100, []string{"flamethrower", "splash"})
	if err != nil {
		t.Fatalf("building charmander: %v", err)
	}
	st.SideOne.Pokemon[0] = one
	st.SideTwo.Pokemon[0] = two
	return st
}

func TestWalkZeroPlyIsALeaf(t *testing.T) {
	st := buildCountFixture(t)
	c := walk(st, 0)
	if c.leaves != 1 || c.branches != 0 {
		t.Errorf("walk at depth 0 = %+v, want exactly one leaf and no branches", c)
	}
}

func TestWalkBranchesGrowWithDepth(t *testing.T) {
	*floor = 1e-9
	st := buildCountFixture(t)
	one := walk(st, 1)
	two := walk(st, 2)
	if one.branches == 0 {
		t.Fatalf("walk at depth 1 produced no branches at all")
	}
	if two.branches <= one.branches {
		t.Errorf("branches at depth 2 (%d) should exceed depth 1 (%d)", two.branches, one.branches)
	}
	if two.leaves <= one.leaves {
		t.Errorf("leaves at depth 2 (%d) should exceed depth 1 (%d)", two.leaves, one.leaves)
	}
}

func TestWalkLeavesStateUnchanged(t *testing.T) {
	*floor = 1e-9
	st := buildCountFixture(t)
	before := st.Clone()
	walk(st, 2)
	if diff := cmp.Diff(before, st); diff != "" {
		t.Errorf("walk left the state mutated:\n%s", diff)
	}
}
