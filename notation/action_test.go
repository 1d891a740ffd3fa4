package notation

import (
	"testing"

	"github.com/battlecore/battlecore/engine"
)

func buildActionFixture(t *testing.T) *engine.State {
	t.Helper()
	st := engine.NewState()
	one, err := engine.NewCreatureFromSpecies("squirtle", 100, []string{"watergun", "protect"})
	if err != nil {
		t.Fatalf("building squirtle: %v", err)
	}
	two, err := engine.NewCreatureFromSpecies("charmander", 100, []string{"flamethrower"})
	if err != nil {
		t.Fatalf("building charmander: %v", err)
	}
	st.SideOne.Pokemon[0] = one
	st.SideOne.Pokemon[1] = two // lets "switch charmander" resolve on side one too
	st.SideTwo.Pokemon[0] = two
	return st
}

func TestFormatParseActionRoundTrip(t *testing.T) {
	st := buildActionFixture(t)

	cases := []engine.Option{
		{Kind: engine.OptionNoOp},
		{Kind: engine.OptionUseMove, MoveIndex: 0},
		{Kind: engine.OptionUseMoveTera, MoveIndex: 1},
		{Kind: engine.OptionSwitchTo, SwitchIndex: 1},
	}
	for _, opt := range cases {
		name, err := FormatAction(st, engine.SideOne, opt)
		if err != nil {
			t.Fatalf("FormatAction(%v): %v", opt, err)
		}
		back, err := ParseAction(st, engine.SideOne, name)
		if err != nil {
			t.Fatalf("ParseAction(%q): %v", name, err)
		}
		if back != opt {
			t.Errorf("round trip of %v through %q produced %v", opt, name, back)
		}
	}
}

func TestParseActionCaseInsensitive(t *testing.T) {
	st := buildActionFixture(t)
	opt, err := ParseAction(st, engine.SideOne, "WATERGUN")
	if err != nil {
		t.Fatalf("ParseAction: %v", err)
	}
	if opt.Kind != engine.OptionUseMove || opt.MoveIndex != 0 {
		t.Errorf("ParseAction(WATERGUN) = %v, want move index 0", opt)
	}

	opt, err = ParseAction(st, engine.SideOne, "Switch Charmander")
	if err != nil {
		t.Fatalf("ParseAction: %v", err)
	}
	if opt.Kind != engine.OptionSwitchTo || opt.SwitchIndex != 1 {
		t.Errorf("ParseAction(Switch Charmander) = %v, want switch index 1", opt)
	}
}

func TestParseActionUnknownNameErrors(t *testing.T) {
	st := buildActionFixture(t)
	if _, err := ParseAction(st, engine.SideOne, "nonexistentmove"); err == nil {
		t.Error("ParseAction with an unknown move name should error")
	}
}
