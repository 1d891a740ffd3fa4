package notation

import (
	"fmt"
	"strings"

	"github.com/battlecore/battlecore/engine"
)

// FormatAction renders opt in the action-name grammar spec.md §6 exposes at
// the boundary: lowercased move-ids, "switch <species-name>" for switches,
// "<move>-tera" for tera-moves, or the literal "none". Grounded on
// original_source/src/genx/state.rs's MoveChoice::to_string.
func FormatAction(st *engine.State, ref engine.SideRef, opt engine.Option) (string, error) {
	side := st.Side(ref)
	active := side.Active()

	switch opt.Kind {
	case engine.OptionNoOp:
		return "none", nil
	case engine.OptionUseMove:
		if opt.MoveIndex < 0 || opt.MoveIndex >= active.NMoves {
			return "", fmt.Errorf("%w: move index %d out of range", engine.ErrMalformedInput, opt.MoveIndex)
		}
		return active.Moves[opt.MoveIndex].ID, nil
	case engine.OptionUseMoveTera:
		if opt.MoveIndex < 0 || opt.MoveIndex >= active.NMoves {
			return "", fmt.Errorf("%w: move index %d out of range", engine.ErrMalformedInput, opt.MoveIndex)
		}
		return active.Moves[opt.MoveIndex].ID + "-tera", nil
	case engine.OptionSwitchTo:
		if opt.SwitchIndex < 0 || opt.SwitchIndex >= len(side.Pokemon) {
			return "", fmt.Errorf("%w: switch index %d out of range", engine.ErrMalformedInput, opt.SwitchIndex)
		}
		return "switch " + side.Pokemon[opt.SwitchIndex].Species, nil
	default:
		return "", fmt.Errorf("%w: option kind %d", engine.ErrMalformedInput, opt.Kind)
	}
}

// ParseAction resolves an action name against st's legal options for ref,
// per the same grammar FormatAction renders. Case-insensitive on the move id
// and species name, matching the wire contract's "lowercased move-ids".
func ParseAction(st *engine.State, ref engine.SideRef, name string) (engine.Option, error) {
	name = strings.TrimSpace(name)
	lower := strings.ToLower(name)

	if lower == "none" {
		return engine.Option{Kind: engine.OptionNoOp}, nil
	}

	if species, ok := strings.CutPrefix(lower, "switch "); ok {
		side := st.Side(ref)
		for i := range side.Pokemon {
			if strings.ToLower(side.Pokemon[i].Species) == species {
				return engine.Option{Kind: engine.OptionSwitchTo, SwitchIndex: i}, nil
			}
		}
		return engine.Option{}, fmt.Errorf("%w: unknown switch target %q", engine.ErrMalformedInput, species)
	}

	tera := false
	moveID := lower
	if rest, ok := strings.CutSuffix(lower, "-tera"); ok {
		tera = true
		moveID = rest
	}

	active := st.Side(ref).Active()
	for i := 0; i < active.NMoves; i++ {
		if active.Moves[i].ID == moveID {
			if tera {
				return engine.Option{Kind: engine.OptionUseMoveTera, MoveIndex: i}, nil
			}
			return engine.Option{Kind: engine.OptionUseMove, MoveIndex: i}, nil
		}
	}
	return engine.Option{}, fmt.Errorf("%w: unknown action %q", engine.ErrMalformedInput, name)
}
