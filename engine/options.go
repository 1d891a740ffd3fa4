package engine

// Options enumerates the legal Option values a side may choose from a given
// State (spec.md §4.3). The generator takes one Option per side per call; it
// never validates the pair itself, so producing only legal options here is
// the sole gate against illegal actions reaching it.

// OptionKind is the shape of one legal choice.
type OptionKind uint8

const (
	OptionUseMove OptionKind = iota
	OptionUseMoveTera
	OptionSwitchTo
	OptionNoOp
)

// Option is one legal action available to a side.
type Option struct {
	Kind        OptionKind
	MoveIndex   int
	SwitchIndex int
}

func (o Option) String() string {
	switch o.Kind {
	case OptionUseMove:
		return "move:" + string(rune('0'+o.MoveIndex))
	case OptionUseMoveTera:
		return "move-tera:" + string(rune('0'+o.MoveIndex))
	case OptionSwitchTo:
		return "switch:" + string(rune('0'+o.SwitchIndex))
	default:
		return "none"
	}
}

// Options returns every legal Option for the given side in the given state.
func Options(st *State, ref SideRef) []Option {
	side := st.Side(ref)

	if st.TeamPreview {
		return teamPreviewOptions(side)
	}

	if side.ForceSwitch {
		opts := switchOptions(side)
		if len(opts) == 0 {
			return []Option{{Kind: OptionNoOp}}
		}
		return opts
	}

	active := side.Active()
	if active.Fainted() {
		opts := switchOptions(side)
		if len(opts) == 0 {
			return []Option{{Kind: OptionNoOp}}
		}
		return opts
	}

	// Locked into a single, already-chosen action: recharge, a multi-turn
	// charge/semi-invulnerable volatile, a locked thrash-class move, or
	// truant's loafing turn all skip selection entirely (spec.md §4.3
	// "locked-in" gate, grounded in genx/state.rs's get_effective_choices).
	if side.HasVolatile(VolatileMustRecharge) {
		return []Option{{Kind: OptionNoOp}}
	}
	if lockedMove, ok := lockedMoveIndex(side, active); ok {
		return []Option{{Kind: OptionUseMove, MoveIndex: lockedMove}}
	}
	if side.HasVolatile(VolatileTruant) {
		return []Option{{Kind: OptionNoOp}}
	}

	var opts []Option
	trapped := isTrapped(side, active)

	for i := 0; i < active.NMoves; i++ {
		slot := &active.Moves[i]
		if !moveSelectable(side, active, slot, i) {
			continue
		}
		opts = append(opts, Option{Kind: OptionUseMove, MoveIndex: i})
		if !active.Terastallized {
			opts = append(opts, Option{Kind: OptionUseMoveTera, MoveIndex: i})
		}
	}

	if len(opts) == 0 {
		// Struggle: every move disabled or out of PP. Modeled as a no-op
		// fallback rather than a synthetic struggle move (spec.md §4.3 Open
		// Question (b), decided: no struggle damage table is in scope).
		opts = append(opts, Option{Kind: OptionNoOp})
	}

	if !trapped {
		opts = append(opts, switchOptions(side)...)
	}

	return opts
}

func lockedMoveIndex(side *Side, active *Creature) (int, bool) {
	if side.SavedPivotMove != nil && side.SavedPivotMove.IsMove {
		return side.SavedPivotMove.Index, true
	}
	for v := range side.Volatiles {
		if v.semiInvulnerable() {
			if side.LastUsedMove.IsMove {
				return side.LastUsedMove.Index, true
			}
		}
	}
	if side.HasVolatile(VolatileLockedMove) && side.LastUsedMove.IsMove {
		return side.LastUsedMove.Index, true
	}
	return 0, false
}

func moveSelectable(side *Side, active *Creature, slot *MoveSlot, index int) bool {
	if !slot.CanSelect() {
		return false
	}
	if side.HasVolatile(VolatileTaunt) && slot.Choice.Category == Status {
		return false
	}
	if side.HasVolatile(VolatileEncore) && side.LastUsedMove.IsMove && side.LastUsedMove.Index != index {
		return false
	}
	if active.Item == "choiceband" || active.Item == "choicespecs" || active.Item == "choicescarf" {
		if side.LastUsedMove.IsMove && side.LastUsedMove.Index != index && lockedChoiceItemMoveStillHasPP(active, side.LastUsedMove.Index) {
			return false
		}
	}
	return true
}

func lockedChoiceItemMoveStillHasPP(active *Creature, index int) bool {
	if index < 0 || index >= active.NMoves {
		return false
	}
	return active.Moves[index].PP > 0
}

func isTrapped(side *Side, active *Creature) bool {
	if side.ForceTrapped {
		return true
	}
	if active.Item == "shedshell" {
		return false
	}
	if side.HasVolatile(VolatileNoRetreat) {
		return true
	}
	ability := Abilities[active.Ability]
	if ability.ShadowTag {
		return true
	}
	if ability.ArenaTrap && isGrounded(active) {
		return true
	}
	if ability.MagnetPull && active.HasType(Steel) {
		return true
	}
	return false
}

// isGrounded reports whether active can be hit by ground-only effects:
// Flying types, Levitate holders, and Air Balloon holders are airborne.
func isGrounded(active *Creature) bool {
	if active.HasType(Flying) {
		return false
	}
	if Abilities[active.Ability].Levitate {
		return false
	}
	return active.Item != "airballoon"
}

func switchOptions(side *Side) []Option {
	var opts []Option
	for i := range side.Pokemon {
		if i == side.ActiveIndex && !side.Pokemon[i].Fainted() {
			continue
		}
		if side.Pokemon[i].Fainted() {
			continue
		}
		opts = append(opts, Option{Kind: OptionSwitchTo, SwitchIndex: i})
	}
	return opts
}

func teamPreviewOptions(side *Side) []Option {
	opts := make([]Option, 0, len(side.Pokemon))
	for i := range side.Pokemon {
		opts = append(opts, Option{Kind: OptionSwitchTo, SwitchIndex: i})
	}
	return opts
}
