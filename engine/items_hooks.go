package engine

// Item hooks mirror the five move hooks at a smaller scale: items.rs in the
// original engine gives each item up to three hook points
// (modify_attack_being_used, modify_attack_against, on_switch_in). A held
// item mutates the mutable Choice copy exactly like a move hook does, so the
// same "mutate then also emit the instruction" discipline applies whenever
// an item hook changes persistent state (on-switch-in only, here: a held
// item's attack modifiers are choice-local and need no instruction).

// ApplyItemModifyAttackBeingUsed lets the attacker's held item change its
// own choice before damage is calculated (choiceband's 1.3x physical power).
func ApplyItemModifyAttackBeingUsed(attacker *Creature, choice *Choice) {
	switch attacker.Item {
	case "choiceband":
		if choice.Category == Physical {
			choice.BasePower *= 1.3
		}
	case "choicespecs":
		if choice.Category == Special {
			choice.BasePower *= 1.3
		}
	}
}

// ApplyItemModifyAttackAgainst lets the defender's held item change the
// incoming choice before damage is calculated (air balloon's ground
// immunity, mirroring damage_calc.rs's volatile-status ground immunity but
// keyed off an item instead).
func ApplyItemModifyAttackAgainst(defender *Creature, choice *Choice) {
	if defender.Item == "airballoon" && choice.Type == Ground && choice.Name != "thousandarrows" {
		choice.BasePower = 0
	}
}

// ItemOnSwitchIn returns the instructions produced by an incoming
// creature's held item: room service drops the holder's speed one stage
// under an active trick room, then consumes itself (mirroring items.rs's
// ItemOnSwitchInFn).
func ItemOnSwitchIn(st *State, ref SideRef) []Instruction {
	side := st.Side(ref)
	active := side.Active()
	if active.Fainted() {
		return nil
	}
	item := Items[active.Item]
	if !item.RoomServiceSpeedDrop || !st.TrickRoom.Active {
		return nil
	}
	var instrs []Instruction
	cur := side.StatBoosts.Get(StatSpeed)
	if applied := clampBoost(cur-1) - cur; applied != 0 {
		instrs = append(instrs, &BoostInstruction{Side: ref, Stat: StatSpeed, Delta: applied})
	}
	instrs = append(instrs, &ChangeItemInstruction{Side: ref, Slot: side.ActiveIndex, Old: active.Item, New: "none"})
	return instrs
}
