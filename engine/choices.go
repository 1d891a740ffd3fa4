package engine

// Choice-effects hooks: five dispatch points per move, keyed by move id into
// free functions (spec.md §4.5, §9 "Deep hook dispatch" - a closed table of
// sparse overrides, not per-move polymorphic objects). Each hook mutates the
// attacker's or defender's Choice copy and/or appends reversible
// instructions to the branch's output list.

// HookContext carries everything a hook needs: the live state, which side is
// attacking, the attacker's mutable choice record, and the instruction list
// the branch is accumulating. DefenderChoice is not filled in by the
// generator and is always nil.
type HookContext struct {
	State         *State
	AttackerSide  SideRef
	AttackerChoice *Choice
	DefenderChoice *Choice
	Out           *[]Instruction
}

// append records ins as part of the branch being built. Hooks never apply
// their own instructions: the generator applies a branch's full instruction
// list at a single well-defined boundary (withState), so every hook here is
// a pure reader of the state it was handed.
func (c *HookContext) append(ins Instruction) {
	*c.Out = append(*c.Out, ins)
}

func (c *HookContext) sides() (attacker, defender *Side) {
	return c.State.Sides(c.AttackerSide)
}

// ModifyChoiceHook is called pre-damage to adjust power/accuracy/type.
type ModifyChoiceHook func(c *HookContext)

// BeforeMoveHook fires on use regardless of hit.
type BeforeMoveHook func(c *HookContext)

// SpecialEffectHook replaces the standard damage rule. It returns true if it
// fully handled the move (the generator then skips the standard damage
// path).
type SpecialEffectHook func(c *HookContext) bool

// AfterDamageHitHook fires after a successful damaging hit.
type AfterDamageHitHook func(c *HookContext)

// HazardClearHook moves or clears hazards/screens.
type HazardClearHook func(c *HookContext)

var modifyChoiceHooks = map[string]ModifyChoiceHook{
	"hex": func(c *HookContext) {
		_, defender := c.sides()
		if defender.Active().Status != StatusNone {
			c.AttackerChoice.BasePower *= 2
		}
	},
	"weatherball": func(c *HookContext) {
		switch c.State.Weather.Kind {
		case WeatherSun, WeatherHarshSun:
			c.AttackerChoice.Type = Fire
		case WeatherRain, WeatherHeavyRain:
			c.AttackerChoice.Type = Water
		case WeatherSand:
			c.AttackerChoice.Type = Rock
		case WeatherSnow:
			c.AttackerChoice.Type = Ice
		default:
			c.AttackerChoice.Type = Normal
		}
	},
	"pursuit": func(c *HookContext) {
		_, defender := c.sides()
		if defender.SavedPivotMove != nil || defender.ForceSwitch {
			c.AttackerChoice.BasePower *= 2
		}
	},
}

var beforeMoveHooks = map[string]BeforeMoveHook{
	"futuresight": func(c *HookContext) {
		attacker, _ := c.sides()
		old := attacker.FutureSight
		c.append(&SetFutureSightInstruction{
			Side: c.AttackerSide, Old: old,
			New: FutureSightState{TurnsRemaining: 3, SourceSlot: attacker.ActiveIndex},
		})
	},
}

var specialEffectHooks = map[string]SpecialEffectHook{
	"painsplit": func(c *HookContext) bool {
		attacker, defender := c.sides()
		a, d := attacker.Active(), defender.Active()
		avg := (a.HP + d.HP) / 2
		if avg > a.MaxHP {
			avg = a.MaxHP
		}
		if avg < a.HP {
			c.append(&DamageInstruction{Side: c.AttackerSide, Slot: attacker.ActiveIndex, Amount: a.HP - avg})
		} else if avg > a.HP {
			c.append(&HealInstruction{Side: c.AttackerSide, Slot: attacker.ActiveIndex, Amount: avg - a.HP})
		}
		avgD := avg
		if avgD > d.MaxHP {
			avgD = d.MaxHP
		}
		if avgD < d.HP {
			c.append(&DamageInstruction{Side: c.AttackerSide.Opposite(), Slot: defender.ActiveIndex, Amount: d.HP - avgD})
		} else if avgD > d.HP {
			c.append(&HealInstruction{Side: c.AttackerSide.Opposite(), Slot: defender.ActiveIndex, Amount: avgD - d.HP})
		}
		return true
	},
	"seismictoss": func(c *HookContext) bool {
		attacker, defender := c.sides()
		dmg := attacker.Active().Level
		d := defender.Active()
		if dmg > d.HP {
			dmg = d.HP
		}
		c.append(&DamageInstruction{Side: c.AttackerSide.Opposite(), Slot: defender.ActiveIndex, Amount: dmg})
		return true
	},
	"superfang": func(c *HookContext) bool {
		_, defender := c.sides()
		d := defender.Active()
		dmg := d.HP / 2
		if dmg < 1 {
			dmg = 1
		}
		c.append(&DamageInstruction{Side: c.AttackerSide.Opposite(), Slot: defender.ActiveIndex, Amount: dmg})
		return true
	},
	"bellydrum": func(c *HookContext) bool {
		attacker, _ := c.sides()
		a := attacker.Active()
		cost := a.MaxHP / 2
		if cost >= a.HP {
			cost = a.HP - 1
		}
		if cost > 0 {
			c.append(&DamageInstruction{Side: c.AttackerSide, Slot: attacker.ActiveIndex, Amount: cost})
		}
		delta := int8(6) - attacker.StatBoosts.Get(StatAttack)
		if delta != 0 {
			c.append(&BoostInstruction{Side: c.AttackerSide, Stat: StatAttack, Delta: delta})
		}
		return true
	},
	"rest": func(c *HookContext) bool {
		attacker, _ := c.sides()
		a := attacker.Active()
		old := a.Status
		if old != StatusSleep {
			c.append(&ChangeStatusInstruction{Side: c.AttackerSide, Slot: attacker.ActiveIndex, Old: old, New: StatusSleep})
		}
		oldTurns := a.SleepTurns
		c.append(&SetSleepTurnsInstruction{Side: c.AttackerSide, Slot: attacker.ActiveIndex, Old: oldTurns, New: 3})
		if a.HP < a.MaxHP {
			c.append(&HealInstruction{Side: c.AttackerSide, Slot: attacker.ActiveIndex, Amount: a.MaxHP - a.HP})
		}
		return true
	},
	"perishsong": func(c *HookContext) bool {
		attacker, defender := c.sides()
		if !attacker.HasVolatile(VolatilePerish1) && !attacker.HasVolatile(VolatilePerish2) &&
			!attacker.HasVolatile(VolatilePerish3) && !attacker.HasVolatile(VolatilePerish4) {
			c.append(&ApplyVolatileInstruction{Side: c.AttackerSide, Volatile: VolatilePerish4})
		}
		if !defender.HasVolatile(VolatilePerish1) && !defender.HasVolatile(VolatilePerish2) &&
			!defender.HasVolatile(VolatilePerish3) && !defender.HasVolatile(VolatilePerish4) {
			c.append(&ApplyVolatileInstruction{Side: c.AttackerSide.Opposite(), Volatile: VolatilePerish4})
		}
		return true
	},
	"substitute": func(c *HookContext) bool {
		attacker, _ := c.sides()
		a := attacker.Active()
		if attacker.HasVolatile(VolatileSubstitute) {
			return true
		}
		cost := a.MaxHP / 4
		if cost >= a.HP {
			return true
		}
		c.append(&DamageInstruction{Side: c.AttackerSide, Slot: attacker.ActiveIndex, Amount: cost})
		c.append(&SetSubstituteHealthInstruction{Side: c.AttackerSide, Old: attacker.SubstituteHP, New: cost})
		c.append(&ApplyVolatileInstruction{Side: c.AttackerSide, Volatile: VolatileSubstitute})
		return true
	},
	"splash": func(c *HookContext) bool { return true },
	"batonpass": func(c *HookContext) bool {
		attacker, _ := c.sides()
		if !attacker.ForceSwitch {
			c.append(&ToggleForceSwitchInstruction{Side: c.AttackerSide, Old: false, New: true})
		}
		if !attacker.BatonPassing {
			c.append(&ToggleBatonPassInstruction{Side: c.AttackerSide, Old: false, New: true})
		}
		return true
	},
	"counter": func(c *HookContext) bool {
		counterAttack(c, Physical, false, 2)
		return true
	},
	"mirrorcoat": func(c *HookContext) bool {
		counterAttack(c, Special, false, 2)
		return true
	},
	"metalburst": func(c *HookContext) bool {
		counterAttack(c, Physical, true, 1.5)
		return true
	},
}

// counterAttack reflects the damage recorded on the attacker's own side
// (taken as the defender on an earlier hit this turn) back at the current
// defender, scaled by ratio. category restricts the reflection to that
// damage category unless matchAny is set (metalburst accepts either). Fails
// silently - no instruction at all - if nothing was recorded, it was
// absorbed by a substitute, or the category doesn't match (spec.md §3/§4.6
// step 3h).
func counterAttack(c *HookContext, category Category, matchAny bool, ratio float64) {
	attacker, defender := c.sides()
	rec := attacker.DamageDealt
	if rec.Amount <= 0 || rec.HitSubstitute {
		return
	}
	if !matchAny && rec.Category != category {
		return
	}
	d := defender.Active()
	dmg := int(float64(rec.Amount) * ratio)
	if dmg > d.HP {
		dmg = d.HP
	}
	if dmg > 0 {
		c.append(&DamageInstruction{Side: c.AttackerSide.Opposite(), Slot: defender.ActiveIndex, Amount: dmg})
	}
}

var afterDamageHitHooks = map[string]AfterDamageHitHook{
	"knockoff": func(c *HookContext) {
		_, defender := c.sides()
		d := defender.Active()
		if d.Item != "none" && d.Item != "" {
			c.append(&ChangeItemInstruction{Side: c.AttackerSide.Opposite(), Slot: defender.ActiveIndex, Old: d.Item, New: "none"})
		}
	},
	"thief": func(c *HookContext) {
		attacker, defender := c.sides()
		a, d := attacker.Active(), defender.Active()
		if (a.Item == "none" || a.Item == "") && d.Item != "none" && d.Item != "" {
			c.append(&ChangeItemInstruction{Side: c.AttackerSide.Opposite(), Slot: defender.ActiveIndex, Old: d.Item, New: "none"})
			c.append(&ChangeItemInstruction{Side: c.AttackerSide, Slot: attacker.ActiveIndex, Old: a.Item, New: d.Item})
		}
	},
}

var hazardClearHooks = map[string]HazardClearHook{
	"rapidspin": func(c *HookContext) {
		attacker, _ := c.sides()
		clearHazards(c, c.AttackerSide, attacker)
	},
	"defog": func(c *HookContext) {
		attacker, defender := c.sides()
		clearHazards(c, c.AttackerSide, attacker)
		clearHazards(c, c.AttackerSide.Opposite(), defender)
		clearScreens(c, c.AttackerSide.Opposite(), defender)
	},
	"courtchange": func(c *HookContext) {
		attacker, defender := c.sides()
		aConds, dConds := attacker.Conditions.AsSlice(), defender.Conditions.AsSlice()
		for i := 0; i < NumSideConditions; i++ {
			field := SideConditionField(i)
			if aConds[i] != dConds[i] {
				c.append(&ChangeSideConditionInstruction{Side: c.AttackerSide, Field: field, Delta: dConds[i] - aConds[i]})
				c.append(&ChangeSideConditionInstruction{Side: c.AttackerSide.Opposite(), Field: field, Delta: aConds[i] - dConds[i]})
			}
		}
	},
}

func clearHazards(c *HookContext, ref SideRef, s *Side) {
	if s.Conditions.Spikes > 0 {
		c.append(&ChangeSideConditionInstruction{Side: ref, Field: CondSpikes, Delta: -s.Conditions.Spikes})
	}
	if s.Conditions.ToxicSpikes > 0 {
		c.append(&ChangeSideConditionInstruction{Side: ref, Field: CondToxicSpikes, Delta: -s.Conditions.ToxicSpikes})
	}
	if s.Conditions.StealthRock > 0 {
		c.append(&ChangeSideConditionInstruction{Side: ref, Field: CondStealthRock, Delta: -s.Conditions.StealthRock})
	}
	if s.Conditions.StickyWeb > 0 {
		c.append(&ChangeSideConditionInstruction{Side: ref, Field: CondStickyWeb, Delta: -s.Conditions.StickyWeb})
	}
}

func clearScreens(c *HookContext, ref SideRef, s *Side) {
	if s.Conditions.Reflect > 0 {
		c.append(&ChangeSideConditionInstruction{Side: ref, Field: CondReflect, Delta: -s.Conditions.Reflect})
	}
	if s.Conditions.LightScreen > 0 {
		c.append(&ChangeSideConditionInstruction{Side: ref, Field: CondLightScreen, Delta: -s.Conditions.LightScreen})
	}
	if s.Conditions.AuroraVeil > 0 {
		c.append(&ChangeSideConditionInstruction{Side: ref, Field: CondAuroraVeil, Delta: -s.Conditions.AuroraVeil})
	}
}
