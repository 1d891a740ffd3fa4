package engine

import "reflect"

// GenerateInstructions is the core of the engine: given a state and one
// chosen Option per side, it produces every possible resolution of the turn,
// each as a Branch (a probability and the reversible instruction list that
// produces it). Branch probabilities sum to ~1.0 within floor (spec.md §4.6).
//
// The algorithm runs in four phases, each of which may itself branch:
// switch-in resolution, move-order decision, per-mover move resolution, and
// end-of-turn resolution. Every phase applies its own instructions to st
// before deciding the next phase's branches, then reverses them before
// returning, so st is unchanged by the time GenerateInstructions returns
// (spec.md §9 "write the apply and the reverse together, never alone").
func GenerateInstructions(st *State, oneOpt, twoOpt Option, policy DamageRollPolicy, floor float64) []Branch {
	var out []Branch

	for _, sb := range genSwitchPhase(st, oneOpt, twoOpt) {
		withState(st, sb.Instructions, func() {
			orders, orderWeight := computeMoveOrders(st, oneOpt, twoOpt)
			for _, order := range orders {
				for _, mb := range genMovePhase(st, order, oneOpt, twoOpt, policy) {
					withState(st, mb.Instructions, func() {
						for _, eb := range genEndOfTurn(st) {
							prob := sb.Probability * orderWeight * mb.Probability * eb.Probability
							if prob < floor {
								return
							}
							instrs := make([]Instruction, 0, len(sb.Instructions)+len(mb.Instructions)+len(eb.Instructions))
							instrs = append(instrs, sb.Instructions...)
							instrs = append(instrs, mb.Instructions...)
							instrs = append(instrs, eb.Instructions...)
							out = append(out, Branch{Probability: prob, Instructions: instrs})
						}
					})
				}
			}
		})
	}

	return mergeBranches(out)
}

// withState applies instrs to st, runs fn, then reverses instrs, leaving st
// exactly as it was found.
func withState(st *State, instrs []Instruction, fn func()) {
	ApplyList(st, instrs)
	fn()
	ReverseList(st, instrs)
}

func cloneInstrs(in []Instruction) []Instruction {
	out := make([]Instruction, len(in))
	copy(out, in)
	return out
}

// mergeBranches collapses branches whose instruction lists are identical
// (compared with reflect.DeepEqual) into one branch carrying the summed
// probability, keeping the first occurrence's position. The input is
// already floor-pruned by the caller.
func mergeBranches(in []Branch) []Branch {
	var out []Branch
next:
	for _, b := range in {
		for i := range out {
			if reflect.DeepEqual(out[i].Instructions, b.Instructions) {
				out[i].Probability += b.Probability
				continue next
			}
		}
		out = append(out, b)
	}
	return out
}

// --- Phase 1: switches ----------------------------------------------------

func genSwitchPhase(st *State, oneOpt, twoOpt Option) []Branch {
	var instrs []Instruction
	if oneOpt.Kind == OptionSwitchTo {
		instrs = append(instrs, switchIn(st, SideOne, oneOpt.SwitchIndex)...)
	}
	if twoOpt.Kind == OptionSwitchTo {
		instrs = append(instrs, switchIn(st, SideTwo, twoOpt.SwitchIndex)...)
	}
	return []Branch{{Probability: 1, Instructions: instrs}}
}

// switchIn produces the outgoing creature's switch-out ability effects
// (regenerator, natural cure), the clear-volatiles/boosts/substitute
// instructions, the SwitchInstruction itself, and the entering creature's hazard damage and
// entry-ability effects. Every builder here is pure (it reads st but never
// mutates it); switchIn itself applies each of its three sub-phases only
// long enough for the next sub-phase to read the correct post-switch and
// post-hazard state, then hands the caller the full list unapplied.
func switchIn(st *State, ref SideRef, next int) []Instruction {
	side := st.Side(ref)
	prev := side.ActiveIndex

	var phase1 []Instruction
	if outgoing := side.Active(); !outgoing.Fainted() {
		outAbility := Abilities[outgoing.Ability]
		if outAbility.Regenerator && outgoing.HP < outgoing.MaxHP {
			phase1 = append(phase1, buildHeal(outgoing, ref, prev, outgoing.MaxHP/4))
		}
		if outAbility.NaturalCure && outgoing.Status != StatusNone {
			phase1 = append(phase1, &ChangeStatusInstruction{Side: ref, Slot: prev, Old: outgoing.Status, New: StatusNone})
		}
	}
	if side.BatonPassing {
		// Baton-pass carry-over (spec.md §3, GLOSSARY "Volatile status"):
		// volatiles, the substitute, and stat boosts are side-level storage
		// that the incoming creature simply inherits, so nothing here clears
		// them. Only the passing flag itself resets.
		phase1 = append(phase1, &ToggleBatonPassInstruction{Side: ref, Old: true, New: false})
	} else {
		for v := range side.Volatiles {
			phase1 = append(phase1, &RemoveVolatileInstruction{Side: ref, Volatile: v})
		}
		if side.SubstituteHP != 0 {
			phase1 = append(phase1, &SetSubstituteHealthInstruction{Side: ref, Old: side.SubstituteHP, New: 0})
		}
		for s := Stat(0); s < numStats; s++ {
			if cur := side.StatBoosts.Get(s); cur != 0 {
				phase1 = append(phase1, &BoostInstruction{Side: ref, Stat: s, Delta: -cur})
			}
		}
	}
	if side.SavedPivotMove != nil {
		phase1 = append(phase1, &SetSavedPivotMoveInstruction{Side: ref, Old: side.SavedPivotMove, New: nil})
	}
	phase1 = append(phase1, &SwitchInstruction{Side: ref, Previous: prev, Next: next})
	if side.ForceSwitch {
		phase1 = append(phase1, &ToggleForceSwitchInstruction{Side: ref, Old: true, New: false})
	}

	var hazardInstrs []Instruction
	withState(st, phase1, func() {
		hazardInstrs = entryHazards(st, ref)
	})

	phase2 := append(cloneInstrs(phase1), hazardInstrs...)
	var abilityInstrs []Instruction
	withState(st, phase2, func() {
		abilityInstrs = entryAbility(st, ref)
	})

	phase3 := append(cloneInstrs(phase2), abilityInstrs...)
	var itemInstrs []Instruction
	withState(st, phase3, func() {
		itemInstrs = ItemOnSwitchIn(st, ref)
	})

	return append(phase3, itemInstrs...)
}

// entryHazards applies spikes, toxic spikes, sticky web and then stealth rock
// to the creature that just switched in, in that fixed order (spec.md Open
// Questions (c), decided: hazards resolve before entry abilities).
func entryHazards(st *State, ref SideRef) []Instruction {
	var instrs []Instruction
	side := st.Side(ref)
	active := side.Active()
	if active.Fainted() {
		return nil
	}
	ability := Abilities[active.Ability]
	if ability.Levitate || active.Item == "airballoon" {
		// airborne: the grounded-only hazards (spikes, toxic spikes, sticky
		// web) are skipped; stealth rock below hits regardless.
	} else {
		if side.Conditions.Spikes > 0 {
			dmg := active.MaxHP * (2 + side.Conditions.Spikes) / 16
			if dmg < 1 {
				dmg = 1
			}
			instrs = append(instrs, buildDamage(active, ref, side.ActiveIndex, dmg))
		}
		if side.Conditions.ToxicSpikes > 0 && !active.HasType(Poison) {
			old := active.Status
			if old == StatusNone {
				var next NonVolatileStatus
				if side.Conditions.ToxicSpikes >= 2 {
					next = StatusToxic
				} else {
					next = StatusPoison
				}
				instrs = append(instrs, &ChangeStatusInstruction{Side: ref, Slot: side.ActiveIndex, Old: old, New: next})
			}
		}
		if side.Conditions.StickyWeb > 0 {
			cur := side.StatBoosts.Get(StatSpeed)
			if applied := clampBoost(cur-1) - cur; applied != 0 {
				instrs = append(instrs, &BoostInstruction{Side: ref, Stat: StatSpeed, Delta: applied})
			}
		}
	}
	if side.Conditions.StealthRock > 0 {
		eff := Effectiveness(Rock, active.TypePrimary, active.TypeSecondary)
		dmg := int(float64(active.MaxHP) * eff / 8)
		if dmg < 1 {
			dmg = 1
		}
		instrs = append(instrs, buildDamage(active, ref, side.ActiveIndex, dmg))
	}
	return instrs
}

// buildDamage constructs a DamageInstruction without applying it: every
// generator-internal builder is pure, leaving apply/reverse to the withState
// boundaries that own each phase. amount is clamped to active's current HP
// so DamageInstruction.Reverse always adds back exactly what Apply removed,
// even when the raw amount would have overkilled.
func buildDamage(active *Creature, ref SideRef, slot, amount int) Instruction {
	if amount > active.HP {
		amount = active.HP
	}
	if amount < 0 {
		amount = 0
	}
	return &DamageInstruction{Side: ref, Slot: slot, Amount: amount}
}

// entryAbility builds the entering creature's on-switch-in ability effect:
// intimidate drops the opponent's attack, and drought starts five turns of
// sun unless the current weather is already infinite.
func entryAbility(st *State, ref SideRef) []Instruction {
	var instrs []Instruction
	side, opp := st.Sides(ref)
	active := side.Active()
	ability := Abilities[active.Ability]

	if ability.Intimidate && !opp.Active().Fainted() {
		cur := opp.StatBoosts.Get(StatAttack)
		if cur > -6 {
			instrs = append(instrs, &BoostInstruction{Side: ref.Opposite(), Stat: StatAttack, Delta: -1})
		}
	}
	if ability.Drought && !st.Weather.Kind.Infinite() {
		instrs = append(instrs, &ChangeWeatherInstruction{OldKind: st.Weather.Kind, OldTurns: st.Weather.TurnsRemaining, NewKind: WeatherSun, NewTurns: 5})
	}
	return instrs
}

// --- Phase 2: move order ---------------------------------------------------

func computeMoveOrders(st *State, oneOpt, twoOpt Option) ([][2]SideRef, float64) {
	p1 := moverPriority(st, SideOne, oneOpt)
	p2 := moverPriority(st, SideTwo, twoOpt)
	if p1 > p2 {
		return [][2]SideRef{{SideOne, SideTwo}}, 1
	}
	if p2 > p1 {
		return [][2]SideRef{{SideTwo, SideOne}}, 1
	}

	s1 := st.SideOne.EffectiveSpeed()
	s2 := st.SideTwo.EffectiveSpeed()
	if st.TrickRoom.Active {
		s1, s2 = -s1, -s2
	}
	if s1 > s2 {
		return [][2]SideRef{{SideOne, SideTwo}}, 1
	}
	if s2 > s1 {
		return [][2]SideRef{{SideTwo, SideOne}}, 1
	}
	return [][2]SideRef{{SideOne, SideTwo}, {SideTwo, SideOne}}, 0.5
}

func moverPriority(st *State, ref SideRef, opt Option) int8 {
	if opt.Kind == OptionSwitchTo {
		return 100 // already resolved in phase 1; never contends for move order.
	}
	active := st.Side(ref).Active()
	if opt.MoveIndex < active.NMoves {
		return active.Moves[opt.MoveIndex].Choice.Priority
	}
	return 0
}

// --- Phase 3: moves ---------------------------------------------------------

func genMovePhase(st *State, order [2]SideRef, oneOpt, twoOpt Option, policy DamageRollPolicy) []Branch {
	optFor := func(ref SideRef) Option {
		if ref == SideOne {
			return oneOpt
		}
		return twoOpt
	}

	var out []Branch
	for _, fb := range resolveMover(st, order[0], optFor(order[0]), policy) {
		withState(st, fb.Instructions, func() {
			if st.BattleOver() != 0 {
				out = append(out, fb)
				return
			}
			for _, sb := range resolveMover(st, order[1], optFor(order[1]), policy) {
				out = append(out, Branch{
					Probability:  fb.Probability * sb.Probability,
					Instructions: append(cloneInstrs(fb.Instructions), sb.Instructions...),
				})
			}
		})
	}
	return out
}

// resolveMover resolves one side's chosen action within the move phase. A
// side that switched in phase 1, or whose active fainted before its turn,
// contributes a single certain no-op branch.
func resolveMover(st *State, ref SideRef, opt Option, policy DamageRollPolicy) []Branch {
	if opt.Kind != OptionUseMove && opt.Kind != OptionUseMoveTera {
		return []Branch{{Probability: 1}}
	}
	side := st.Side(ref)
	active := side.Active()
	if active.Fainted() {
		return []Branch{{Probability: 1}}
	}
	return resolveMove(st, ref, opt, policy)
}

type moveOutcome struct {
	Probability  float64
	Instructions []Instruction
	Executes     bool
}

func expandGate(st *State, in []moveOutcome, fn func(st *State, ref SideRef) []moveOutcome, ref SideRef) []moveOutcome {
	var out []moveOutcome
	for _, o := range in {
		if !o.Executes {
			out = append(out, o)
			continue
		}
		withState(st, o.Instructions, func() {
			for _, sub := range fn(st, ref) {
				out = append(out, moveOutcome{
					Probability:  o.Probability * sub.Probability,
					Instructions: append(cloneInstrs(o.Instructions), sub.Instructions...),
					Executes:     sub.Executes,
				})
			}
		})
	}
	return out
}

func gateFlinch(st *State, ref SideRef) []moveOutcome {
	side := st.Side(ref)
	if side.HasVolatile(VolatileFlinch) {
		ins := &RemoveVolatileInstruction{Side: ref, Volatile: VolatileFlinch}
		return []moveOutcome{{Probability: 1, Instructions: []Instruction{ins}, Executes: false}}
	}
	return []moveOutcome{{Probability: 1, Executes: true}}
}

func gateSleep(st *State, ref SideRef) []moveOutcome {
	side := st.Side(ref)
	active := side.Active()
	if active.Status != StatusSleep {
		return []moveOutcome{{Probability: 1, Executes: true}}
	}
	next := active.SleepTurns - 1
	var instrs []Instruction
	instrs = append(instrs, &SetSleepTurnsInstruction{Side: ref, Slot: side.ActiveIndex, Old: active.SleepTurns, New: next})
	if next <= 0 {
		instrs = append(instrs, &ChangeStatusInstruction{Side: ref, Slot: side.ActiveIndex, Old: StatusSleep, New: StatusNone})
		return []moveOutcome{{Probability: 1, Instructions: instrs, Executes: true}}
	}
	return []moveOutcome{{Probability: 1, Instructions: instrs, Executes: false}}
}

func gateFreeze(st *State, ref SideRef) []moveOutcome {
	side := st.Side(ref)
	active := side.Active()
	if active.Status != StatusFreeze {
		return []moveOutcome{{Probability: 1, Executes: true}}
	}
	thaw := &ChangeStatusInstruction{Side: ref, Slot: side.ActiveIndex, Old: StatusFreeze, New: StatusNone}
	return []moveOutcome{
		{Probability: 0.2, Instructions: []Instruction{thaw}, Executes: true},
		{Probability: 0.8, Executes: false},
	}
}

func gateParalysis(st *State, ref SideRef) []moveOutcome {
	side := st.Side(ref)
	if side.Active().Status != StatusParalyze {
		return []moveOutcome{{Probability: 1, Executes: true}}
	}
	return []moveOutcome{
		{Probability: 0.75, Executes: true},
		{Probability: 0.25, Executes: false},
	}
}

func gateConfusion(st *State, ref SideRef) []moveOutcome {
	side := st.Side(ref)
	if !side.HasVolatile(VolatileConfusion) {
		return []moveOutcome{{Probability: 1, Executes: true}}
	}
	active := side.Active()
	dmg := confusionSelfDamage(active)
	ins := buildDamage(active, ref, side.ActiveIndex, dmg)
	return []moveOutcome{
		{Probability: 2.0 / 3, Executes: true},
		{Probability: 1.0 / 3, Instructions: []Instruction{ins}, Executes: false},
	}
}

func confusionSelfDamage(c *Creature) int {
	level := float64(c.Level)
	atk := float64(c.Attack)
	def := float64(c.Defense)
	damage := (2*level/5 + 2)
	damage = float64(int(damage)) * 40
	damage = damage * atk / def
	damage = float64(int(damage/50)) + 2
	dmg := int(damage * 0.925)
	if dmg < 1 {
		dmg = 1
	}
	if dmg > c.HP {
		dmg = c.HP
	}
	return dmg
}

func gateAttract(st *State, ref SideRef) []moveOutcome {
	side := st.Side(ref)
	if !side.HasVolatile(VolatileAttract) {
		return []moveOutcome{{Probability: 1, Executes: true}}
	}
	return []moveOutcome{
		{Probability: 0.5, Executes: true},
		{Probability: 0.5, Executes: false},
	}
}

func gateProtect(st *State, ref SideRef, choice *Choice) []moveOutcome {
	if choice.VolatileInflicted != VolatileProtect {
		return []moveOutcome{{Probability: 1, Executes: true}}
	}
	side := st.Side(ref)
	if side.Conditions.ProtectStreak >= 1 {
		ins := &ChangeSideConditionInstruction{Side: ref, Field: CondProtectStreak, Delta: -side.Conditions.ProtectStreak}
		return []moveOutcome{{Probability: 1, Instructions: []Instruction{ins}, Executes: false}}
	}
	instrs := []Instruction{
		&ApplyVolatileInstruction{Side: ref, Volatile: VolatileProtect},
		&ChangeSideConditionInstruction{Side: ref, Field: CondProtectStreak, Delta: 1},
	}
	return []moveOutcome{{Probability: 1, Instructions: instrs, Executes: false}}
}

// resolveMove runs the full per-mover pipeline: gates, choice hooks, accuracy,
// damage, secondaries, and the after-hit/hazard-clear hooks.
func resolveMove(st *State, ref SideRef, opt Option, policy DamageRollPolicy) []Branch {
	side := st.Side(ref)
	active := side.Active()
	slotIndex := opt.MoveIndex
	choice := active.Moves[slotIndex].Choice // value copy: mutated freely by hooks.

	var setup []Instruction
	if opt.Kind == OptionUseMoveTera {
		setup = append(setup, &ToggleTeraInstruction{
			Side: ref, Slot: side.ActiveIndex,
			OldTera: active.Terastallized, OldType: active.TeraType,
			NewTera: true, NewType: active.TeraType,
		})
	}
	setup = append(setup, &DecrementPPInstruction{Side: ref, Slot: side.ActiveIndex, MoveIndex: slotIndex, Amount: 1})
	setup = append(setup, &SetLastUsedMoveInstruction{
		Side: ref, Old: side.LastUsedMove, New: PendingMove{IsMove: true, Index: slotIndex},
	})

	outcomes := []moveOutcome{{Probability: 1, Instructions: setup, Executes: true}}
	outcomes = expandGate(st, outcomes, gateFlinch, ref)
	outcomes = expandGate(st, outcomes, gateSleep, ref)
	outcomes = expandGate(st, outcomes, gateFreeze, ref)
	outcomes = expandGate(st, outcomes, gateParalysis, ref)
	outcomes = expandGate(st, outcomes, gateConfusion, ref)
	outcomes = expandGate(st, outcomes, gateAttract, ref)
	outcomes = expandGate(st, outcomes, func(st *State, ref SideRef) []moveOutcome {
		return gateProtect(st, ref, &choice)
	}, ref)

	var out []Branch
	for _, o := range outcomes {
		if !o.Executes {
			out = append(out, Branch{Probability: o.Probability, Instructions: o.Instructions})
			continue
		}
		withState(st, o.Instructions, func() {
			for _, mb := range executeMove(st, ref, &choice, policy) {
				out = append(out, Branch{
					Probability:  o.Probability * mb.Probability,
					Instructions: append(cloneInstrs(o.Instructions), mb.Instructions...),
				})
			}
		})
	}
	return out
}

// executeMove runs choice hooks, the accuracy roll, and damage/secondary
// resolution for a move that has passed every pre-move gate.
func executeMove(st *State, ref SideRef, choice *Choice, policy DamageRollPolicy) []Branch {
	out := &[]Instruction{}
	ctx := &HookContext{State: st, AttackerSide: ref, AttackerChoice: choice, Out: out}

	if h, ok := modifyChoiceHooks[choice.Name]; ok {
		h(ctx)
	}
	attackerSide, defenderSide := st.Sides(ref)
	ApplyItemModifyAttackBeingUsed(attackerSide.Active(), choice)
	if !defenderSide.Active().Fainted() {
		ApplyItemModifyAttackAgainst(defenderSide.Active(), choice)
	}
	if h, ok := beforeMoveHooks[choice.Name]; ok {
		h(ctx)
	}

	accuracy := choice.Accuracy
	if accuracy <= 0 || accuracy >= 100 {
		return executeMoveHit(st, ref, choice, policy, *out)
	}

	chance := accuracy / 100 * accuracyBoostMultiplier(
		attackerSide.StatBoosts.Get(StatAccuracy), defenderSide.StatBoosts.Get(StatEvasion))
	if chance > 1 {
		chance = 1
	}
	if chance <= 0 {
		chance = 0.01
	}

	missed := cloneInstrs(*out)
	missBranches := []Branch{{Probability: 1, Instructions: missed}}

	var result []Branch
	hitInstrs := cloneInstrs(*out)
	withState(st, hitInstrs, func() {
		for _, hb := range executeMoveHit(st, ref, choice, policy, nil) {
			result = append(result, Branch{
				Probability:  chance * hb.Probability,
				Instructions: append(cloneInstrs(hitInstrs), hb.Instructions...),
			})
		}
	})
	for _, mb := range missBranches {
		result = append(result, Branch{Probability: (1 - chance) * mb.Probability, Instructions: mb.Instructions})
	}
	return result
}

// executeMoveHit runs the special-effect hook (if any) or standard damage
// calculation, then secondaries and the after-hit/hazard-clear hooks. prior
// carries any instructions already produced by modify-choice/before-move
// hooks so they're included in every returned branch.
func executeMoveHit(st *State, ref SideRef, choice *Choice, policy DamageRollPolicy, prior []Instruction) []Branch {
	out := append([]Instruction{}, prior...)
	ctx := &HookContext{State: st, AttackerSide: ref, AttackerChoice: choice, Out: &out}

	if h, ok := specialEffectHooks[choice.Name]; ok {
		h(ctx)
		applyHazardClear(st, ref, choice, &out)
		return []Branch{{Probability: 1, Instructions: out}}
	}

	if choice.Category != Physical && choice.Category != Special || choice.BasePower <= 0 {
		applyGenericMoveEffects(st, ref, choice, &out)
		applyHazardClear(st, ref, choice, &out)
		return []Branch{{Probability: 1, Instructions: out}}
	}

	attacker, defender := st.Sides(ref)
	critChance := 1.0 / 24
	if choice.CritRatio >= 2 {
		critChance = 1.0 / 8
	}
	if choice.CritRatio >= 3 {
		critChance = 1.0 / 2
	}

	var branches []Branch
	for _, crit := range []bool{false, true} {
		p := 1 - critChance
		if crit {
			p = critChance
		}
		if p <= 0 {
			continue
		}
		rolls := DamageCalc(st, ref, choice, policy, crit)
		for _, dmg := range rolls {
			instrs := cloneInstrs(out)
			trackingDamage := choice.Category == Physical || choice.Category == Special
			if defender.HasVolatile(VolatileSubstitute) && defender.SubstituteHP > 0 && !choice.Flags.Sound {
				taken := dmg
				if taken > defender.SubstituteHP {
					taken = defender.SubstituteHP
				}
				instrs = append(instrs, &DamageSubstituteInstruction{Side: ref.Opposite(), Amount: taken})
				if trackingDamage {
					instrs = append(instrs, &SetDamageDealtInstruction{
						Side: ref.Opposite(), Old: defender.DamageDealt,
						New: DamageRecord{Amount: taken, Category: choice.Category, HitSubstitute: true},
					})
				}
			} else {
				dealt := dmg
				if dealt > defender.Active().HP {
					dealt = defender.Active().HP
				}
				instrs = append(instrs, buildDamage(defender.Active(), ref.Opposite(), defender.ActiveIndex, dmg))
				if trackingDamage {
					instrs = append(instrs, &SetDamageDealtInstruction{
						Side: ref.Opposite(), Old: defender.DamageDealt,
						New: DamageRecord{Amount: dealt, Category: choice.Category, HitSubstitute: false},
					})
				}
				if choice.Drain != 0 && dmg > 0 {
					restore := int(float64(dmg) * choice.Drain)
					if restore > 0 {
						instrs = append(instrs, buildHeal(attacker.Active(), ref, attacker.ActiveIndex, restore))
					}
				}
			}
			sub := cloneInstrs(instrs[len(out):])
			withState(st, append(cloneInstrs(out), sub...), func() {
				applyGenericMoveEffects(st, ref, choice, &sub)
			})
			var secondaryBranches []Branch
			withState(st, cloneInstrs(out), func() {
				secondaryBranches = applySecondariesAndHooks(st, ref, choice, sub)
			})
			for _, sb := range secondaryBranches {
				branches = append(branches, Branch{
					Probability:  p / float64(len(rolls)) * sb.Probability,
					Instructions: append(cloneInstrs(out), sb.Instructions...),
				})
			}
		}
	}
	return branches
}

// applyGenericMoveEffects applies a move's own declared status/volatile/boost
// effects (choice.StatusInflicted, VolatileInflicted, BoostSelf, BoostTarget)
// generically, for moves that carry them without a specialEffectHooks entry
// (status moves like thunderwave/willowisp/spore/toxic, and any damaging
// move that also happens to carry a guaranteed secondary via these fields
// rather than choice.Secondaries). Reads st but does not mutate it: the
// instructions it returns are applied by the caller's withState boundary.
func applyGenericMoveEffects(st *State, ref SideRef, choice *Choice, out *[]Instruction) {
	attacker, defender := st.Sides(ref)

	if choice.StatusInflicted != StatusNone && defender.Active().Status == StatusNone {
		*out = append(*out, &ChangeStatusInstruction{
			Side: ref.Opposite(), Slot: defender.ActiveIndex, Old: StatusNone, New: choice.StatusInflicted,
		})
	}
	if choice.VolatileInflicted != VolatileNone && choice.VolatileInflicted != VolatileProtect && !defender.HasVolatile(choice.VolatileInflicted) {
		*out = append(*out, &ApplyVolatileInstruction{Side: ref.Opposite(), Volatile: choice.VolatileInflicted})
	}
	for stat, delta := range choice.BoostSelf {
		cur := attacker.StatBoosts.Get(stat)
		if applied := clampBoost(cur+delta) - cur; applied != 0 {
			*out = append(*out, &BoostInstruction{Side: ref, Stat: stat, Delta: applied})
		}
	}
	for stat, delta := range choice.BoostTarget {
		cur := defender.StatBoosts.Get(stat)
		if applied := clampBoost(cur+delta) - cur; applied != 0 {
			*out = append(*out, &BoostInstruction{Side: ref.Opposite(), Stat: stat, Delta: applied})
		}
	}
}

// applySecondariesAndHooks resolves a damaging move's chance-based
// secondaries, its after-damage-hit hook, hazard-clear hook, and recharge
// flag, and returns every resulting Branch. Each secondary splits the branch
// set into an apply sub-branch (probability sec.Chance) and a skip
// sub-branch (probability 1-sec.Chance), mirroring the accuracy roll in
// executeMove (spec.md §4.6 step 3f) - so two secondaries on the same choice
// fork independently instead of resolving at a deterministic expected-value
// boundary. prefix is this hit's instruction list and is not yet applied to
// st: the caller's withState boundary applies only what precedes it, and
// each step below applies a branch's own instructions (prefix included)
// before reading, so every hook sees consistent state; returned Branches
// carry prefix plus this function's own additions.
func applySecondariesAndHooks(st *State, ref SideRef, choice *Choice, prefix []Instruction) []Branch {
	branches := []Branch{{Probability: 1, Instructions: cloneInstrs(prefix)}}

	for _, sec := range choice.Secondaries {
		branches = expandSecondary(st, branches, ref, sec)
	}

	var out []Branch
	for _, b := range branches {
		withState(st, b.Instructions, func() {
			var tail []Instruction
			ctx := &HookContext{State: st, AttackerSide: ref, AttackerChoice: choice, Out: &tail}
			if h, ok := afterDamageHitHooks[choice.Name]; ok {
				h(ctx)
			}
			applyHazardClear(st, ref, choice, &tail)
			if choice.Flags.Recharge {
				tail = append(tail, &ApplyVolatileInstruction{Side: ref, Volatile: VolatileMustRecharge})
			}
			out = append(out, Branch{Probability: b.Probability, Instructions: append(cloneInstrs(b.Instructions), tail...)})
		})
	}
	return out
}

// expandSecondary forks each branch in in into an apply/skip pair weighted
// by sec's (serene-grace-doubled, shield-dust-zeroed) chance, reading
// current state with each branch's instructions applied so ability checks
// see the right attacker/defender.
func expandSecondary(st *State, in []Branch, ref SideRef, sec Secondary) []Branch {
	var out []Branch
	for _, b := range in {
		withState(st, b.Instructions, func() {
			attacker, defender := st.Sides(ref)
			if sec.Target == TargetDefender && Abilities[defender.Active().Ability].ShieldDust {
				out = append(out, b)
				return
			}
			chance := sec.Chance
			if Abilities[attacker.Active().Ability].SereneGrace {
				chance *= 2
			}
			if chance > 1 {
				chance = 1
			}
			applyInstrs := secondaryEffectInstructions(ref, sec, attacker, defender)
			if len(applyInstrs) == 0 || chance <= 0 {
				out = append(out, b)
				return
			}
			if chance >= 1 {
				out = append(out, Branch{Probability: b.Probability, Instructions: append(cloneInstrs(b.Instructions), applyInstrs...)})
				return
			}
			out = append(out, Branch{
				Probability:  b.Probability * chance,
				Instructions: append(cloneInstrs(b.Instructions), applyInstrs...),
			})
			out = append(out, Branch{
				Probability:  b.Probability * (1 - chance),
				Instructions: cloneInstrs(b.Instructions),
			})
		})
	}
	return out
}

func secondaryEffectInstructions(ref SideRef, sec Secondary, attacker, defender *Side) []Instruction {
	target := ref
	targetSide := attacker
	if sec.Target == TargetDefender {
		target = ref.Opposite()
		targetSide = defender
	}
	var instrs []Instruction
	if sec.Status != StatusNone && targetSide.Active().Status == StatusNone {
		instrs = append(instrs, &ChangeStatusInstruction{Side: target, Slot: targetSide.ActiveIndex, Old: StatusNone, New: sec.Status})
	}
	if sec.Volatile != VolatileNone && !targetSide.HasVolatile(sec.Volatile) {
		instrs = append(instrs, &ApplyVolatileInstruction{Side: target, Volatile: sec.Volatile})
	}
	for stat, delta := range sec.Boosts {
		cur := targetSide.StatBoosts.Get(stat)
		if applied := clampBoost(cur+delta) - cur; applied != 0 {
			instrs = append(instrs, &BoostInstruction{Side: target, Stat: stat, Delta: applied})
		}
	}
	return instrs
}

// applyHazardClear dispatches a move's hazardClearHooks entry, if any. Pure,
// like every other hook dispatcher here.
func applyHazardClear(st *State, ref SideRef, choice *Choice, out *[]Instruction) {
	if h, ok := hazardClearHooks[choice.Name]; ok {
		ctx := &HookContext{State: st, AttackerSide: ref, AttackerChoice: choice, Out: out}
		h(ctx)
	}
}

// --- Phase 4: end of turn --------------------------------------------------

func genEndOfTurn(st *State) []Branch {
	var instrs []Instruction

	for _, ref := range []SideRef{SideOne, SideTwo} {
		instrs = append(instrs, residualStatus(st, ref)...)
	}
	for _, ref := range []SideRef{SideOne, SideTwo} {
		instrs = append(instrs, residualItem(st, ref)...)
	}
	instrs = append(instrs, weatherResidual(st)...)
	instrs = append(instrs, tickField(st)...)
	for _, ref := range []SideRef{SideOne, SideTwo} {
		instrs = append(instrs, tickPerish(st, ref)...)
	}

	return []Branch{{Probability: 1, Instructions: instrs}}
}

func residualStatus(st *State, ref SideRef) []Instruction {
	side := st.Side(ref)
	active := side.Active()
	if active.Fainted() {
		return nil
	}
	var instrs []Instruction
	switch active.Status {
	case StatusBurn:
		dmg := active.MaxHP / 16
		if dmg < 1 {
			dmg = 1
		}
		if !Abilities[active.Ability].MagicGuard {
			instrs = append(instrs, buildDamage(active, ref, side.ActiveIndex, dmg))
		}
	case StatusPoison:
		dmg := active.MaxHP / 8
		if dmg < 1 {
			dmg = 1
		}
		if !Abilities[active.Ability].MagicGuard {
			instrs = append(instrs, buildDamage(active, ref, side.ActiveIndex, dmg))
		}
	case StatusToxic:
		if !Abilities[active.Ability].MagicGuard {
			// The counter increment is read back from the pre-increment value
			// here since the instruction it feeds hasn't been applied yet;
			// toxic damage scales with the *new* stack count, hence n+1.
			n := side.Conditions.ToxicCounter + 1
			instrs = append(instrs, &ChangeSideConditionInstruction{Side: ref, Field: CondToxicCounter, Delta: 1})
			dmg := active.MaxHP * n / 16
			if dmg < 1 {
				dmg = 1
			}
			instrs = append(instrs, buildDamage(active, ref, side.ActiveIndex, dmg))
		}
	}
	if side.HasVolatile(VolatileLeechSeed) && !Abilities[active.Ability].MagicGuard {
		dmg := active.MaxHP / 8
		if dmg < 1 {
			dmg = 1
		}
		if dmg > active.HP {
			dmg = active.HP
		}
		if dmg > 0 {
			instrs = append(instrs, buildDamage(active, ref, side.ActiveIndex, dmg))
			_, opp := st.Sides(ref)
			if !opp.Active().Fainted() {
				instrs = append(instrs, buildHeal(opp.Active(), ref.Opposite(), opp.ActiveIndex, dmg))
			}
		}
	}
	return instrs
}

// buildHeal constructs a HealInstruction without applying it (see
// buildDamage). amount is clamped to active's missing HP so
// HealInstruction.Reverse always subtracts exactly what Apply added.
func buildHeal(active *Creature, ref SideRef, slot, amount int) Instruction {
	missing := active.MaxHP - active.HP
	if amount > missing {
		amount = missing
	}
	if amount < 0 {
		amount = 0
	}
	return &HealInstruction{Side: ref, Slot: slot, Amount: amount}
}

func residualItem(st *State, ref SideRef) []Instruction {
	side := st.Side(ref)
	active := side.Active()
	if active.Fainted() {
		return nil
	}
	var instrs []Instruction
	item := Items[active.Item]
	if item.Leftovers && active.HP < active.MaxHP {
		heal := active.MaxHP / 16
		if heal < 1 {
			heal = 1
		}
		instrs = append(instrs, buildHeal(active, ref, side.ActiveIndex, heal))
	}
	if item.BurnOrb && active.Status == StatusNone {
		instrs = append(instrs, &ChangeStatusInstruction{Side: ref, Slot: side.ActiveIndex, Old: StatusNone, New: StatusBurn})
	}
	if item.ToxicOrb && active.Status == StatusNone {
		instrs = append(instrs, &ChangeStatusInstruction{Side: ref, Slot: side.ActiveIndex, Old: StatusNone, New: StatusToxic})
	}
	return instrs
}

func weatherResidual(st *State) []Instruction {
	var instrs []Instruction
	if st.Weather.Kind == WeatherSand {
		for _, ref := range []SideRef{SideOne, SideTwo} {
			side := st.Side(ref)
			active := side.Active()
			if active.Fainted() || Abilities[active.Ability].MagicGuard {
				continue
			}
			if active.HasType(Rock) || active.HasType(Ground) || active.HasType(Steel) {
				continue
			}
			dmg := active.MaxHP / 16
			if dmg < 1 {
				dmg = 1
			}
			instrs = append(instrs, buildDamage(active, ref, side.ActiveIndex, dmg))
		}
	}
	if st.Weather.Kind != WeatherNone && !st.Weather.Kind.Infinite() {
		old := st.Weather.TurnsRemaining
		next := old - 1
		ins := &ChangeWeatherInstruction{OldKind: st.Weather.Kind, OldTurns: old}
		if next <= 0 {
			ins.NewKind, ins.NewTurns = WeatherNone, 0
		} else {
			ins.NewKind, ins.NewTurns = st.Weather.Kind, next
		}
		instrs = append(instrs, ins)
	}
	return instrs
}

func tickField(st *State) []Instruction {
	var instrs []Instruction
	for _, ref := range []SideRef{SideOne, SideTwo} {
		side := st.Side(ref)
		if side.Conditions.Reflect > 0 {
			instrs = append(instrs, decrementCond(ref, CondReflect))
		}
		if side.Conditions.LightScreen > 0 {
			instrs = append(instrs, decrementCond(ref, CondLightScreen))
		}
		if side.Conditions.AuroraVeil > 0 {
			instrs = append(instrs, decrementCond(ref, CondAuroraVeil))
		}
		if side.Conditions.Tailwind > 0 {
			instrs = append(instrs, decrementCond(ref, CondTailwind))
		}
	}
	if st.TrickRoom.Active {
		old := st.TrickRoom.TurnsRemaining
		next := old - 1
		instrs = append(instrs, &ToggleTrickRoomInstruction{PrevActive: true, PrevTurns: old, NewActive: next > 0, NewTurns: next})
	}
	return instrs
}

func decrementCond(ref SideRef, field SideConditionField) Instruction {
	return &ChangeSideConditionInstruction{Side: ref, Field: field, Delta: -1}
}

func tickPerish(st *State, ref SideRef) []Instruction {
	side := st.Side(ref)
	var instrs []Instruction
	steps := []struct {
		from, to Volatile
	}{
		{VolatilePerish4, VolatilePerish3},
		{VolatilePerish3, VolatilePerish2},
		{VolatilePerish2, VolatilePerish1},
	}
	// Reading side.HasVolatile fresh for each step (rather than re-reading
	// after a mutation) means only the creature's single current perish
	// stage downgrades this tick, not a cascade through all four in one end
	// of turn.
	for _, s := range steps {
		if side.HasVolatile(s.from) {
			instrs = append(instrs, &RemoveVolatileInstruction{Side: ref, Volatile: s.from})
			instrs = append(instrs, &ApplyVolatileInstruction{Side: ref, Volatile: s.to})
		}
	}
	if side.HasVolatile(VolatilePerish1) {
		active := side.Active()
		dmg := active.HP
		if dmg > 0 {
			instrs = append(instrs, buildDamage(active, ref, side.ActiveIndex, dmg))
		}
	}
	return instrs
}
