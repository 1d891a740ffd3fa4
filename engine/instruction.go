package engine

// Instruction is one atomic, reversible delta on a State. Every variant
// carries both its new value and enough of the prior value to reverse
// itself exactly (spec.md §4.1, §9 "write the apply and the reverse
// together, never alone").
type Instruction interface {
	Apply(st *State)
	Reverse(st *State)
}

// Branch is one outcome of the generator: a probability and the ordered
// instruction list that produces it.
type Branch struct {
	Probability float64
	Instructions []Instruction
}

// ApplyList applies every instruction in order.
func ApplyList(st *State, list []Instruction) {
	for _, ins := range list {
		ins.Apply(st)
	}
}

// ReverseList reverses every instruction in reverse order, undoing ApplyList
// exactly (spec.md §4.2).
func ReverseList(st *State, list []Instruction) {
	for i := len(list) - 1; i >= 0; i-- {
		list[i].Reverse(st)
	}
}

// --- Damage / heal -----------------------------------------------------

// DamageInstruction subtracts Amount HP from a creature slot, floored at 0.
type DamageInstruction struct {
	Side   SideRef
	Slot   int
	Amount int
}

func (d *DamageInstruction) Apply(st *State) {
	p := &st.Side(d.Side).Pokemon[d.Slot]
	p.HP -= d.Amount
	if p.HP < 0 {
		p.HP = 0
	}
}

func (d *DamageInstruction) Reverse(st *State) {
	p := &st.Side(d.Side).Pokemon[d.Slot]
	p.HP += d.Amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}

// HealInstruction adds Amount HP to a creature slot, capped at MaxHP.
type HealInstruction struct {
	Side   SideRef
	Slot   int
	Amount int
}

func (h *HealInstruction) Apply(st *State) {
	p := &st.Side(h.Side).Pokemon[h.Slot]
	p.HP += h.Amount
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}

func (h *HealInstruction) Reverse(st *State) {
	p := &st.Side(h.Side).Pokemon[h.Slot]
	p.HP -= h.Amount
	if p.HP < 0 {
		p.HP = 0
	}
}

// --- Switch --------------------------------------------------------------

// SwitchInstruction changes which party member is active. It carries no
// volatile/boost state itself: the generator clears those with their own
// explicit Remove-volatile/Boost instructions before emitting the switch, so
// every change still reverses through its own paired instruction (spec.md
// §9 "write the apply and the reverse together, never alone").
type SwitchInstruction struct {
	Side     SideRef
	Previous int
	Next     int
}

func (s *SwitchInstruction) Apply(st *State) {
	st.Side(s.Side).ActiveIndex = s.Next
}

func (s *SwitchInstruction) Reverse(st *State) {
	st.Side(s.Side).ActiveIndex = s.Previous
}

// --- Volatile status -------------------------------------------------------

// ApplyVolatileInstruction adds a volatile status to a side's active slot.
type ApplyVolatileInstruction struct {
	Side     SideRef
	Volatile Volatile
}

func (a *ApplyVolatileInstruction) Apply(st *State) {
	st.Side(a.Side).Volatiles[a.Volatile] = true
}

func (a *ApplyVolatileInstruction) Reverse(st *State) {
	delete(st.Side(a.Side).Volatiles, a.Volatile)
}

// RemoveVolatileInstruction removes a volatile status from a side's active slot.
type RemoveVolatileInstruction struct {
	Side     SideRef
	Volatile Volatile
}

func (r *RemoveVolatileInstruction) Apply(st *State) {
	delete(st.Side(r.Side).Volatiles, r.Volatile)
}

func (r *RemoveVolatileInstruction) Reverse(st *State) {
	st.Side(r.Side).Volatiles[r.Volatile] = true
}

// --- Non-volatile status ---------------------------------------------------

// ChangeStatusInstruction records both the old and new major status so it
// can reverse exactly.
type ChangeStatusInstruction struct {
	Side SideRef
	Slot int
	Old, New NonVolatileStatus
}

func (c *ChangeStatusInstruction) Apply(st *State) {
	st.Side(c.Side).Pokemon[c.Slot].Status = c.New
}

func (c *ChangeStatusInstruction) Reverse(st *State) {
	st.Side(c.Side).Pokemon[c.Slot].Status = c.Old
}

// --- Boosts ----------------------------------------------------------------

// BoostInstruction applies a signed delta to one stat stage, clamped to
// [-6, 6]. Delta is the amount actually applied (post-clamp), so reversal
// simply subtracts it back.
type BoostInstruction struct {
	Side  SideRef
	Stat  Stat
	Delta int8
}

func (b *BoostInstruction) Apply(st *State) {
	side := st.Side(b.Side)
	side.StatBoosts.Set(b.Stat, side.StatBoosts.Get(b.Stat)+b.Delta)
}

func (b *BoostInstruction) Reverse(st *State) {
	side := st.Side(b.Side)
	side.StatBoosts.Set(b.Stat, side.StatBoosts.Get(b.Stat)-b.Delta)
}

// --- Side conditions ---------------------------------------------------

// SideConditionField names one of the SideConditions integer counters.
type SideConditionField uint8

const (
	CondSpikes SideConditionField = iota
	CondToxicSpikes
	CondStealthRock
	CondStickyWeb
	CondReflect
	CondLightScreen
	CondAuroraVeil
	CondTailwind
	CondProtectStreak
	CondHealingWish
	CondLunarDance
	CondToxicCounter
	CondMist
	CondSafeguard
	CondSlowStart
	CondWideGuard
	CondQuickGuard
	CondCraftyShield
	CondMatBlock
)

func sideConditionPtr(s *Side, f SideConditionField) *int {
	switch f {
	case CondSpikes:
		return &s.Conditions.Spikes
	case CondToxicSpikes:
		return &s.Conditions.ToxicSpikes
	case CondStealthRock:
		return &s.Conditions.StealthRock
	case CondStickyWeb:
		return &s.Conditions.StickyWeb
	case CondReflect:
		return &s.Conditions.Reflect
	case CondLightScreen:
		return &s.Conditions.LightScreen
	case CondAuroraVeil:
		return &s.Conditions.AuroraVeil
	case CondTailwind:
		return &s.Conditions.Tailwind
	case CondProtectStreak:
		return &s.Conditions.ProtectStreak
	case CondHealingWish:
		return &s.Conditions.HealingWish
	case CondLunarDance:
		return &s.Conditions.LunarDance
	case CondToxicCounter:
		return &s.Conditions.ToxicCounter
	case CondMist:
		return &s.Conditions.Mist
	case CondSafeguard:
		return &s.Conditions.Safeguard
	case CondSlowStart:
		return &s.Conditions.SlowStart
	case CondWideGuard:
		return &s.Conditions.WideGuard
	case CondQuickGuard:
		return &s.Conditions.QuickGuard
	case CondCraftyShield:
		return &s.Conditions.CraftyShield
	case CondMatBlock:
		return &s.Conditions.MatBlock
	default:
		return nil
	}
}

// ChangeSideConditionInstruction applies a signed delta to one side
// condition counter.
type ChangeSideConditionInstruction struct {
	Side  SideRef
	Field SideConditionField
	Delta int
}

func (c *ChangeSideConditionInstruction) Apply(st *State) {
	*sideConditionPtr(st.Side(c.Side), c.Field) += c.Delta
}

func (c *ChangeSideConditionInstruction) Reverse(st *State) {
	*sideConditionPtr(st.Side(c.Side), c.Field) -= c.Delta
}

// --- Weather / terrain / trick room -------------------------------------

// ChangeWeatherInstruction records the full previous and next weather state.
type ChangeWeatherInstruction struct {
	OldKind WeatherKind
	OldTurns int
	NewKind WeatherKind
	NewTurns int
}

func (c *ChangeWeatherInstruction) Apply(st *State) {
	st.Weather = StateWeather{Kind: c.NewKind, TurnsRemaining: c.NewTurns}
}

func (c *ChangeWeatherInstruction) Reverse(st *State) {
	st.Weather = StateWeather{Kind: c.OldKind, TurnsRemaining: c.OldTurns}
}

// DecrementWeatherInstruction ticks weather duration down by one (only used
// for finite, non-ability-sourced weather).
type DecrementWeatherInstruction struct{}

func (d *DecrementWeatherInstruction) Apply(st *State) {
	st.Weather.TurnsRemaining--
	if st.Weather.TurnsRemaining <= 0 {
		st.Weather = StateWeather{}
	}
}

func (d *DecrementWeatherInstruction) Reverse(st *State) {
	// Weather-expiry is folded into ChangeWeatherInstruction by the
	// generator (it always emits the full before/after pair instead of a
	// bare decrement when expiry is possible), so this is a pure
	// turns-remaining decrement used only mid-duration.
	st.Weather.TurnsRemaining++
}

// ChangeTerrainInstruction records the full previous and next terrain state.
type ChangeTerrainInstruction struct {
	OldKind  TerrainKind
	OldTurns int
	NewKind  TerrainKind
	NewTurns int
}

func (c *ChangeTerrainInstruction) Apply(st *State) {
	st.Terrain = StateTerrain{Kind: c.NewKind, TurnsRemaining: c.NewTurns}
}

func (c *ChangeTerrainInstruction) Reverse(st *State) {
	st.Terrain = StateTerrain{Kind: c.OldKind, TurnsRemaining: c.OldTurns}
}

// ToggleTrickRoomInstruction flips trick-room, recording the prior
// turns-remaining so reversal restores it exactly.
type ToggleTrickRoomInstruction struct {
	PrevActive bool
	PrevTurns  int
	NewActive  bool
	NewTurns   int
}

func (t *ToggleTrickRoomInstruction) Apply(st *State) {
	st.TrickRoom = TrickRoom{Active: t.NewActive, TurnsRemaining: t.NewTurns}
}

func (t *ToggleTrickRoomInstruction) Reverse(st *State) {
	st.TrickRoom = TrickRoom{Active: t.PrevActive, TurnsRemaining: t.PrevTurns}
}

// --- Item / type change --------------------------------------------------

// ChangeItemInstruction records both the old and new item key.
type ChangeItemInstruction struct {
	Side SideRef
	Slot int
	Old, New string
}

func (c *ChangeItemInstruction) Apply(st *State) {
	st.Side(c.Side).Pokemon[c.Slot].Item = c.New
}

func (c *ChangeItemInstruction) Reverse(st *State) {
	st.Side(c.Side).Pokemon[c.Slot].Item = c.Old
}

// ChangeTypeInstruction records both the old and new primary type of a
// creature, for reflect-type / soak-class effects that overwrite a
// creature's type. Move-type overrides such as weather ball edit the Choice
// copy directly and do not use it.
type ChangeTypeInstruction struct {
	Side SideRef
	Slot int
	OldPrimary, OldSecondary Type
	NewPrimary, NewSecondary Type
}

func (c *ChangeTypeInstruction) Apply(st *State) {
	p := &st.Side(c.Side).Pokemon[c.Slot]
	p.TypePrimary, p.TypeSecondary = c.NewPrimary, c.NewSecondary
}

func (c *ChangeTypeInstruction) Reverse(st *State) {
	p := &st.Side(c.Side).Pokemon[c.Slot]
	p.TypePrimary, p.TypeSecondary = c.OldPrimary, c.OldSecondary
}

// --- Move enable/disable/PP ------------------------------------------------

// SetMoveDisabledInstruction records the previous disabled flag.
type SetMoveDisabledInstruction struct {
	Side SideRef
	Slot int
	MoveIndex int
	Old, New bool
}

func (s *SetMoveDisabledInstruction) Apply(st *State) {
	st.Side(s.Side).Pokemon[s.Slot].Moves[s.MoveIndex].Disabled = s.New
}

func (s *SetMoveDisabledInstruction) Reverse(st *State) {
	st.Side(s.Side).Pokemon[s.Slot].Moves[s.MoveIndex].Disabled = s.Old
}

// DecrementPPInstruction subtracts Amount PP from a move slot.
type DecrementPPInstruction struct {
	Side SideRef
	Slot int
	MoveIndex int
	Amount int
}

func (d *DecrementPPInstruction) Apply(st *State) {
	m := &st.Side(d.Side).Pokemon[d.Slot].Moves[d.MoveIndex]
	m.PP -= d.Amount
	if m.PP < 0 {
		m.PP = 0
	}
}

func (d *DecrementPPInstruction) Reverse(st *State) {
	m := &st.Side(d.Side).Pokemon[d.Slot].Moves[d.MoveIndex]
	m.PP += d.Amount
}

// --- Wish / future sight ----------------------------------------------

// ChangeWishInstruction records the whole previous/next wish state.
type ChangeWishInstruction struct {
	Side SideRef
	Old, New WishState
}

func (c *ChangeWishInstruction) Apply(st *State)   { st.Side(c.Side).Wish = c.New }
func (c *ChangeWishInstruction) Reverse(st *State) { st.Side(c.Side).Wish = c.Old }

// DecrementWishInstruction ticks a pending wish's turn counter down by one.
type DecrementWishInstruction struct {
	Side SideRef
}

func (d *DecrementWishInstruction) Apply(st *State) {
	st.Side(d.Side).Wish.TurnsRemaining--
}

func (d *DecrementWishInstruction) Reverse(st *State) {
	st.Side(d.Side).Wish.TurnsRemaining++
}

// SetFutureSightInstruction records the whole previous/next future-sight state.
type SetFutureSightInstruction struct {
	Side SideRef
	Old, New FutureSightState
}

func (s *SetFutureSightInstruction) Apply(st *State)   { st.Side(s.Side).FutureSight = s.New }
func (s *SetFutureSightInstruction) Reverse(st *State) { st.Side(s.Side).FutureSight = s.Old }

// DecrementFutureSightInstruction ticks a pending future-sight counter down by one.
type DecrementFutureSightInstruction struct {
	Side SideRef
}

func (d *DecrementFutureSightInstruction) Apply(st *State) {
	st.Side(d.Side).FutureSight.TurnsRemaining--
}

func (d *DecrementFutureSightInstruction) Reverse(st *State) {
	st.Side(d.Side).FutureSight.TurnsRemaining++
}

// --- Substitute ------------------------------------------------------------

// DamageSubstituteInstruction subtracts Amount HP from the side's substitute.
type DamageSubstituteInstruction struct {
	Side   SideRef
	Amount int
}

func (d *DamageSubstituteInstruction) Apply(st *State) {
	side := st.Side(d.Side)
	side.SubstituteHP -= d.Amount
	if side.SubstituteHP < 0 {
		side.SubstituteHP = 0
	}
}

func (d *DamageSubstituteInstruction) Reverse(st *State) {
	st.Side(d.Side).SubstituteHP += d.Amount
}

// SetSubstituteHealthInstruction records the previous/next substitute HP.
type SetSubstituteHealthInstruction struct {
	Side SideRef
	Old, New int
}

func (s *SetSubstituteHealthInstruction) Apply(st *State)   { st.Side(s.Side).SubstituteHP = s.New }
func (s *SetSubstituteHealthInstruction) Reverse(st *State) { st.Side(s.Side).SubstituteHP = s.Old }

// --- Rest / sleep turn counters -----------------------------------------

// SetRestTurnsInstruction records the previous/next rest-turn counter.
type SetRestTurnsInstruction struct {
	Side SideRef
	Slot int
	Old, New int
}

func (s *SetRestTurnsInstruction) Apply(st *State)   { st.Side(s.Side).Pokemon[s.Slot].RestTurns = s.New }
func (s *SetRestTurnsInstruction) Reverse(st *State) { st.Side(s.Side).Pokemon[s.Slot].RestTurns = s.Old }

// SetSleepTurnsInstruction records the previous/next sleep-turn counter.
type SetSleepTurnsInstruction struct {
	Side SideRef
	Slot int
	Old, New int
}

func (s *SetSleepTurnsInstruction) Apply(st *State)   { st.Side(s.Side).Pokemon[s.Slot].SleepTurns = s.New }
func (s *SetSleepTurnsInstruction) Reverse(st *State) { st.Side(s.Side).Pokemon[s.Slot].SleepTurns = s.Old }

// --- Turn-level flags -------------------------------------------------

// ToggleForceSwitchInstruction records the previous/next force-switch flag.
type ToggleForceSwitchInstruction struct {
	Side SideRef
	Old, New bool
}

func (t *ToggleForceSwitchInstruction) Apply(st *State)   { st.Side(t.Side).ForceSwitch = t.New }
func (t *ToggleForceSwitchInstruction) Reverse(st *State) { st.Side(t.Side).ForceSwitch = t.Old }

// SetSavedPivotMoveInstruction records the previous/next delayed pivot move.
type SetSavedPivotMoveInstruction struct {
	Side SideRef
	Old, New *PendingMove
}

func (s *SetSavedPivotMoveInstruction) Apply(st *State)   { st.Side(s.Side).SavedPivotMove = s.New }
func (s *SetSavedPivotMoveInstruction) Reverse(st *State) { st.Side(s.Side).SavedPivotMove = s.Old }

// ToggleBatonPassInstruction records the previous/next baton-passing flag.
type ToggleBatonPassInstruction struct {
	Side SideRef
	Old, New bool
}

func (t *ToggleBatonPassInstruction) Apply(st *State)   { st.Side(t.Side).BatonPassing = t.New }
func (t *ToggleBatonPassInstruction) Reverse(st *State) { st.Side(t.Side).BatonPassing = t.Old }

// ToggleForceTrappedInstruction records the previous/next force-trapped flag.
type ToggleForceTrappedInstruction struct {
	Side SideRef
	Old, New bool
}

func (t *ToggleForceTrappedInstruction) Apply(st *State)   { st.Side(t.Side).ForceTrapped = t.New }
func (t *ToggleForceTrappedInstruction) Reverse(st *State) { st.Side(t.Side).ForceTrapped = t.Old }

// SetLastUsedMoveInstruction records the previous/next last-used-move tag.
type SetLastUsedMoveInstruction struct {
	Side SideRef
	Old, New PendingMove
}

func (s *SetLastUsedMoveInstruction) Apply(st *State)   { st.Side(s.Side).LastUsedMove = s.New }
func (s *SetLastUsedMoveInstruction) Reverse(st *State) { st.Side(s.Side).LastUsedMove = s.Old }

// ToggleSlowPivotInstruction records the previous/next slow-pivot-pending flag.
type ToggleSlowPivotInstruction struct {
	Side SideRef
	Old, New bool
}

func (t *ToggleSlowPivotInstruction) Apply(st *State)   { st.Side(t.Side).SlowPivotPending = t.New }
func (t *ToggleSlowPivotInstruction) Reverse(st *State) { st.Side(t.Side).SlowPivotPending = t.Old }

// SetDamageDealtInstruction records the previous/next per-turn damage-dealt
// bookkeeping (amount, category, whether it hit a substitute).
type SetDamageDealtInstruction struct {
	Side SideRef
	Old, New DamageRecord
}

func (s *SetDamageDealtInstruction) Apply(st *State)   { st.Side(s.Side).DamageDealt = s.New }
func (s *SetDamageDealtInstruction) Reverse(st *State) { st.Side(s.Side).DamageDealt = s.Old }

// ToggleTeraInstruction records the previous/next terastallized flag and type.
type ToggleTeraInstruction struct {
	Side SideRef
	Slot int
	OldTera bool
	OldType Type
	NewTera bool
	NewType Type
}

func (t *ToggleTeraInstruction) Apply(st *State) {
	p := &st.Side(t.Side).Pokemon[t.Slot]
	p.Terastallized, p.TeraType = t.NewTera, t.NewType
}

func (t *ToggleTeraInstruction) Reverse(st *State) {
	p := &st.Side(t.Side).Pokemon[t.Slot]
	p.Terastallized, p.TeraType = t.OldTera, t.OldType
}

// FormeChangeInstruction records a full stat-block forme change (e.g. a
// mega/primal/paradox-style transformation triggered mid-battle). Only the
// fields that can actually change are carried.
type FormeChangeInstruction struct {
	Side SideRef
	Slot int
	OldSpecies, NewSpecies string
	OldAttack, OldDefense, OldSpecialAttack, OldSpecialDefense, OldSpeed int
	NewAttack, NewDefense, NewSpecialAttack, NewSpecialDefense, NewSpeed int
}

func (f *FormeChangeInstruction) Apply(st *State) {
	p := &st.Side(f.Side).Pokemon[f.Slot]
	p.Species = f.NewSpecies
	p.Attack, p.Defense, p.SpecialAttack, p.SpecialDefense, p.Speed =
		f.NewAttack, f.NewDefense, f.NewSpecialAttack, f.NewSpecialDefense, f.NewSpeed
}

func (f *FormeChangeInstruction) Reverse(st *State) {
	p := &st.Side(f.Side).Pokemon[f.Slot]
	p.Species = f.OldSpecies
	p.Attack, p.Defense, p.SpecialAttack, p.SpecialDefense, p.Speed =
		f.OldAttack, f.OldDefense, f.OldSpecialAttack, f.OldSpecialDefense, f.OldSpeed
}
