package engine

// SideConditions are the per-side persistent integer counters: hazards,
// screens, tailwind. Stored as a flat struct (rather than a map) because the
// set is closed and small; notation/state.go serializes them as 19 ';'-separated
// integers in table order.
type SideConditions struct {
	Spikes       int // 0..3
	ToxicSpikes  int // 0..2
	StealthRock  int // 0..1
	StickyWeb    int // 0..1
	Reflect      int // turns remaining
	LightScreen  int // turns remaining
	AuroraVeil   int // turns remaining
	Tailwind     int // turns remaining
	ProtectStreak int
	HealingWish  int // 0/1 pending
	LunarDance   int // 0/1 pending
	ToxicCounter int
	Mist         int
	Safeguard    int
	SlowStart    int // unused placeholder kept for the 19-field wire width
	WideGuard    int
	QuickGuard   int
	CraftyShield int
	MatBlock     int
}

// NumSideConditions is the fixed width of the wire-format side-conditions
// region (spec.md §6: "Side-conditions is 19 ';'-separated integers").
const NumSideConditions = 19

// AsSlice returns the side conditions in the fixed wire order.
func (sc *SideConditions) AsSlice() [NumSideConditions]int {
	return [NumSideConditions]int{
		sc.Spikes, sc.ToxicSpikes, sc.StealthRock, sc.StickyWeb,
		sc.Reflect, sc.LightScreen, sc.AuroraVeil, sc.Tailwind,
		sc.ProtectStreak, sc.HealingWish, sc.LunarDance, sc.ToxicCounter,
		sc.Mist, sc.Safeguard, sc.SlowStart, sc.WideGuard, sc.QuickGuard,
		sc.CraftyShield, sc.MatBlock,
	}
}

// FromSlice loads the side conditions from the fixed wire order.
func (sc *SideConditions) FromSlice(v [NumSideConditions]int) {
	sc.Spikes, sc.ToxicSpikes, sc.StealthRock, sc.StickyWeb = v[0], v[1], v[2], v[3]
	sc.Reflect, sc.LightScreen, sc.AuroraVeil, sc.Tailwind = v[4], v[5], v[6], v[7]
	sc.ProtectStreak, sc.HealingWish, sc.LunarDance, sc.ToxicCounter = v[8], v[9], v[10], v[11]
	sc.Mist, sc.Safeguard, sc.SlowStart, sc.WideGuard = v[12], v[13], v[14], v[15]
	sc.QuickGuard, sc.CraftyShield, sc.MatBlock = v[16], v[17], v[18]
}

// Boosts holds the seven stat-stage boosts, each in [-6, 6].
type Boosts [int(numStats)]int8

// Get returns the stage for a stat.
func (b Boosts) Get(s Stat) int8 { return b[s] }

// Set assigns (and clamps) the stage for a stat.
func (b *Boosts) Set(s Stat, v int8) { b[s] = clampBoost(v) }

// PendingMove tags what a side did last: a move-slot index, a switch-to
// index, or neither.
type PendingMove struct {
	IsMove   bool
	IsSwitch bool
	Index    int
}

// NoLastMove is the zero value: neither a move nor a switch.
var NoLastMove = PendingMove{}

// DamageRecord is the per-turn "damage dealt" bookkeeping a side keeps about
// the hit it just took, consumed by counter-class moves.
type DamageRecord struct {
	Amount      int
	Category    Category
	HitSubstitute bool
}

// WishState is a side's pending wish: turns-remaining and the HP it will
// restore when it resolves.
type WishState struct {
	TurnsRemaining int
	HealAmount     int
}

// FutureSightState is a side's pending future-sight/doom-desire.
type FutureSightState struct {
	TurnsRemaining int
	SourceSlot     int
}

// Side is one player's half of the battle: six creatures, which one is
// active, persistent side conditions, and the active creature's volatile
// statuses/boosts/substitute.
type Side struct {
	Pokemon     [6]Creature
	ActiveIndex int

	Conditions SideConditions

	Wish        WishState
	FutureSight FutureSightState

	ForceSwitch    bool
	ForceTrapped   bool
	BatonPassing   bool
	SlowPivotPending bool

	Volatiles     map[Volatile]bool
	SubstituteHP  int
	StatBoosts    Boosts

	LastUsedMove PendingMove

	DamageDealt DamageRecord

	// SavedPivotMove is the "delayed second move" slot used when the
	// opponent pivots mid-turn and this side's chosen action must wait.
	SavedPivotMove *PendingMove
}

// NewSide returns a zeroed Side with its maps initialized.
func NewSide() *Side {
	return &Side{Volatiles: make(map[Volatile]bool)}
}

// Active returns the side's active creature.
func (s *Side) Active() *Creature {
	return &s.Pokemon[s.ActiveIndex]
}

// HasVolatile reports whether the active creature carries v.
func (s *Side) HasVolatile(v Volatile) bool {
	return s.Volatiles[v]
}

// AnyAlive reports whether at least one creature on the side has HP left.
func (s *Side) AnyAlive() bool {
	for i := range s.Pokemon {
		if !s.Pokemon[i].Fainted() {
			return true
		}
	}
	return false
}

// EffectiveSpeed returns the active creature's speed after boosts and the
// paralysis/tailwind modifiers (trick-room's inversion is applied by the
// caller, since it's a whole-state comparison rule, not a per-side one).
func (s *Side) EffectiveSpeed() int {
	active := s.Active()
	speed := applyBoost(s.StatBoosts.Get(StatSpeed), active.Speed)
	if active.Status == StatusParalyze {
		speed /= 2
	}
	if s.Conditions.Tailwind > 0 {
		speed *= 2
	}
	if active.Item == "choicescarf" {
		speed = speed * 3 / 2
	}
	return speed
}
