package engine

// MoveFlags are the boolean tags a move carries (contact, sound, charge, …).
// A closed, small set: only the flags a choice-effects hook actually reads.
type MoveFlags struct {
	Contact   bool
	Sound     bool
	Charge    bool // two-turn move: charges on the first turn.
	Recharge  bool // user must recharge the following turn.
	Protectable bool
	Heal      bool
	Drain     bool
}

// Secondary is one of a move's secondary effects: with probability Chance,
// it inflicts a volatile/non-volatile status, a boost, or a flinch.
type Secondary struct {
	Chance  float64 // 0..1
	Status  NonVolatileStatus
	Volatile Volatile
	Boosts  map[Stat]int8 // stat -> signed delta, applied to the target
	Target  SecondaryTarget
}

// SecondaryTarget says whether a secondary effect lands on the move's user
// or on the defender.
type SecondaryTarget uint8

const (
	TargetDefender SecondaryTarget = iota
	TargetUser
)

// Choice is the static, table-sourced record describing a move. Every
// MoveSlot holds a value copy so mid-turn modify-choice mutations never leak
// back into the shared, read-only table (spec.md §4.1/§9 "Ownership of data
// tables").
type Choice struct {
	Name       string
	BasePower  float64
	Accuracy   float64 // 0 means "always hits" (e.g. swift); 100 is normal max.
	Category   Category
	Type       Type
	Priority   int8
	Flags      MoveFlags
	Secondaries []Secondary
	CritRatio  int // crit stage: below 2 gives a 1/24 chance, 2 gives 1/8, 3 or more gives 1/2.

	Drain      float64 // fraction of damage dealt restored to the user (negative = recoil).
	HealFraction float64 // fraction of user's max HP restored by a pure-heal move.
	BoostSelf  map[Stat]int8
	BoostTarget map[Stat]int8
	VolatileInflicted Volatile
	StatusInflicted   NonVolatileStatus
	MultiHitMin, MultiHitMax int // 0,0 means a single hit.

	SwitchID int // only meaningful when Category == SwitchCategory; index into the side's team.
}

// MoveSlot is a creature's learned move: the move's key, the cached Choice
// copy, whether it's disabled, and remaining PP.
type MoveSlot struct {
	ID       string
	Choice   Choice
	Disabled bool
	PP       int
	MaxPP    int
}

// CanSelect reports whether this slot may legally be chosen right now.
func (m *MoveSlot) CanSelect() bool {
	return !m.Disabled && m.PP > 0
}
