package engine

import "fmt"

// Creature is one of a side's six party members: identity, typing, the five
// finalized combat stats, and the mutable fields that change turn to turn
// (HP, status, item, ability, moves).
type Creature struct {
	Species string
	Level   int

	TypePrimary   Type
	TypeSecondary Type // Typeless when the creature has only one type.

	HP, MaxHP int

	Ability string
	Item    string

	Attack, Defense, SpecialAttack, SpecialDefense, Speed int

	Status      NonVolatileStatus
	RestTurns   int
	SleepTurns  int

	Weight float64 // kg

	Moves [6]MoveSlot
	NMoves int // number of moves actually populated in Moves[:NMoves]

	Terastallized bool
	TeraType      Type
}

// Fainted reports whether the creature is out of the battle.
func (c *Creature) Fainted() bool {
	return c.HP <= 0
}

// EffectiveTypes returns the creature's defensive typing, replaced by its
// tera-type when terastallized (spec.md §4.4).
func (c *Creature) EffectiveTypes() (Type, Type) {
	if c.Terastallized {
		return c.TeraType, Typeless
	}
	return c.TypePrimary, c.TypeSecondary
}

// HasType reports whether t is one of the creature's current defensive
// types (post-tera).
func (c *Creature) HasType(t Type) bool {
	a, b := c.EffectiveTypes()
	return a == t || b == t
}

// OriginalSTAB reports whether moveType matched the creature's pre-tera
// typing - used to tell "tera'd into original STAB" (x2.0) apart from a
// fresh tera STAB (x1.5), per spec.md §4.4.
func (c *Creature) OriginalSTAB(moveType Type) bool {
	return moveType == c.TypePrimary || moveType == c.TypeSecondary
}

// BaseStat returns the unboosted value of one of the five combat stats.
// Accuracy/evasion have no base value (they start at multiplier 1 via the
// boost table), so this only covers the five "real" stats.
func (c *Creature) BaseStat(s Stat) int {
	switch s {
	case StatAttack:
		return c.Attack
	case StatDefense:
		return c.Defense
	case StatSpecialAttack:
		return c.SpecialAttack
	case StatSpecialDefense:
		return c.SpecialDefense
	case StatSpeed:
		return c.Speed
	default:
		return 0
	}
}

// statFromBase applies the common base-stat formula (31 IV, 0 EV assumed,
// per original_source/src/genx/state.rs's common_pkmn_stat_calc) to derive a
// finalized stat at level from a species' base stat.
func statFromBase(base, level int) int {
	return (2*base+31)*level/100 + 5
}

// NewCreatureFromSpecies builds a full-HP, unstatused creature at level from
// the species/move tables, the same stat-derivation original_source's
// Pokemon::calculate_stats_from_base_stats uses (HP gets the extra
// level+10 term; the other five stats get the flat +5). Grounded on
// tables.go's Species/Moves dictionaries; callers needing EVs/IVs/natures
// would extend this, but spec.md §1 treats those as out of scope.
func NewCreatureFromSpecies(species string, level int, moveIDs []string) (Creature, error) {
	base, ok := Species[species]
	if !ok {
		return Creature{}, fmt.Errorf("%w: unknown species %q", ErrUnknownEnum, species)
	}
	if len(moveIDs) > 6 {
		return Creature{}, fmt.Errorf("%w: %d moves exceeds the 6-move limit", ErrMalformedInput, len(moveIDs))
	}

	maxHP := statFromBase(base.BaseHP, level) + level + 5
	c := Creature{
		Species:       species,
		Level:         level,
		TypePrimary:   base.TypePrimary,
		TypeSecondary: base.TypeSecondary,
		HP:            maxHP,
		MaxHP:         maxHP,
		Ability:       "none",
		Item:          "none",
		Attack:        statFromBase(base.BaseAttack, level),
		Defense:       statFromBase(base.BaseDefense, level),
		SpecialAttack: statFromBase(base.BaseSpecialAttack, level),
		SpecialDefense: statFromBase(base.BaseSpecialDefense, level),
		Speed:         statFromBase(base.BaseSpeed, level),
		Weight:        base.Weight,
		NMoves:        len(moveIDs),
	}
	for i, id := range moveIDs {
		choice, ok := Moves[id]
		if !ok {
			return Creature{}, fmt.Errorf("%w: unknown move %q", ErrUnknownEnum, id)
		}
		c.Moves[i] = MoveSlot{ID: id, Choice: choice, PP: 16, MaxPP: 16}
	}
	return c, nil
}
