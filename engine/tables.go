package engine

// Data tables: moves, abilities, items, species, and the 19x19 type chart.
// spec.md §1 treats these as "opaque lookup dictionaries keyed by
// enumerated names" and out of scope; this file ships a small, realistic,
// hand-authored seed - enough named moves/abilities/items/species to drive
// every choice-effects hook kind and the spec.md §8 scenario tests, not an
// exhaustive data dump. Tables are process-wide, read-only after init
// (spec.md §9 "Ownership of data tables").

// TypeChart is the 19x19 type-effectiveness multiplier table, attacker row
// by defender column, in the exact order damage_calc.rs uses (Normal first,
// Typeless last, so multipliers against Typeless are always neutral).
var TypeChart = [numTypes][numTypes]float64{
	Normal:   {1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 0.5, 0, 1, 1, 0.5, 1, 1},
	Fire:     {1, 0.5, 0.5, 1, 2, 2, 1, 1, 1, 1, 1, 2, 0.5, 1, 0.5, 1, 2, 1, 1},
	Water:    {1, 2, 0.5, 1, 0.5, 1, 1, 1, 2, 1, 1, 1, 2, 1, 0.5, 1, 1, 1, 1},
	Electric: {1, 1, 2, 0.5, 0.5, 1, 1, 1, 0, 2, 1, 1, 1, 1, 0.5, 1, 1, 1, 1},
	Grass:    {1, 0.5, 2, 1, 0.5, 1, 1, 0.5, 2, 0.5, 1, 0.5, 2, 1, 0.5, 1, 0.5, 1, 1},
	Ice:      {1, 0.5, 0.5, 1, 2, 0.5, 1, 1, 2, 2, 1, 1, 1, 1, 2, 1, 0.5, 1, 1},
	Fighting: {2, 1, 1, 1, 1, 2, 1, 0.5, 1, 0.5, 0.5, 0.5, 2, 0, 1, 2, 2, 0.5, 1},
	Poison:   {1, 1, 1, 1, 2, 1, 1, 0.5, 0.5, 1, 1, 1, 0.5, 0.5, 1, 1, 0, 2, 1},
	Ground:   {1, 2, 1, 2, 0.5, 1, 1, 2, 1, 0, 1, 0.5, 2, 1, 1, 1, 2, 1, 1},
	Flying:   {1, 1, 1, 0.5, 2, 1, 2, 1, 1, 1, 1, 2, 0.5, 1, 1, 1, 0.5, 1, 1},
	Psychic:  {1, 1, 1, 1, 1, 1, 2, 2, 1, 1, 0.5, 1, 1, 1, 1, 0, 0.5, 1, 1},
	Bug:      {1, 0.5, 1, 1, 2, 1, 0.5, 0.5, 1, 0.5, 2, 1, 1, 0.5, 1, 2, 0.5, 0.5, 1},
	Rock:     {1, 2, 1, 1, 1, 2, 0.5, 1, 0.5, 2, 1, 2, 1, 1, 1, 1, 0.5, 1, 1},
	Ghost:    {0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 1, 1, 2, 1, 0.5, 1, 1, 1},
	Dragon:   {1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 1, 0.5, 0, 1},
	Dark:     {1, 1, 1, 1, 1, 1, 0.5, 1, 1, 1, 2, 1, 1, 2, 1, 0.5, 1, 0.5, 1},
	Steel:    {1, 0.5, 0.5, 0.5, 1, 2, 1, 1, 1, 1, 1, 1, 2, 1, 1, 1, 0.5, 2, 1},
	Fairy:    {1, 0.5, 1, 1, 1, 1, 2, 0.5, 1, 1, 1, 1, 1, 1, 2, 2, 0.5, 1, 1},
	Typeless: {1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
}

// Effectiveness returns the combined multiplier of attackingType against a
// dual-typed defender (spec.md §4.4: product over defender's types).
func Effectiveness(attackingType Type, defA, defB Type) float64 {
	return TypeChart[attackingType][defA] * TypeChart[attackingType][defB]
}

// Moves is the opaque move-key -> static Choice dictionary. Lowercased keys,
// matching the action-name contract in spec.md §6.
var Moves = map[string]Choice{
	"tackle": {
		Name: "tackle", BasePower: 40, Accuracy: 100, Category: Physical, Type: Normal,
		Flags: MoveFlags{Contact: true},
	},
	"watergun": {
		Name: "watergun", BasePower: 40, Accuracy: 100, Category: Physical, Type: Water,
	},
	"thunderbolt": {
		Name: "thunderbolt", BasePower: 90, Accuracy: 100, Category: Special, Type: Electric,
		Secondaries: []Secondary{{Chance: 0.1, Status: StatusParalyze, Target: TargetDefender}},
	},
	"icebeam": {
		Name: "icebeam", BasePower: 90, Accuracy: 100, Category: Special, Type: Ice,
		Secondaries: []Secondary{{Chance: 0.1, Status: StatusFreeze, Target: TargetDefender}},
	},
	"stoneedge": {
		Name: "stoneedge", BasePower: 100, Accuracy: 80, Category: Physical, Type: Rock,
		CritRatio: 2,
	},
	"thunderwave": {
		Name: "thunderwave", BasePower: 0, Accuracy: 90, Category: Status, Type: Electric,
		StatusInflicted: StatusParalyze,
	},
	"willowisp": {
		Name: "willowisp", BasePower: 0, Accuracy: 85, Category: Status, Type: Fire,
		StatusInflicted: StatusBurn,
	},
	"spore": {
		Name: "spore", BasePower: 0, Accuracy: 100, Category: Status, Type: Grass,
		StatusInflicted: StatusSleep,
	},
	"toxic": {
		Name: "toxic", BasePower: 0, Accuracy: 90, Category: Status, Type: Poison,
		StatusInflicted: StatusToxic,
	},
	"protect": {
		Name: "protect", BasePower: 0, Accuracy: 0, Category: Status, Type: Typeless,
		Priority: 4, VolatileInflicted: VolatileProtect,
	},
	"substitute": {
		Name: "substitute", BasePower: 0, Accuracy: 0, Category: Status, Type: Normal,
		VolatileInflicted: VolatileSubstitute,
	},
	"rest": {
		Name: "rest", BasePower: 0, Accuracy: 0, Category: Status, Type: Psychic,
		StatusInflicted: StatusSleep, HealFraction: 1.0,
	},
	"painsplit": {
		Name: "painsplit", BasePower: 0, Accuracy: 0, Category: Status, Type: Normal,
	},
	"seismictoss": {
		Name: "seismictoss", BasePower: 0, Accuracy: 100, Category: Physical, Type: Fighting,
	},
	"superfang": {
		Name: "superfang", BasePower: 0, Accuracy: 90, Category: Physical, Type: Normal,
	},
	"bellydrum": {
		Name: "bellydrum", BasePower: 0, Accuracy: 0, Category: Status, Type: Normal,
	},
	"perishsong": {
		Name: "perishsong", BasePower: 0, Accuracy: 0, Category: Status, Type: Normal,
	},
	"knockoff": {
		Name: "knockoff", BasePower: 65, Accuracy: 100, Category: Physical, Type: Dark,
		Flags: MoveFlags{Contact: true},
	},
	"thief": {
		Name: "thief", BasePower: 60, Accuracy: 100, Category: Physical, Type: Dark,
		Flags: MoveFlags{Contact: true},
	},
	"rapidspin": {
		Name: "rapidspin", BasePower: 50, Accuracy: 100, Category: Physical, Type: Normal,
		Flags: MoveFlags{Contact: true},
	},
	"defog": {
		Name: "defog", BasePower: 0, Accuracy: 0, Category: Status, Type: Flying,
	},
	"courtchange": {
		Name: "courtchange", BasePower: 0, Accuracy: 0, Category: Status, Type: Normal,
	},
	"hex": {
		Name: "hex", BasePower: 65, Accuracy: 100, Category: Special, Type: Ghost,
	},
	"weatherball": {
		Name: "weatherball", BasePower: 50, Accuracy: 100, Category: Special, Type: Normal,
	},
	"pursuit": {
		Name: "pursuit", BasePower: 40, Accuracy: 100, Category: Physical, Type: Dark,
	},
	"highjumpkick": {
		Name: "highjumpkick", BasePower: 130, Accuracy: 90, Category: Physical, Type: Fighting,
		Flags: MoveFlags{Contact: true},
	},
	"flamethrower": {
		Name: "flamethrower", BasePower: 90, Accuracy: 100, Category: Special, Type: Fire,
		Secondaries: []Secondary{{Chance: 0.1, Status: StatusBurn, Target: TargetDefender}},
	},
	"glaciate": {
		Name: "glaciate", BasePower: 65, Accuracy: 95, Category: Special, Type: Ice,
	},
	"uturn": {
		Name: "uturn", BasePower: 70, Accuracy: 100, Category: Physical, Type: Bug,
		Flags: MoveFlags{Contact: true},
	},
	"solarbeam": {
		Name: "solarbeam", BasePower: 120, Accuracy: 100, Category: Special, Type: Grass,
		Flags: MoveFlags{Charge: true},
	},
	"hyperbeam": {
		Name: "hyperbeam", BasePower: 150, Accuracy: 90, Category: Special, Type: Normal,
		Flags: MoveFlags{Recharge: true},
	},
	"splash": {
		Name: "splash", BasePower: 0, Accuracy: 0, Category: Status, Type: Normal,
	},
	"futuresight": {
		Name: "futuresight", BasePower: 120, Accuracy: 100, Category: Special, Type: Psychic,
	},
	"batonpass": {
		Name: "batonpass", BasePower: 0, Accuracy: 0, Category: Status, Type: Normal,
	},
	"counter": {
		Name: "counter", BasePower: 0, Accuracy: 100, Category: Physical, Type: Fighting,
		Priority: -5,
	},
	"mirrorcoat": {
		Name: "mirrorcoat", BasePower: 0, Accuracy: 100, Category: Special, Type: Psychic,
		Priority: -5,
	},
	"metalburst": {
		Name: "metalburst", BasePower: 0, Accuracy: 100, Category: Physical, Type: Steel,
		Priority: -3,
	},
}

// damageDealtMoves is the set of move keys whose behavior reads a side's
// per-turn damage-dealt bookkeeping: counter, mirrorcoat and metalburst
// (choices.go's counterAttack) reflect whatever landed on the user earlier
// in the turn back at the current defender.
var damageDealtMoves = map[string]bool{
	"counter":    true,
	"mirrorcoat": true,
	"metalburst": true,
}

// lastUsedMoveMoves is the set of move keys whose own effect reads a side's
// last-used-move tag directly (as opposed to the general choice-locking
// reads in options.go, which apply regardless of this table). pursuit's
// power-doubling condition (choices.go) reads SavedPivotMove/ForceSwitch,
// not this tag, so it is intentionally absent here.
var lastUsedMoveMoves = map[string]bool{}

// Ability describes the subset of an ability's behavior the engine models:
// whether it ignores the opponent's stat stages (unaware), doubles secondary
// chances (serenegrace), zeroes opponent secondaries (shielddust), restores
// ¼ HP on switch-out (regenerator), clears status on switch-out
// (naturalcure), and whether burn's physical halving is suppressed (guts).
type Ability struct {
	Name string
	Unaware       bool
	SereneGrace   bool
	ShieldDust    bool
	Regenerator   bool
	NaturalCure   bool
	Guts          bool
	FlashFire     bool
	Levitate      bool
	MagicGuard    bool
	Trace         bool
	ShadowTag     bool
	MagnetPull    bool
	ArenaTrap     bool
	SpeedBoost    bool
	ShedSkin      bool
	RainDish      bool
	Intimidate    bool
	Drought       bool
	Truant        bool
}

// Abilities is the opaque ability-key -> behavior dictionary.
var Abilities = map[string]Ability{
	"none":        {Name: "none"},
	"unaware":     {Name: "unaware", Unaware: true},
	"serenegrace": {Name: "serenegrace", SereneGrace: true},
	"shielddust":  {Name: "shielddust", ShieldDust: true},
	"regenerator": {Name: "regenerator", Regenerator: true},
	"naturalcure": {Name: "naturalcure", NaturalCure: true},
	"guts":        {Name: "guts", Guts: true},
	"flashfire":   {Name: "flashfire", FlashFire: true},
	"levitate":    {Name: "levitate", Levitate: true},
	"magicguard":  {Name: "magicguard", MagicGuard: true},
	"trace":       {Name: "trace", Trace: true},
	"shadowtag":   {Name: "shadowtag", ShadowTag: true},
	"magnetpull":  {Name: "magnetpull", MagnetPull: true},
	"arenatrap":   {Name: "arenatrap", ArenaTrap: true},
	"speedboost":  {Name: "speedboost", SpeedBoost: true},
	"shedskin":    {Name: "shedskin", ShedSkin: true},
	"raindish":    {Name: "raindish", RainDish: true},
	"intimidate":  {Name: "intimidate", Intimidate: true},
	"drought":     {Name: "drought", Drought: true},
	"truant":      {Name: "truant", Truant: true},
}

// Item describes the subset of an item's behavior the engine models.
type Item struct {
	Name string
	ChoiceLocked      bool    // choiceband/specs/scarf: locks into the first move used.
	PhysicalPower     float64 // multiplier on physical base power (choiceband).
	SpecialPower      float64 // multiplier on special base power (choicespecs).
	SpeedMultiplier   float64 // choicescarf.
	GroundImmune      bool    // airballoon.
	Leftovers         bool    // heals 1/16 max HP end of turn.
	BurnOrb           bool    // flameorb: inflicts burn end of turn.
	ToxicOrb          bool    // toxicorb: inflicts toxic end of turn.
	BypassTrapping    bool    // shedshell.
	RoomServiceSpeedDrop bool // roomservice: -1 speed on switch-in under trick room, then consumed.
}

// Items is the opaque item-key -> behavior dictionary.
var Items = map[string]Item{
	"none":        {Name: "none"},
	"choiceband":  {Name: "choiceband", ChoiceLocked: true, PhysicalPower: 1.3},
	"choicespecs": {Name: "choicespecs", ChoiceLocked: true, SpecialPower: 1.3},
	"choicescarf": {Name: "choicescarf", ChoiceLocked: true, SpeedMultiplier: 1.5},
	"airballoon":  {Name: "airballoon", GroundImmune: true},
	"leftovers":   {Name: "leftovers", Leftovers: true},
	"flameorb":    {Name: "flameorb", BurnOrb: true},
	"toxicorb":    {Name: "toxicorb", ToxicOrb: true},
	"shedshell":   {Name: "shedshell", BypassTrapping: true},
	"roomservice": {Name: "roomservice", RoomServiceSpeedDrop: true},
}

// SpeciesBase is a species' table-sourced base stats and default typing.
type SpeciesBase struct {
	Name string
	TypePrimary, TypeSecondary Type
	BaseAttack, BaseDefense, BaseSpecialAttack, BaseSpecialDefense, BaseSpeed int
	BaseHP int
	Weight float64
}

// Species is the opaque species-key -> base-stats dictionary.
var Species = map[string]SpeciesBase{
	"squirtle": {
		Name: "squirtle", TypePrimary: Water, TypeSecondary: Typeless,
		BaseHP: 44, BaseAttack: 48, BaseDefense: 65, BaseSpecialAttack: 50, BaseSpecialDefense: 64, BaseSpeed: 43,
		Weight: 9,
	},
	"charmander": {
		Name: "charmander", TypePrimary: Fire, TypeSecondary: Typeless,
		BaseHP: 39, BaseAttack: 52, BaseDefense: 43, BaseSpecialAttack: 60, BaseSpecialDefense: 50, BaseSpeed: 65,
		Weight: 8.5,
	},
	"bulbasaur": {
		Name: "bulbasaur", TypePrimary: Grass, TypeSecondary: Poison,
		BaseHP: 45, BaseAttack: 49, BaseDefense: 49, BaseSpecialAttack: 65, BaseSpecialDefense: 65, BaseSpeed: 45,
		Weight: 6.9,
	},
	"gengar": {
		Name: "gengar", TypePrimary: Ghost, TypeSecondary: Poison,
		BaseHP: 60, BaseAttack: 65, BaseDefense: 60, BaseSpecialAttack: 130, BaseSpecialDefense: 75, BaseSpeed: 110,
		Weight: 40.5,
	},
	"tyranitar": {
		Name: "tyranitar", TypePrimary: Rock, TypeSecondary: Dark,
		BaseHP: 100, BaseAttack: 134, BaseDefense: 110, BaseSpecialAttack: 95, BaseSpecialDefense: 100, BaseSpeed: 61,
		Weight: 202,
	},
}
