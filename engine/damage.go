package engine

import "math"

// DamageRollPolicy selects which of the 16 1% damage rolls (0.85..1.00 of
// the base damage) the calculator returns.
type DamageRollPolicy uint8

const (
	RollAverage DamageRollPolicy = iota
	RollMin
	RollMax
	RollMinMax
	RollMinAvgMax
	RollAll16
)

// damageRollFractions are the 16 1%-step multipliers the real games use,
// 0.85 through 1.00 inclusive.
var damageRollFractions = func() []float64 {
	out := make([]float64, 16)
	for i := range out {
		out[i] = 0.85 + 0.01*float64(i)
	}
	return out
}()

func rollsForPolicy(base float64, policy DamageRollPolicy) []int {
	switch policy {
	case RollMin:
		return []int{int(base * 0.85)}
	case RollMax:
		return []int{int(base)}
	case RollMinMax:
		return []int{int(base * 0.85), int(base)}
	case RollMinAvgMax:
		return []int{int(base * 0.85), int(base * 0.925), int(base)}
	case RollAll16:
		out := make([]int, 16)
		for i, f := range damageRollFractions {
			out[i] = int(base * f)
		}
		return out
	default: // RollAverage
		return []int{int(base * 0.925)}
	}
}

// DamageCalc is a pure function of (state, attacking side, choice, roll
// policy): it mutates nothing and returns nil when the move deals no damage
// (base power <= 0, or a non-damaging category).
func DamageCalc(st *State, attackingSide SideRef, choice *Choice, policy DamageRollPolicy, crit bool) []int {
	if choice.BasePower <= 0 {
		return nil
	}
	if choice.Category != Physical && choice.Category != Special {
		return nil
	}

	attacker, defender := st.Sides(attackingSide)
	atkActive, defActive := attacker.Active(), defender.Active()

	var attackStat, defenseStat int
	unawareAttacker := Abilities[atkActive.Ability].Unaware
	unawareDefender := Abilities[defActive.Ability].Unaware

	switch choice.Category {
	case Physical:
		if unawareDefender {
			attackStat = atkActive.Attack
		} else {
			attackStat = applyBoost(attacker.StatBoosts.Get(StatAttack), atkActive.Attack)
		}
		if unawareAttacker {
			defenseStat = defActive.Defense
		} else {
			defenseStat = applyBoost(defender.StatBoosts.Get(StatDefense), defActive.Defense)
		}
	case Special:
		if unawareDefender {
			attackStat = atkActive.SpecialAttack
		} else {
			attackStat = applyBoost(attacker.StatBoosts.Get(StatSpecialAttack), atkActive.SpecialAttack)
		}
		if unawareAttacker {
			defenseStat = defActive.SpecialDefense
		} else {
			defenseStat = applyBoost(defender.StatBoosts.Get(StatSpecialDefense), defActive.SpecialDefense)
		}
	}

	// A favorable defender boost (and an unfavorable attacker boost) is
	// ignored on a critical hit (spec.md §4.6 step 3e).
	if crit {
		switch choice.Category {
		case Physical:
			if defender.StatBoosts.Get(StatDefense) > 0 && !unawareAttacker {
				defenseStat = defActive.Defense
			}
			if attacker.StatBoosts.Get(StatAttack) < 0 && !unawareDefender {
				attackStat = atkActive.Attack
			}
		case Special:
			if defender.StatBoosts.Get(StatSpecialDefense) > 0 && !unawareAttacker {
				defenseStat = defActive.SpecialDefense
			}
			if attacker.StatBoosts.Get(StatSpecialAttack) < 0 && !unawareDefender {
				attackStat = atkActive.SpecialAttack
			}
		}
	}

	level := float64(atkActive.Level)
	damage := math.Floor(2*level/5+2)
	damage = math.Floor(damage * choice.BasePower)
	damage = damage * float64(attackStat) / float64(defenseStat)
	damage = math.Floor(damage/50) + 2

	modifier := 1.0
	defA, defB := defActive.EffectiveTypes()
	modifier *= Effectiveness(choice.Type, defA, defB)
	modifier *= weatherModifier(choice.Type, st.Weather.Kind)
	modifier *= stabModifier(choice, atkActive)
	modifier *= burnModifier(choice.Category, atkActive.Status, Abilities[atkActive.Ability].Guts)
	modifier *= volatileModifier(choice, attacker, defender)
	if crit {
		modifier *= 1.5
	}
	modifier *= screenModifier(choice.Category, defender)

	if modifier == 0 {
		return []int{0}
	}

	damage = math.Floor(damage * modifier)
	if damage < 1 {
		damage = 1
	}
	return rollsForPolicy(damage, policy)
}

func weatherModifier(moveType Type, weather WeatherKind) float64 {
	switch weather {
	case WeatherSun:
		switch moveType {
		case Fire:
			return 1.5
		case Water:
			return 0.5
		}
	case WeatherRain:
		switch moveType {
		case Water:
			return 1.5
		case Fire:
			return 0.5
		}
	case WeatherHarshSun:
		switch moveType {
		case Fire:
			return 1.5
		case Water:
			return 0
		}
	case WeatherHeavyRain:
		switch moveType {
		case Water:
			return 1.5
		case Fire:
			return 0
		}
	}
	return 1.0
}

func stabModifier(choice *Choice, attacker *Creature) float64 {
	if !attacker.HasType(choice.Type) {
		return 1.0
	}
	if attacker.Terastallized && attacker.OriginalSTAB(choice.Type) {
		return 2.0
	}
	return 1.5
}

func burnModifier(category Category, status NonVolatileStatus, guts bool) float64 {
	if status == StatusBurn && category == Physical && !guts {
		return 0.5
	}
	return 1.0
}

// volatileModifier reproduces damage_calc.rs's volatile_status_modifier:
// flash-fire boosts the attacker's own fire moves, tar-shot doubles fire
// damage taken, magnet-rise grants ground immunity (with a named override
// for ground-type moves that explicitly bypass it), the semi-invulnerable
// charge volatiles (dig/dive/fly/bounce/phantom force/shadow force) zero
// incoming damage entirely, and glaive-rush doubles damage received.
func volatileModifier(choice *Choice, attacker, defender *Side) float64 {
	modifier := 1.0
	if attacker.HasVolatile(VolatileFlashFire) && choice.Type == Fire {
		modifier *= 1.5
	}
	if defender.HasVolatile(VolatileMagnetRise) && choice.Type == Ground && choice.Name != "thousandarrows" {
		return 0
	}
	if defender.HasVolatile(VolatileTarShot) && choice.Type == Fire {
		modifier *= 2.0
	}
	for v := range defender.Volatiles {
		if v.semiInvulnerable() {
			return 0
		}
	}
	if defender.HasVolatile(VolatileGlaiveRush) {
		modifier *= 2.0
	}
	return modifier
}

func screenModifier(category Category, defender *Side) float64 {
	if defender.Conditions.AuroraVeil > 0 {
		return 0.5
	}
	if defender.Conditions.Reflect > 0 && category == Physical {
		return 0.5
	}
	if defender.Conditions.LightScreen > 0 && category == Special {
		return 0.5
	}
	return 1.0
}
