package engine

// evaluate.go implements static position evaluation, in the same spirit as
// zurichess's material.go: a weighted sum of features, all symmetric with
// respect to side, summed for SideOne and subtracted for SideTwo so the
// returned score is always from SideOne's point of view.

const (
	// KnownWinScore is strictly greater than any non-terminal evaluation.
	KnownWinScore = 25000
	// KnownLossScore is strictly smaller than any non-terminal evaluation.
	KnownLossScore = -KnownWinScore
	// WinScore is returned for a state where SideOne has already won.
	WinScore = 30000
	// LossScore is returned for a state where SideOne has already lost.
	LossScore = -WinScore
)

// Weights holds every tunable evaluation parameter under one roof, mirroring
// material.go's single Weights array, so a future tuner has one place to
// adjust. All per-HP-fraction terms are expressed in thousandths.
var Weights = struct {
	HPFraction      int32
	FaintedCreature int32
	StatBoostStage  int32
	BurnPenalty     int32
	PoisonPenalty   int32
	ToxicPenalty    int32
	SleepPenalty    int32
	FreezePenalty   int32
	ParalyzePenalty int32
	ConfusionPenalty int32
	SubstituteHP    int32
	HazardStack     int32
	ScreenUp        int32
	TailwindUp      int32
	WeatherControl  int32
	TrappedPenalty  int32
	PerishPenalty   [5]int32
}{
	HPFraction:       1000,
	FaintedCreature:   600,
	StatBoostStage:     60,
	BurnPenalty:        80,
	PoisonPenalty:      70,
	ToxicPenalty:       90,
	SleepPenalty:      120,
	FreezePenalty:     150,
	ParalyzePenalty:    70,
	ConfusionPenalty:   50,
	SubstituteHP:      500,
	HazardStack:        40,
	ScreenUp:           50,
	TailwindUp:         30,
	WeatherControl:     20,
	TrappedPenalty:     90,
	PerishPenalty:      [5]int32{0, 400, 250, 120, 40},
}

// Evaluate scores a non-terminal state from SideOne's point of view: a
// positive score favors SideOne, a negative score favors SideTwo, and the
// function is antisymmetric under swapping the two sides (spec.md §7
// "evaluator contract" Open Question, decided: additive per-side terms with
// a final subtraction guarantee this without needing an explicit swap test).
// Pure and deterministic: no RNG, no state mutation.
func Evaluate(st *State) int32 {
	if over := st.BattleOver(); over != 0.0 {
		if over > 0 {
			return WinScore
		}
		return LossScore
	}
	return evaluateSide(st.SideOne) - evaluateSide(st.SideTwo)
}

// evaluateSide sums every feature for one side in isolation; Evaluate takes
// the difference so the result is naturally side-symmetric.
func evaluateSide(side *Side) int32 {
	var score int32

	for i := range side.Pokemon {
		c := &side.Pokemon[i]
		if c.Fainted() {
			score -= Weights.FaintedCreature
			continue
		}
		if c.MaxHP > 0 {
			score += int32(c.HP) * Weights.HPFraction / int32(c.MaxHP)
		}
		score += statusPenalty(c.Status)
	}

	active := side.Active()
	if !active.Fainted() {
		for s := Stat(0); s < numStats; s++ {
			score += int32(side.StatBoosts.Get(s)) * Weights.StatBoostStage
		}
		if side.HasVolatile(VolatileConfusion) {
			score -= Weights.ConfusionPenalty
		}
		if side.SubstituteHP > 0 {
			score += int32(side.SubstituteHP) * Weights.SubstituteHP / int32(active.MaxHP)
		}
		if side.ForceTrapped || side.HasVolatile(VolatileNoRetreat) {
			score -= Weights.TrappedPenalty
		}
		score -= perishPenalty(side)
	}

	hazards := side.Conditions.Spikes + side.Conditions.ToxicSpikes + side.Conditions.StealthRock + side.Conditions.StickyWeb
	score -= int32(hazards) * Weights.HazardStack

	if side.Conditions.Reflect > 0 || side.Conditions.LightScreen > 0 || side.Conditions.AuroraVeil > 0 {
		score += Weights.ScreenUp
	}
	if side.Conditions.Tailwind > 0 {
		score += Weights.TailwindUp
	}

	return score
}

func statusPenalty(status NonVolatileStatus) int32 {
	switch status {
	case StatusBurn:
		return -Weights.BurnPenalty
	case StatusPoison:
		return -Weights.PoisonPenalty
	case StatusToxic:
		return -Weights.ToxicPenalty
	case StatusSleep:
		return -Weights.SleepPenalty
	case StatusFreeze:
		return -Weights.FreezePenalty
	case StatusParalyze:
		return -Weights.ParalyzePenalty
	default:
		return 0
	}
}

func perishPenalty(side *Side) int32 {
	switch {
	case side.HasVolatile(VolatilePerish1):
		return Weights.PerishPenalty[1]
	case side.HasVolatile(VolatilePerish2):
		return Weights.PerishPenalty[2]
	case side.HasVolatile(VolatilePerish3):
		return Weights.PerishPenalty[3]
	case side.HasVolatile(VolatilePerish4):
		return Weights.PerishPenalty[4]
	default:
		return 0
	}
}
