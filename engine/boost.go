package engine

// boostNumerator/boostDenominator implement the stat-stage multiplier table:
// stage -6 multiplies by 2/8, stage 0 is unchanged, stage +6 multiplies by
// 8/2. Accuracy/evasion use the same stage range on a 3-base instead of 2
// (see accuracyBoostMultiplier).
var boostNumerator = [13]int{2, 2, 2, 2, 2, 2, 2, 3, 4, 5, 6, 7, 8}
var boostDenominator = [13]int{8, 7, 6, 5, 4, 3, 2, 2, 2, 2, 2, 2, 2}

// clampBoost clamps a stage to [-6, 6].
func clampBoost(stage int8) int8 {
	if stage < -6 {
		return -6
	}
	if stage > 6 {
		return 6
	}
	return stage
}

// applyBoost multiplies a base stat value by the stage's multiplier.
func applyBoost(stage int8, value int) int {
	stage = clampBoost(stage)
	idx := int(stage) + 6
	return value * boostNumerator[idx] / boostDenominator[idx]
}

// accuracyBoostMultiplier returns the combined accuracy/evasion multiplier
// used by the accuracy roll: attacker's accuracy stage minus defender's
// evasion stage, clamped to [-6, 6], on the 3-based scale (3/9 at -6, 1 at
// 0, 9/3 at +6).
func accuracyBoostMultiplier(accuracyStage, evasionStage int8) float64 {
	net := int(clampBoost(clampBoost(accuracyStage) - clampBoost(evasionStage)))
	if net >= 0 {
		return float64(3+net) / 3
	}
	return 3 / float64(3-net)
}
