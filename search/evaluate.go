package search

import (
	"math"

	"github.com/battlecore/battlecore/engine"
)

// sigmoidSlope is spec.md §4.7's "slope 1/80" itself, confirmed
// exactly by original_source/src/mcts_st.rs's sigmoid(x) = 1/(1+exp(-0.0125x)).
const sigmoidSlope = 1.0 / 80.0

// rolloutValue replaces MCTS rollout with a static evaluation, squashed to
// [0, 1] from SideOne's point of view: battle-over states saturate to their
// exact win/loss value, everything else is the evaluator's score pushed
// through a sigmoid centered at 0 (spec.md §4.7).
func rolloutValue(st *engine.State) float64 {
	if over := st.BattleOver(); over != 0.0 {
		if over > 0 {
			return 1
		}
		return 0
	}
	score := float64(engine.Evaluate(st))
	return 1 / (1 + math.Exp(-sigmoidSlope*score))
}
