package search

import (
	"github.com/battlecore/battlecore/engine"
)

// PayoffMatrix is the row-major matrix of expected values for every ordered
// pair of (side-one action, side-two action) at the depth the search
// actually reached, per spec.md §6's library entry point for
// expectiminimax: "row-major payoff matrix, depth-reached".
type PayoffMatrix struct {
	SideOneActions []engine.Option
	SideTwoActions []engine.Option
	Values         [][]float64 // Values[i][j]: side-one's EV playing action i against side-two's action j
	DepthReached   int
}

// ExpectiminimaxConfig bundles the knobs spec.md §9 Open Question (a) and §5
// leave to the implementer: damage-roll policy and probability floor feed
// straight into engine.GenerateInstructions.
type ExpectiminimaxConfig struct {
	Policy          engine.DamageRollPolicy
	ProbabilityFloor float64
	MaxDepth        int
	Logger          Logger
}

// RunExpectiminimax performs iterative-deepened expectiminimax from st,
// restarting at each depth until the deadline, and returns the last fully
// completed depth's payoff matrix (spec.md §4.7 "Deepening restarts the
// search at the next depth until the deadline; the last fully-completed
// depth's policy is reported"). Grounded on the teacher's Engine.Play
// (zurichess/engine/engine.go): an outer loop over depth, each iteration
// calling a depth-bounded search. The deadline is checked between depths
// and also inside a depth; a depth above 0 that the deadline cuts short is
// discarded, while depth 0 always runs to completion.
func RunExpectiminimax(st *engine.State, deadline *Deadline, cfg ExpectiminimaxConfig) PayoffMatrix {
	logger := cfg.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	logger.BeginSearch()
	defer logger.EndSearch()

	oneOpts := engine.Options(st, engine.SideOne)
	twoOpts := engine.Options(st, engine.SideTwo)

	var best PayoffMatrix
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 64
	}

	for depth := 0; depth < maxDepth; depth++ {
		if !deadline.NextDepth(depth) {
			break
		}
		nodes := uint64(0)
		values := make([][]float64, len(oneOpts))
		for i, o1 := range oneOpts {
			values[i] = make([]float64, len(twoOpts))
			for j, o2 := range twoOpts {
				values[i][j] = expectiminimax(st, o1, o2, depth, cfg, deadline, &nodes)
				if depth > 0 && deadline.Expired() {
					break
				}
			}
			if depth > 0 && deadline.Expired() {
				break
			}
		}
		if deadline.Expired() && depth > 0 {
			// Partial depth: keep the previous fully-completed matrix.
			break
		}
		best = PayoffMatrix{SideOneActions: oneOpts, SideTwoActions: twoOpts, Values: values, DepthReached: depth}
		logger.Report(Stats{Depth: int32(depth), Nodes: nodes}, bestRowValue(values))
		if deadline.Expired() {
			break
		}
	}
	return best
}

// expectiminimax evaluates the expected value of st after the ordered action
// pair (o1, o2), recursing depth-1 plies deeper for each branch the
// generator returns and weighting by branch probability, per spec.md §4.7:
// "Σ branch.probability · V(apply(branch), d−1)". At depth 0 the static
// evaluator (squashed, see rolloutValue) stands in for the recursive value.
func expectiminimax(st *engine.State, o1, o2 engine.Option, depth int, cfg ExpectiminimaxConfig, deadline *Deadline, nodes *uint64) float64 {
	*nodes++
	if depth <= 0 {
		return rolloutValue(st)
	}
	branches := engine.GenerateInstructions(st, o1, o2, cfg.Policy, cfg.ProbabilityFloor)
	if len(branches) == 0 {
		return rolloutValue(st)
	}

	var expected float64
	for _, b := range branches {
		engine.ApplyList(st, b.Instructions)
		expected += b.Probability * worstCaseValue(st, depth-1, cfg, deadline, nodes)
		engine.ReverseList(st, b.Instructions)
		if deadline.Expired() {
			break
		}
	}
	return expected
}

// worstCaseValue is the minimax-with-chance-nodes step: side-one picks the
// action maximizing its worst case over side-two's replies, side-two (whose
// payoff is 1 - side-one's) picks to minimize side-one's value, per spec.md
// §4.7 "Both sides pick the action that maximizes the worst-case over the
// other side's choices".
func worstCaseValue(st *engine.State, depth int, cfg ExpectiminimaxConfig, deadline *Deadline, nodes *uint64) float64 {
	if depth <= 0 {
		return rolloutValue(st)
	}
	oneOpts := engine.Options(st, engine.SideOne)
	twoOpts := engine.Options(st, engine.SideTwo)

	best := -1.0
	for _, o1 := range oneOpts {
		worst := 1.0
		for _, o2 := range twoOpts {
			v := expectiminimax(st, o1, o2, depth, cfg, deadline, nodes)
			if v < worst {
				worst = v
			}
			if deadline.Expired() {
				break
			}
		}
		if worst > best {
			best = worst
		}
		if deadline.Expired() {
			break
		}
	}
	return best
}

func bestRowValue(values [][]float64) float64 {
	best := -1.0
	for _, row := range values {
		worst := 1.0
		for _, v := range row {
			if v < worst {
				worst = v
			}
		}
		if worst > best {
			best = worst
		}
	}
	return best
}
