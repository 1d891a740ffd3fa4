package search

import (
	"math"
	"math/rand/v2"

	"github.com/battlecore/battlecore/engine"
)

// actionStats is the per-action bookkeeping a node keeps for one side,
// mirroring the teacher's historyTable idea (engine/engine.go) of a small
// running statistic keyed by action rather than a full subtree per action.
type actionStats struct {
	visits int
	score  float64 // accumulated value, side-one's point of view
}

func (s *actionStats) mean() float64 {
	if s.visits == 0 {
		return 0.5
	}
	return s.score / float64(s.visits)
}

// ucb1 is the standard UCB1 bound, spec.md §4.7: "mean-score +
// √(2·ln(N_parent) / N_child)".
func ucb1(s *actionStats, parentVisits int) float64 {
	if s.visits == 0 {
		return math.Inf(1)
	}
	return s.mean() + math.Sqrt(2*math.Log(float64(parentVisits))/float64(s.visits))
}

// outcomeChild is one sampled branch hanging off a joint (o1, o2) selection:
// the branch that produced it and the subtree rooted at the resulting state.
type outcomeChild struct {
	branch engine.Branch
	child  *node
}

// jointEntry is the per-(o1,o2) bucket at a node: the two sides' own action
// stats live at the node itself (spec.md's "per-side action record"); this
// holds the outcome children sampled for that joint pair so far.
type jointEntry struct {
	outcomes []outcomeChild
}

// node is one MCTS tree position. Spec.md §4.7: "Each non-root node carries
// the branch (probability, instruction list) that led to it, and the two
// actions that selected its parent's child-bucket." Reversal unwinds the
// instruction list at each step, so nodes never retain a live *State of
// their own — only the instructions needed to reach and leave them.
type node struct {
	oneOpts []engine.Option
	twoOpts []engine.Option

	oneStats map[engine.Option]*actionStats
	twoStats map[engine.Option]*actionStats

	visits int
	joints map[[2]int]*jointEntry // keyed by (index into oneOpts, index into twoOpts)

	terminal bool
}

func newNode(st *engine.State) *node {
	n := &node{
		oneStats: make(map[engine.Option]*actionStats),
		twoStats: make(map[engine.Option]*actionStats),
		joints:   make(map[[2]int]*jointEntry),
	}
	if st.BattleOver() != 0.0 {
		n.terminal = true
		return n
	}
	n.oneOpts = engine.Options(st, engine.SideOne)
	n.twoOpts = engine.Options(st, engine.SideTwo)
	for _, o := range n.oneOpts {
		n.oneStats[o] = &actionStats{}
	}
	for _, o := range n.twoOpts {
		n.twoStats[o] = &actionStats{}
	}
	return n
}

// selectActions picks one action per side, each independently maximizing
// its own UCB1 over its own visit counts, per spec.md §4.7.
func (n *node) selectActions() (int, int) {
	bestI, bestIScore := 0, math.Inf(-1)
	for i, o := range n.oneOpts {
		if v := ucb1(n.oneStats[o], n.visits+1); v > bestIScore {
			bestI, bestIScore = i, v
		}
	}
	bestJ, bestJScore := 0, math.Inf(-1)
	for j, o := range n.twoOpts {
		if v := ucb1(n.twoStats[o], n.visits+1); v > bestJScore {
			bestJ, bestJScore = j, v
		}
	}
	return bestI, bestJ
}

// MCTSConfig bundles the policy knobs the generator and evaluator need.
type MCTSConfig struct {
	Policy           engine.DamageRollPolicy
	ProbabilityFloor float64
	Logger           Logger
	Rand             *rand.Rand // nil uses the package-level default source
}

// ActionResult is one row of spec.md §6's library entry point for MCTS:
// "(list of (action, score, visits)) × 2".
type ActionResult struct {
	Action engine.Option
	Score  float64
	Visits int
}

// MCTSResult is the full return value of RunMCTS.
type MCTSResult struct {
	SideOne    []ActionResult
	SideTwo    []ActionResult
	Iterations int
}

// RunMCTS runs UCB1-selection Monte Carlo tree search from st until deadline
// expires, per spec.md §4.7. Expansion invokes the generator and creates a
// child per branch; rollout is replaced by a static evaluation (rolloutValue);
// backpropagation increments visits and accumulates score at the leaf and at
// each ancestor's per-side action record. st is left byte-identical to how
// it was handed in: every simulated path is reversed before returning,
// mirroring the teacher's stack-based position in engine/stack.go, which
// never leaves a position mutated once a search tree traversal finishes.
func RunMCTS(st *engine.State, deadline *Deadline, cfg MCTSConfig) MCTSResult {
	logger := cfg.Logger
	if logger == nil {
		logger = NopLogger{}
	}
	logger.BeginSearch()
	defer logger.EndSearch()

	root := newNode(st)
	iterations := 0
	for !deadline.Expired() {
		simulate(st, root, cfg)
		iterations++
		if iterations%256 == 0 {
			logger.Report(Stats{Nodes: uint64(iterations)}, root.aggregateScore())
		}
	}
	logger.Report(Stats{Nodes: uint64(iterations)}, root.aggregateScore())

	return MCTSResult{
		SideOne:    collectResults(root.oneOpts, root.oneStats),
		SideTwo:    collectResults(root.twoOpts, root.twoStats),
		Iterations: iterations,
	}
}

func collectResults(opts []engine.Option, stats map[engine.Option]*actionStats) []ActionResult {
	out := make([]ActionResult, len(opts))
	for i, o := range opts {
		s := stats[o]
		out[i] = ActionResult{Action: o, Score: s.mean(), Visits: s.visits}
	}
	return out
}

func (n *node) aggregateScore() float64 {
	var total float64
	var visits int
	for _, s := range n.oneStats {
		total += s.score
		visits += s.visits
	}
	if visits == 0 {
		return 0.5
	}
	return total / float64(visits)
}

// simulate walks one selection-expansion-rollout-backprop iteration starting
// at n/st, applying and reversing every instruction list it touches so st
// returns to its entry value before simulate returns.
func simulate(st *engine.State, n *node, cfg MCTSConfig) float64 {
	if n.terminal {
		return rolloutValue(st)
	}
	i, j := n.selectActions()
	o1, o2 := n.oneOpts[i], n.twoOpts[j]

	key := [2]int{i, j}
	je, ok := n.joints[key]
	if !ok {
		je = &jointEntry{}
		n.joints[key] = je
		branches := engine.GenerateInstructions(st, o1, o2, cfg.Policy, cfg.ProbabilityFloor)
		for _, b := range branches {
			engine.ApplyList(st, b.Instructions)
			je.outcomes = append(je.outcomes, outcomeChild{branch: b, child: newNode(st)})
			engine.ReverseList(st, b.Instructions)
		}
	}
	if len(je.outcomes) == 0 {
		return rolloutValue(st)
	}

	oc := sampleOutcome(je.outcomes, cfg.Rand)
	engine.ApplyList(st, oc.branch.Instructions)
	value := simulate(st, oc.child, cfg)
	engine.ReverseList(st, oc.branch.Instructions)

	n.visits++
	n.oneStats[o1].visits++
	n.oneStats[o1].score += value
	n.twoStats[o2].visits++
	n.twoStats[o2].score += 1 - value

	return value
}

// sampleOutcome draws one branch weighted by its probability, per spec.md
// §4.7 "sampled weighted by branch probability". Grounded on the pack's
// only straightforward math/rand usage (galaxyCore's diplomacy package):
// a single running-total comparison against one uniform draw, no alias
// tables or other sampling machinery this small search loop doesn't need.
func sampleOutcome(outcomes []outcomeChild, r *rand.Rand) outcomeChild {
	total := 0.0
	for _, oc := range outcomes {
		total += oc.branch.Probability
	}
	if total <= 0 {
		return outcomes[0]
	}
	var x float64
	if r != nil {
		x = r.Float64() * total
	} else {
		x = rand.Float64() * total
	}
	for _, oc := range outcomes {
		x -= oc.branch.Probability
		if x <= 0 {
			return oc
		}
	}
	return outcomes[len(outcomes)-1]
}
