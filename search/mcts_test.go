package search

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/battlecore/battlecore/engine"
)

func TestUCB1UnvisitedIsInfinite(t *testing.T) {
	s := &actionStats{}
	if got := ucb1(s, 10); !math.IsInf(got, 1) {
		t.Errorf("ucb1 of an unvisited action = %v, want +Inf", got)
	}
}

func TestUCB1HigherMeanWinsAtEqualVisits(t *testing.T) {
	low := &actionStats{visits: 5, score: 1.0}  // mean 0.2
	high := &actionStats{visits: 5, score: 4.0} // mean 0.8
	if ucb1(high, 20) <= ucb1(low, 20) {
		t.Errorf("higher-mean action should have a higher UCB1 bound at equal visits")
	}
}

func TestUCB1ExplorationTermShrinksWithVisits(t *testing.T) {
	fewVisits := &actionStats{visits: 1, score: 0.5}
	manyVisits := &actionStats{visits: 100, score: 50}
	// Same mean (0.5), but the less-visited action should still score higher
	// thanks to the exploration bonus.
	if ucb1(fewVisits, 200) <= ucb1(manyVisits, 200) {
		t.Errorf("a less-visited action at the same mean should have a higher UCB1 bound")
	}
}

func TestActionStatsMeanDefaultsToOneHalf(t *testing.T) {
	s := &actionStats{}
	if got := s.mean(); got != 0.5 {
		t.Errorf("mean of an unvisited actionStats = %v, want 0.5", got)
	}
}

func TestSampleOutcomeRespectsWeights(t *testing.T) {
	// Two outcomes, one near-certain (p=0.999) and one near-impossible
	// (p=0.001); over many draws from a seeded source the near-certain
	// outcome should dominate the tally.
	outcomes := []outcomeChild{
		{branch: engine.Branch{Probability: 0.999}},
		{branch: engine.Branch{Probability: 0.001}},
	}
	r := rand.New(rand.NewPCG(1, 2))
	counts := [2]int{}
	const trials = 2000
	for i := 0; i < trials; i++ {
		oc := sampleOutcome(outcomes, r)
		if oc.branch.Probability == outcomes[0].branch.Probability {
			counts[0]++
		} else {
			counts[1]++
		}
	}
	if counts[0] < trials*9/10 {
		t.Errorf("near-certain outcome picked %d/%d times, want at least 90%%", counts[0], trials)
	}
}
