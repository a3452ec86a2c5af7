package bot

import (
	"math"
	"math/rand"

	"cardhunter/internal/bot/brain"
)

// Selector turns a sorted, non-empty candidate list into one choice.
type Selector interface {
	Select(scored []brain.ScoredCandidate, rng *rand.Rand) brain.ScoredCandidate
}

// prune drops candidates scoring below minRatio of the top score. The top
// candidate always survives.
func prune(scored []brain.ScoredCandidate, minRatio float64) []brain.ScoredCandidate {
	top := scored[0].Score
	n := 1
	for n < len(scored) && scored[n].Score >= top*minRatio {
		n++
	}
	return scored[:n]
}

// tiedWithTop returns the prefix of candidates sharing the top score.
func tiedWithTop(scored []brain.ScoredCandidate) []brain.ScoredCandidate {
	top := scored[0].Score
	n := 1
	for n < len(scored) && nearlyEqual(scored[n].Score, top) {
		n++
	}
	return scored[:n]
}

func nearlyEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}

// weightedPick draws one candidate with probability proportional to weights.
func weightedPick(pool []brain.ScoredCandidate, weights []float64, rng *rand.Rand) brain.ScoredCandidate {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return pool[rng.Intn(len(pool))]
	}
	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r < 0 {
			return pool[i]
		}
	}
	return pool[len(pool)-1]
}
