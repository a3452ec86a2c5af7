package bot

import (
	"math"
	"math/rand"

	"cardhunter/internal/bot/brain"
)

// WeightedSelector keeps the top share of candidates and draws among them,
// favouring higher scores by Sharpness. Beginner and intermediate players use it.
type WeightedSelector struct {
	Tuning        SelectionTuning
	MinScoreRatio float64
}

func (s *WeightedSelector) Select(scored []brain.ScoredCandidate, rng *rand.Rand) brain.ScoredCandidate {
	pool := s.pool(prune(scored, s.MinScoreRatio))
	top := pool[0].Score
	weights := make([]float64, len(pool))
	for i, c := range pool {
		if top > 0 {
			weights[i] = math.Pow(c.Score/top, s.Tuning.Sharpness)
		}
	}
	return weightedPick(pool, weights, rng)
}

func (s *WeightedSelector) pool(scored []brain.ScoredCandidate) []brain.ScoredCandidate {
	n := int(math.Ceil(float64(len(scored))*s.Tuning.PoolRatio - 1e-9))
	if n < s.Tuning.MinPool {
		n = s.Tuning.MinPool
	}
	if n > len(scored) {
		n = len(scored)
	}
	if n < 1 {
		n = 1
	}
	return scored[:n]
}
