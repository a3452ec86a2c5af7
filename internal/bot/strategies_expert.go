package bot

import (
	"math/rand"

	"cardhunter/internal/bot/brain"
)

// ExpertSelector always takes a best-scoring candidate, breaking ties uniformly.
type ExpertSelector struct{}

func (ExpertSelector) Select(scored []brain.ScoredCandidate, rng *rand.Rand) brain.ScoredCandidate {
	best := tiedWithTop(scored)
	return best[rng.Intn(len(best))]
}
