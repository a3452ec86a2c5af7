package brain

import (
	"math"
	"sort"

	"cardhunter/internal/domain"
)

// PositionStep maps a distance between the expected and actual position to a weight.
type PositionStep struct {
	Below  float64 `json:"below"`
	Weight float64 `json:"weight"`
}

// ModelTuning holds the constants of the probability model.
type ModelTuning struct {
	// PositionSteps are checked in order; the first step whose Below exceeds the
	// distance wins. Distances past the last step use FarWeight.
	PositionSteps []PositionStep `json:"position_steps"`
	FarWeight     float64        `json:"far_weight"`
	// DuplicateDecay is applied once per already-seen card of the same rank.
	DuplicateDecay float64 `json:"duplicate_decay"`
	// SkillAccuracy scales every score by the guesser's skill. Selectors compare
	// scores relative to the top one, so it sets score magnitude only; how widely
	// a skill picks is governed by the selection tuning.
	SkillAccuracy map[domain.SkillLevel]float64 `json:"skill_accuracy"`
}

// DefaultModelTuning is the stock probability model.
var DefaultModelTuning = ModelTuning{
	PositionSteps: []PositionStep{
		{Below: 0.5, Weight: 1.0},
		{Below: 1.5, Weight: 0.7},
		{Below: 2.5, Weight: 0.4},
		{Below: 3.5, Weight: 0.2},
		{Below: 5, Weight: 0.08},
	},
	FarWeight:      0.01,
	DuplicateDecay: 0.5,
	SkillAccuracy: map[domain.SkillLevel]float64{
		domain.SkillBeginner:     0.3,
		domain.SkillIntermediate: 0.6,
		domain.SkillExpert:       0.9,
	},
}

// ScoredCandidate is a candidate face with its relative likelihood.
type ScoredCandidate struct {
	Face  domain.Face
	Score float64
}

// Estimator scores candidate faces for a slot.
type Estimator struct {
	Tuning ModelTuning
}

// NewEstimator creates a new reasoning engine.
func NewEstimator(t ModelTuning) *Estimator {
	return &Estimator{Tuning: t}
}

// ExpectedPosition returns the 1-based position a rank would occupy in a
// uniformly spread hand of handSize cards.
func ExpectedPosition(rank domain.Rank, handSize int) float64 {
	return float64(rank-1)*float64(handSize)/float64(domain.MaxRank) + 1
}

// PositionalFit weighs how well rank fits the 0-based position.
func (e *Estimator) PositionalFit(rank domain.Rank, position, handSize int) float64 {
	d := math.Abs(ExpectedPosition(rank, handSize) - float64(position+1))
	for _, step := range e.Tuning.PositionSteps {
		if d < step.Below {
			return step.Weight
		}
	}
	return e.Tuning.FarWeight
}

// Accuracy returns the skill factor, treating an unset skill as intermediate.
func (e *Estimator) Accuracy(skill domain.SkillLevel) float64 {
	if v, ok := e.Tuning.SkillAccuracy[skill]; ok {
		return v
	}
	return e.Tuning.SkillAccuracy[domain.SkillIntermediate]
}

// SeenRanks counts, per rank, the cards the guesser can already account for:
// every face-up card plus the guesser's own hand.
func SeenRanks(state *domain.GameState, guesser *domain.Player) map[domain.Rank]int {
	seen := make(map[domain.Face]struct{}, domain.DeckSize)
	for _, f := range state.RevealedFaces() {
		seen[f] = struct{}{}
	}
	for _, c := range guesser.Hand {
		seen[c.Face()] = struct{}{}
	}
	out := make(map[domain.Rank]int, domain.MaxRank)
	for f := range seen {
		out[f.Rank]++
	}
	return out
}

// Score weighs every candidate and returns them sorted by descending score.
// Ties keep deck order. An empty candidate list yields nil.
func (e *Estimator) Score(state *domain.GameState, slot Slot, candidates []domain.Face) []ScoredCandidate {
	if len(candidates) == 0 {
		return nil
	}
	seen := SeenRanks(state, slot.Guesser)
	accuracy := e.Accuracy(slot.Guesser.SkillLevel)
	handSize := len(slot.Target.Hand)

	out := make([]ScoredCandidate, 0, len(candidates))
	for _, f := range candidates {
		score := e.PositionalFit(f.Rank, slot.Position, handSize)
		score *= math.Pow(e.Tuning.DuplicateDecay, float64(seen[f.Rank]))
		score *= accuracy
		out = append(out, ScoredCandidate{Face: f, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}
