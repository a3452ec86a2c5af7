package bot

import (
	"errors"
	"fmt"
	"math"

	"cardhunter/internal/bot/brain"
	"cardhunter/internal/domain"
)

// MaxContinuationProbability bounds the chance of guessing again, whatever Cap says.
const MaxContinuationProbability = 0.9

// ErrInvalidTuning reports a knob outside its allowed range.
var ErrInvalidTuning = errors.New("invalid tuning")

// SelectionTuning shapes how a skill level turns scores into one guess.
type SelectionTuning struct {
	// PoolRatio is the share of the sorted candidates kept in the pool.
	// Zero means only candidates tied with the top score.
	PoolRatio float64 `json:"pool_ratio"`
	MinPool   int     `json:"min_pool"`
	// Sharpness is the exponent applied to score/top when weighting the pool.
	Sharpness float64 `json:"sharpness"`
}

// ContinuationTuning holds the constants of the continue-or-stop policy.
type ContinuationTuning struct {
	BaseRate      map[domain.Personality]float64 `json:"base_rate"`
	ThreatHidden  int                            `json:"threat_hidden"`
	ThreatBoost   float64                        `json:"threat_boost"`
	SafeDampening float64                        `json:"safe_dampening"`
	Cap           float64                        `json:"cap"`
}

// Tuning bundles every knob of a computer player.
type Tuning struct {
	Model        brain.ModelTuning                     `json:"model"`
	Selection    map[domain.SkillLevel]SelectionTuning `json:"selection"`
	Continuation ContinuationTuning                    `json:"continuation"`
	// MinScoreRatio drops candidates scoring below this share of the top score.
	MinScoreRatio float64 `json:"min_score_ratio"`
}

// DefaultTuning separates the three skill levels by how greedily they pick.
var DefaultTuning = Tuning{
	Model: brain.DefaultModelTuning,
	Selection: map[domain.SkillLevel]SelectionTuning{
		domain.SkillBeginner:     {PoolRatio: 0.5, MinPool: 3, Sharpness: 1},
		domain.SkillIntermediate: {PoolRatio: 0.3, MinPool: 2, Sharpness: 2},
		domain.SkillExpert:       {PoolRatio: 0, MinPool: 1, Sharpness: 0},
	},
	Continuation: ContinuationTuning{
		BaseRate: map[domain.Personality]float64{
			domain.PersonalityAggressive: 0.7,
			domain.PersonalityBalanced:   0.45,
			domain.PersonalityCautious:   0.2,
		},
		ThreatHidden:  3,
		ThreatBoost:   1.2,
		SafeDampening: 0.8,
		Cap:           0.9,
	},
	MinScoreRatio: 0.01,
}

// ForSkill returns the selection knobs of a skill, treating unset as intermediate.
func (t Tuning) ForSkill(skill domain.SkillLevel) SelectionTuning {
	if s, ok := t.Selection[skill]; ok {
		return s
	}
	return t.Selection[domain.SkillIntermediate]
}

// Validate checks that every knob is finite and inside its range.
func (t Tuning) Validate() error {
	for skill, v := range t.Model.SkillAccuracy {
		if !inRange(v, 0, 1) {
			return fmt.Errorf("skill accuracy %s = %v: %w", skill, v, ErrInvalidTuning)
		}
	}
	for skill, s := range t.Selection {
		if !inRange(s.PoolRatio, 0, 1) || s.MinPool < 0 || !inRange(s.Sharpness, 0, math.MaxFloat64) {
			return fmt.Errorf("selection %s = %+v: %w", skill, s, ErrInvalidTuning)
		}
	}
	for p, v := range t.Continuation.BaseRate {
		if !inRange(v, 0, 1) {
			return fmt.Errorf("continuation base rate %s = %v: %w", p, v, ErrInvalidTuning)
		}
	}
	if !inRange(t.Continuation.Cap, 0, MaxContinuationProbability) {
		return fmt.Errorf("continuation cap %v outside [0, %v]: %w", t.Continuation.Cap, MaxContinuationProbability, ErrInvalidTuning)
	}
	if !inRange(t.MinScoreRatio, 0, 1) {
		return fmt.Errorf("min score ratio %v: %w", t.MinScoreRatio, ErrInvalidTuning)
	}
	return nil
}

func inRange(v, lo, hi float64) bool {
	return !math.IsNaN(v) && v >= lo && v <= hi
}
