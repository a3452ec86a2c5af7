package bot

import "cardhunter/internal/domain"

// NewSelector returns the guess selection strategy for a skill level.
// An unset or unknown skill plays as intermediate.
func NewSelector(skill domain.SkillLevel, t Tuning) Selector {
	switch skill {
	case domain.SkillExpert:
		return ExpertSelector{}
	case domain.SkillBeginner:
		return &WeightedSelector{Tuning: t.ForSkill(domain.SkillBeginner), MinScoreRatio: t.MinScoreRatio}
	default:
		return &WeightedSelector{Tuning: t.ForSkill(domain.SkillIntermediate), MinScoreRatio: t.MinScoreRatio}
	}
}
