package simulation

import (
	"sort"

	"cardhunter/internal/domain"
)

// SkillStats aggregates every seat played at one skill level.
type SkillStats struct {
	Skill     domain.SkillLevel
	Seats     int
	Guesses   int
	Correct   int
	Wins      int
	Fallbacks int
	placeSum  int
}

// Accuracy is the share of guesses that were correct.
func (s SkillStats) Accuracy() float64 {
	if s.Guesses == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Guesses)
}

// WinRate is the share of seats that won their game.
func (s SkillStats) WinRate() float64 {
	if s.Seats == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Seats)
}

// AveragePlace is the mean finishing place, 1 being best.
func (s SkillStats) AveragePlace() float64 {
	if s.Seats == 0 {
		return 0
	}
	return float64(s.placeSum) / float64(s.Seats)
}

// PersonalityStats aggregates continuation behaviour per personality.
type PersonalityStats struct {
	Personality domain.Personality
	Correct     int
	Continues   int
}

// ContinueRate is the share of correct guesses followed by another guess.
func (p PersonalityStats) ContinueRate() float64 {
	if p.Correct == 0 {
		return 0
	}
	return float64(p.Continues) / float64(p.Correct)
}

// Report is the aggregate of a batch of games.
type Report struct {
	Games         int
	Failed        int
	AverageTurns  float64
	Skills        []SkillStats
	Personalities []PersonalityStats
	Results       []GameResult
}

// Aggregate folds game results into per-skill and per-personality statistics.
// Failed games are counted but contribute nothing else.
func Aggregate(results []GameResult) Report {
	sort.Slice(results, func(i, j int) bool { return results[i].SimID < results[j].SimID })

	skills := make(map[domain.SkillLevel]*SkillStats)
	personalities := make(map[domain.Personality]*PersonalityStats)
	report := Report{Games: len(results), Results: results}
	turns := 0

	for _, r := range results {
		if r.Err != nil {
			report.Failed++
			continue
		}
		turns += r.Turns
		for _, p := range r.Players {
			s, ok := skills[p.Skill]
			if !ok {
				s = &SkillStats{Skill: p.Skill}
				skills[p.Skill] = s
			}
			s.Seats++
			s.Guesses += p.Guesses
			s.Correct += p.Correct
			s.Fallbacks += p.Fallbacks
			s.placeSum += p.Place
			if p.Place == 1 {
				s.Wins++
			}

			ps, ok := personalities[p.Personality]
			if !ok {
				ps = &PersonalityStats{Personality: p.Personality}
				personalities[p.Personality] = ps
			}
			ps.Correct += p.Correct
			ps.Continues += p.Continues
		}
	}

	if played := report.Games - report.Failed; played > 0 {
		report.AverageTurns = float64(turns) / float64(played)
	}
	for _, s := range skills {
		report.Skills = append(report.Skills, *s)
	}
	for _, p := range personalities {
		report.Personalities = append(report.Personalities, *p)
	}
	sort.Slice(report.Skills, func(i, j int) bool { return skillOrder(report.Skills[i].Skill) < skillOrder(report.Skills[j].Skill) })
	sort.Slice(report.Personalities, func(i, j int) bool {
		return report.Personalities[i].Personality < report.Personalities[j].Personality
	})
	return report
}

func skillOrder(s domain.SkillLevel) int {
	switch s {
	case domain.SkillBeginner:
		return 0
	case domain.SkillIntermediate:
		return 1
	case domain.SkillExpert:
		return 2
	}
	return 3
}
