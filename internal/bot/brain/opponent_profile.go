package brain

import "cardhunter/internal/domain"

// SlotView summarizes what a guesser can infer about one hidden slot.
type SlotView struct {
	Position   int
	Range      RankRange
	Candidates int
	// BestScore is the top candidate score, zero when nothing survives.
	BestScore float64
}

// OpponentProfile is the guesser's view of one target's hidden cards.
type OpponentProfile struct {
	TargetID int
	Hidden   int
	Slots    []SlotView
	// Misses counts wrong guesses recorded against any of the target's slots.
	Misses int
}

// BuildProfile evaluates every hidden slot of target from guesser's perspective.
func (e *Estimator) BuildProfile(state *domain.GameState, guesser, target *domain.Player, history *GuessHistory) OpponentProfile {
	p := OpponentProfile{TargetID: target.ID, Hidden: target.HiddenCount()}
	for i, c := range target.Hand {
		p.Misses += len(history.WrongGuesses(target.ID, i))
		if c.IsRevealed {
			continue
		}
		slot := Slot{Guesser: guesser, Target: target, Position: i}
		ex := BuildExclusions(state, slot, history)
		cands := Candidates(ex)
		view := SlotView{Position: i, Range: ex.Range, Candidates: len(cands)}
		if scored := e.Score(state, slot, cands); len(scored) > 0 {
			view.BestScore = scored[0].Score
		}
		p.Slots = append(p.Slots, view)
	}
	return p
}

// MostConstrained returns the slot with the fewest surviving candidates,
// preferring the higher best score on ties. ok is false when no slot is hidden.
func (p OpponentProfile) MostConstrained() (SlotView, bool) {
	var best SlotView
	found := false
	for _, s := range p.Slots {
		if s.Candidates == 0 {
			continue
		}
		if !found || s.Candidates < best.Candidates ||
			(s.Candidates == best.Candidates && s.BestScore > best.BestScore) {
			best = s
			found = true
		}
	}
	if !found && len(p.Slots) > 0 {
		return p.Slots[0], true
	}
	return best, found
}
