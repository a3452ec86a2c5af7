package brain

import (
	"fmt"

	"cardhunter/internal/domain"
)

// Slot is a face-down card the guesser is reasoning about.
type Slot struct {
	Guesser  *domain.Player
	Target   *domain.Player
	Position int
}

// ResolveSlot looks up the current player as guesser and validates the target slot.
func ResolveSlot(state *domain.GameState, targetID, position int) (Slot, error) {
	guesser, err := state.CurrentPlayer()
	if err != nil {
		return Slot{}, err
	}
	target, err := state.Player(targetID)
	if err != nil {
		return Slot{}, err
	}
	card, err := target.CardAt(position)
	if err != nil {
		return Slot{}, err
	}
	if card.IsRevealed {
		return Slot{}, fmt.Errorf("player %d position %d: %w", targetID, position, domain.ErrCardRevealed)
	}
	return Slot{Guesser: guesser, Target: target, Position: position}, nil
}

// Exclusions is the set of suit/rank pairs that cannot be the slot's card.
type Exclusions struct {
	Range RankRange
	faces map[domain.Face]struct{}
}

// Excludes reports whether face is impossible for the slot.
func (e Exclusions) Excludes(f domain.Face) bool {
	if !e.Range.Contains(f.Rank) {
		return true
	}
	_, ok := e.faces[f]
	return ok
}

// Known returns the faces excluded by visibility and history, ignoring rank bounds.
func (e Exclusions) Known() map[domain.Face]struct{} {
	return e.faces
}

// BuildExclusions gathers every face-up card in play, every card the guesser
// holds, every wrong guess already made against this slot and the solver's
// rank bounds. It never modifies state or history.
func BuildExclusions(state *domain.GameState, slot Slot, history *GuessHistory) Exclusions {
	faces := make(map[domain.Face]struct{}, domain.DeckSize)
	for _, f := range state.RevealedFaces() {
		faces[f] = struct{}{}
	}
	for _, c := range slot.Guesser.Hand {
		faces[c.Face()] = struct{}{}
	}
	for _, f := range history.WrongGuesses(slot.Target.ID, slot.Position) {
		faces[f] = struct{}{}
	}
	return Exclusions{
		Range: PositionRange(slot.Target.Hand, slot.Position),
		faces: faces,
	}
}

// Candidates returns every suit/rank pair that survives the exclusions, in deck order.
func Candidates(ex Exclusions) []domain.Face {
	if !ex.Range.Valid() {
		return nil
	}
	var out []domain.Face
	for _, s := range domain.Suits {
		for r := ex.Range.Min; r <= ex.Range.Max; r++ {
			f := domain.Face{Suit: s, Rank: r}
			if !ex.Excludes(f) {
				out = append(out, f)
			}
		}
	}
	return out
}
