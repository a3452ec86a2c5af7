package bot

import (
	"errors"
	"fmt"

	"cardhunter/internal/bot/brain"
	"cardhunter/internal/domain"
)

// ErrInconsistentState reports bookkeeping that leaves no possible card for a hidden slot.
var ErrInconsistentState = errors.New("game state inconsistent")

// InconsistentStateError names the slot for which every card was ruled out.
type InconsistentStateError struct {
	GuesserID int
	TargetID  int
	Position  int
}

func (e *InconsistentStateError) Error() string {
	return fmt.Sprintf("no card left for player %d position %d as seen by player %d", e.TargetID, e.Position, e.GuesserID)
}

// Is matches ErrInconsistentState.
func (e *InconsistentStateError) Is(target error) bool {
	return target == ErrInconsistentState
}

// Guess represents the decision made by the AI.
type Guess struct {
	TargetID int         `json:"target_id"`
	Position int         `json:"position"`
	Suit     domain.Suit `json:"suit"`
	Rank     domain.Rank `json:"rank"`
	// Fallback is set when no scored candidate existed and the guess was drawn
	// from every card not known to be elsewhere.
	Fallback bool `json:"fallback"`
}

// Face returns the guessed suit/rank.
func (g Guess) Face() domain.Face {
	return domain.Face{Suit: g.Suit, Rank: g.Rank}
}

// Brain is the interface a computer opponent exposes to turn sequencing.
type Brain interface {
	ProposeGuess(state *domain.GameState, history *brain.GuessHistory, targetID, position int) (Guess, error)
	DecideContinuation(state *domain.GameState, playerID int) (bool, error)
}

var _ Brain = (*Agent)(nil)
