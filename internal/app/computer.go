package app

import (
	"errors"
	"fmt"

	"cardhunter/internal/bot"
	"cardhunter/internal/bot/brain"
	"cardhunter/internal/domain"
)

// ErrHumanTurn is returned when a computer turn is requested for a human seat.
var ErrHumanTurn = errors.New("current player is not a computer")

// ComputerPlayer is the engine surface driven during a computer player's turn.
type ComputerPlayer interface {
	bot.Brain
	ChooseSlot(state *domain.GameState, history *brain.GuessHistory, targetID int) (int, error)
	ChooseOwnReveal(state *domain.GameState, playerID int) (int, error)
}

// TurnResult summarizes one computer turn.
type TurnResult struct {
	PlayerID  int
	Guesses   int
	Correct   int
	Fallbacks int
	Events    []Event
}

// PlayComputerTurn plays the current computer player's whole turn: guesses
// until one misses or the player stops, then hands the turn on.
func (s *Service) PlayComputerTurn(state *domain.GameState, history *brain.GuessHistory, cp ComputerPlayer) (TurnResult, error) {
	player, err := s.requireTurn(state, currentID(state), domain.PendingGuess)
	if err != nil {
		return TurnResult{}, err
	}
	if !player.IsComputer {
		return TurnResult{}, fmt.Errorf("player %d: %w", player.ID, ErrHumanTurn)
	}
	res := TurnResult{PlayerID: player.ID}

	for step := 0; step < MaxComputerSteps; step++ {
		target, err := TargetFor(state)
		if err != nil {
			return res, err
		}
		position, err := cp.ChooseSlot(state, history, target.ID)
		if err != nil {
			return res, fmt.Errorf("choose slot: %w", err)
		}
		guess, err := cp.ProposeGuess(state, history, target.ID, position)
		if err != nil {
			return res, fmt.Errorf("propose guess: %w", err)
		}
		correct, events, err := s.SubmitGuess(state, history, player.ID, target.ID, position, guess.Face())
		if err != nil {
			return res, err
		}
		res.Guesses++
		if guess.Fallback {
			res.Fallbacks++
		}
		res.Events = append(res.Events, events...)

		if !correct {
			own, err := cp.ChooseOwnReveal(state, player.ID)
			if err != nil {
				return res, fmt.Errorf("choose own reveal: %w", err)
			}
			events, err := s.RevealOwnCard(state, player.ID, own)
			res.Events = append(res.Events, events...)
			return res, err
		}

		res.Correct++
		if state.Status != domain.StatusPlaying {
			return res, nil
		}
		cont, err := cp.DecideContinuation(state, player.ID)
		if err != nil {
			return res, fmt.Errorf("decide continuation: %w", err)
		}
		events, err = s.ContinueTurn(state, player.ID, cont)
		res.Events = append(res.Events, events...)
		if err != nil || !cont {
			return res, err
		}
	}
	return res, fmt.Errorf("player %d exceeded %d guesses: %w", player.ID, MaxComputerSteps, bot.ErrInconsistentState)
}

func currentID(state *domain.GameState) int {
	if p, err := state.CurrentPlayer(); err == nil {
		return p.ID
	}
	return -1
}
