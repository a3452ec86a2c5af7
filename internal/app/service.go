package app

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"time"

	"cardhunter/internal/bot/brain"
	"cardhunter/internal/domain"
)

// Service contains Card Hunter use-cases operating on domain state.
type Service struct {
	rng *rand.Rand
	now func() time.Time
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng, now: time.Now}
}

var (
	ErrNotPlaying       = errors.New("game not in playing state")
	ErrWrongPlayerCount = errors.New("game needs exactly four players")
	ErrNotYourTurn      = errors.New("not this player's turn")
	ErrWrongTarget      = errors.New("target is not the next active player")
	ErrUnexpectedAction = errors.New("action not expected now")
)

// StartGame deals a fresh game to players in seat order and clears history.
func (s *Service) StartGame(players []*domain.Player, history *brain.GuessHistory) (*domain.GameState, []Event, error) {
	if len(players) != domain.PlayerCount {
		return nil, nil, fmt.Errorf("%d players: %w", len(players), ErrWrongPlayerCount)
	}
	hands, err := domain.Deal(domain.ShuffleDeck(domain.NewDeck(), s.rng), len(players))
	if err != nil {
		return nil, nil, err
	}
	if history != nil {
		history.Reset()
	}

	state := &domain.GameState{Status: domain.StatusPlaying}
	events := make([]Event, 0, len(players)+1)
	for i, p := range players {
		pl := *p
		pl.Hand = hands[i]
		state.Players = append(state.Players, &pl)
		events = append(events, Event{
			Kind:       EventHandDealt,
			Payload:    HandDealtPayload{PlayerID: pl.ID, Hand: pl.Hand},
			Recipients: []int{pl.ID},
		})
	}

	events = append(events, Event{
		Kind:    EventGameStarted,
		Payload: GameStartedPayload{Status: state.Status, FirstTurnPlayer: state.Players[0].ID},
	})
	return state, events, nil
}

// TargetFor returns the player the current player must guess against.
func TargetFor(state *domain.GameState) (*domain.Player, error) {
	idx := state.NextActiveIndex(state.CurrentPlayerIndex)
	if idx < 0 {
		return nil, fmt.Errorf("no active opponent: %w", ErrNotPlaying)
	}
	return state.Players[idx], nil
}

func (s *Service) requireTurn(state *domain.GameState, playerID int, pending domain.PendingAction) (*domain.Player, error) {
	if state.Status != domain.StatusPlaying {
		return nil, ErrNotPlaying
	}
	current, err := state.CurrentPlayer()
	if err != nil {
		return nil, err
	}
	if current.ID != playerID {
		return nil, fmt.Errorf("player %d: %w", playerID, ErrNotYourTurn)
	}
	if state.Pending != pending {
		return nil, fmt.Errorf("pending %q: %w", state.Pending, ErrUnexpectedAction)
	}
	return current, nil
}

// SubmitGuess resolves the current player's guess against the next active
// player's card at position. A correct guess reveals the card and waits for a
// continuation decision; a wrong one waits for the guesser to reveal a card.
func (s *Service) SubmitGuess(state *domain.GameState, history *brain.GuessHistory, guesserID, targetID, position int, face domain.Face) (bool, []Event, error) {
	if _, err := s.requireTurn(state, guesserID, domain.PendingGuess); err != nil {
		return false, nil, err
	}
	target, err := TargetFor(state)
	if err != nil {
		return false, nil, err
	}
	if target.ID != targetID {
		return false, nil, fmt.Errorf("player %d, expected %d: %w", targetID, target.ID, ErrWrongTarget)
	}
	card, err := target.CardAt(position)
	if err != nil {
		return false, nil, err
	}
	if card.IsRevealed {
		return false, nil, fmt.Errorf("player %d position %d: %w", targetID, position, domain.ErrCardRevealed)
	}

	correct := card.Face() == face
	log := domain.GuessLog{
		GuessingPlayer: guesserID,
		TargetPlayer:   targetID,
		Position:       position,
		GuessedSuit:    face.Suit,
		GuessedRank:    face.Rank,
		WasCorrect:     correct,
		Timestamp:      s.now(),
	}
	state.Logs = append(state.Logs, log)
	if history != nil {
		history.Record(targetID, position, face, correct)
	}
	events := []Event{{Kind: EventGuessMade, Payload: GuessMadePayload{Log: log}}}

	if !correct {
		state.Pending = domain.PendingOwnReveal
		return false, events, nil
	}

	target.Hand[position].IsRevealed = true
	events = append(events, Event{
		Kind:    EventCardRevealed,
		Payload: CardRevealedPayload{PlayerID: targetID, Position: position, Card: target.Hand[position]},
	})
	events = append(events, s.settle(state, target)...)
	if state.Status == domain.StatusPlaying {
		state.Pending = domain.PendingContinuation
	}
	return true, events, nil
}

// ContinueTurn records the decision that follows a correct guess. Continuing
// keeps the turn; stopping passes it to the next active player.
func (s *Service) ContinueTurn(state *domain.GameState, playerID int, willContinue bool) ([]Event, error) {
	if _, err := s.requireTurn(state, playerID, domain.PendingContinuation); err != nil {
		return nil, err
	}
	for i := len(state.Logs) - 1; i >= 0; i-- {
		if state.Logs[i].GuessingPlayer == playerID {
			v := willContinue
			state.Logs[i].WillContinue = &v
			break
		}
	}
	state.Pending = domain.PendingGuess
	events := []Event{{Kind: EventContinuation, Payload: ContinuationPayload{PlayerID: playerID, WillContinue: willContinue}}}
	if willContinue {
		return events, nil
	}
	return append(events, s.advance(state)...), nil
}

// RevealOwnCard turns up one of the guesser's cards after a wrong guess and
// passes the turn.
func (s *Service) RevealOwnCard(state *domain.GameState, playerID, position int) ([]Event, error) {
	player, err := s.requireTurn(state, playerID, domain.PendingOwnReveal)
	if err != nil {
		return nil, err
	}
	card, err := player.CardAt(position)
	if err != nil {
		return nil, err
	}
	if card.IsRevealed {
		return nil, fmt.Errorf("player %d position %d: %w", playerID, position, domain.ErrCardRevealed)
	}

	player.Hand[position].IsRevealed = true
	state.Pending = domain.PendingGuess
	events := []Event{{
		Kind:    EventCardRevealed,
		Payload: CardRevealedPayload{PlayerID: playerID, Position: position, Card: player.Hand[position]},
	}}
	events = append(events, s.settle(state, player)...)
	if state.Status != domain.StatusPlaying {
		return events, nil
	}
	return append(events, s.advance(state)...), nil
}

// settle records an elimination of p and ends the game when one player is left.
func (s *Service) settle(state *domain.GameState, p *domain.Player) []Event {
	var events []Event
	if p.IsEliminated() && !slices.Contains(state.EliminationOrder, p.ID) {
		state.EliminationOrder = append(state.EliminationOrder, p.ID)
		events = append(events, Event{Kind: EventPlayerEliminated, Payload: PlayerEliminatedPayload{PlayerID: p.ID}})
	}
	if state.ActiveCount() > 1 {
		return events
	}
	for _, pl := range state.Players {
		if !pl.IsEliminated() {
			w := pl.ID
			state.Winner = &w
		}
	}
	state.Status = domain.StatusFinished
	state.Pending = domain.PendingGuess
	winner := -1
	if state.Winner != nil {
		winner = *state.Winner
	}
	return append(events, Event{
		Kind:    EventGameEnded,
		Payload: GameEndedPayload{Winner: winner, EliminationOrder: append([]int{}, state.EliminationOrder...)},
	})
}

func (s *Service) advance(state *domain.GameState) []Event {
	from := state.Players[state.CurrentPlayerIndex].ID
	next := state.NextActiveIndex(state.CurrentPlayerIndex)
	if next < 0 {
		return nil
	}
	state.CurrentPlayerIndex = next
	return []Event{{
		Kind:    EventTurnPassed,
		Payload: TurnPassedPayload{PlayerID: from, NextTurnPlayerID: state.Players[next].ID},
	}}
}
