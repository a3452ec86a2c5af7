package app

import "cardhunter/internal/domain"

// EventKind identifies emitted game events for dispatch to clients or logs.
type EventKind string

const (
	EventGameStarted      EventKind = "game_started"
	EventHandDealt        EventKind = "hand_dealt"
	EventGuessMade        EventKind = "guess_made"
	EventCardRevealed     EventKind = "card_revealed"
	EventContinuation     EventKind = "continuation"
	EventPlayerEliminated EventKind = "player_eliminated"
	EventTurnPassed       EventKind = "turn_passed"
	EventGameEnded        EventKind = "game_ended"
)

// Event is a game event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []int // player IDs; empty means broadcast
}

type GameStartedPayload struct {
	Status          domain.Status
	FirstTurnPlayer int
}

type HandDealtPayload struct {
	PlayerID int
	Hand     []domain.Card
}

type GuessMadePayload struct {
	Log domain.GuessLog
}

type CardRevealedPayload struct {
	PlayerID int
	Position int
	Card     domain.Card
}

type ContinuationPayload struct {
	PlayerID     int
	WillContinue bool
}

type PlayerEliminatedPayload struct {
	PlayerID int
}

type TurnPassedPayload struct {
	PlayerID         int
	NextTurnPlayerID int
}

type GameEndedPayload struct {
	Winner           int
	EliminationOrder []int
}
