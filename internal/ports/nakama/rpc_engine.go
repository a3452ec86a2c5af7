package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"cardhunter/internal/domain"
)

type proposeGuessRequest struct {
	Token    string            `json:"token"`
	State    *domain.GameState `json:"state"`
	TargetID int               `json:"target_id"`
	// Position is optional; when absent the engine picks the slot.
	Position *int `json:"position"`
}

type recordGuessRequest struct {
	Token      string      `json:"token"`
	TargetID   int         `json:"target_id"`
	Position   int         `json:"position"`
	Suit       domain.Suit `json:"suit"`
	Rank       domain.Rank `json:"rank"`
	WasCorrect bool        `json:"was_correct"`
}

type playerRequest struct {
	Token    string            `json:"token"`
	State    *domain.GameState `json:"state"`
	PlayerID int               `json:"player_id"`
}

// rpcProposeGuess asks the computer whose turn it is for a guess against the
// target's hidden card.
//
// Payload: {"token", "state", "target_id", "position"?}
// Returns: {"target_id", "position", "suit", "rank", "fallback"}
func rpcProposeGuess(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req proposeGuessRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	if err := decodeState(req.State); err != nil {
		return "", err
	}
	s, err := authorize(ctx, logger, req.Token)
	if err != nil {
		return "", err
	}

	s.Lock()
	defer s.Unlock()
	logger = logger.WithField("session_id", s.ID)
	position := 0
	if req.Position != nil {
		position = *req.Position
	} else if position, err = s.Agent.ChooseSlot(req.State, s.History, req.TargetID); err != nil {
		return "", toRuntimeError(logger, err)
	}
	guess, err := s.Agent.ProposeGuess(req.State, s.History, req.TargetID, position)
	if err != nil {
		return "", toRuntimeError(logger, err)
	}
	if guess.Fallback {
		logger.Debug("rpcProposeGuess: fallback guess for player %d position %d", guess.TargetID, guess.Position)
	}

	return encodeResponse(map[string]any{
		"target_id": guess.TargetID,
		"position":  guess.Position,
		"suit":      string(guess.Suit),
		"rank":      int(guess.Rank),
		"fallback":  guess.Fallback,
	})
}

// rpcRecordGuess appends a resolved guess to the session ledger.
//
// Payload: {"token", "target_id", "position", "suit", "rank", "was_correct"}
// Returns: {"entries": n}
func rpcRecordGuess(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req recordGuessRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	if !req.Suit.Valid() || !req.Rank.Valid() || req.Position < 0 || req.Position >= domain.HandSize {
		return "", runtime.NewError("Invalid guess", codeInvalidArgument)
	}
	s, err := authorize(ctx, logger, req.Token)
	if err != nil {
		return "", err
	}

	s.Lock()
	s.History.Record(req.TargetID, req.Position, domain.Face{Suit: req.Suit, Rank: req.Rank}, req.WasCorrect)
	n := s.History.Len()
	s.Unlock()
	return encodeResponse(map[string]any{"entries": n})
}

// rpcDecideContinuation asks whether a computer keeps guessing after a correct guess.
//
// Payload: {"token", "state", "player_id"}
// Returns: {"continue": bool}
func rpcDecideContinuation(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req playerRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	if err := decodeState(req.State); err != nil {
		return "", err
	}
	s, err := authorize(ctx, logger, req.Token)
	if err != nil {
		return "", err
	}

	s.Lock()
	defer s.Unlock()
	cont, err := s.Agent.DecideContinuation(req.State, req.PlayerID)
	if err != nil {
		return "", toRuntimeError(logger, err)
	}
	return encodeResponse(map[string]any{"continue": cont})
}

// rpcChooseOwnReveal picks which of a computer's own hidden cards to turn up
// after a wrong guess.
//
// Payload: {"token", "state", "player_id"}
// Returns: {"position": n}
func rpcChooseOwnReveal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req playerRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	if err := decodeState(req.State); err != nil {
		return "", err
	}
	s, err := authorize(ctx, logger, req.Token)
	if err != nil {
		return "", err
	}

	s.Lock()
	defer s.Unlock()
	position, err := s.Agent.ChooseOwnReveal(req.State, req.PlayerID)
	if err != nil {
		return "", toRuntimeError(logger, err)
	}
	return encodeResponse(map[string]any{"position": position})
}
