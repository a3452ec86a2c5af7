package nakama

import (
	"encoding/json"
	"errors"

	"github.com/heroiclabs/nakama-common/runtime"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"cardhunter/internal/app"
	"cardhunter/internal/bot"
	"cardhunter/internal/domain"
)

var responseOptions = protojson.MarshalOptions{EmitUnpopulated: true}

func decodePayload(payload string, v any) error {
	if payload == "" {
		payload = "{}"
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return runtime.NewError("Invalid payload", codeInvalidArgument)
	}
	return nil
}

// decodeState validates a client-held game state before the engine reads it.
func decodeState(state *domain.GameState) error {
	if state == nil || len(state.Players) == 0 {
		return runtime.NewError("State required", codeInvalidArgument)
	}
	for _, p := range state.Players {
		if p == nil {
			return runtime.NewError("Invalid state: empty seat", codeInvalidArgument)
		}
	}
	if err := domain.Validate(state); err != nil {
		return runtime.NewError("Invalid state: "+err.Error(), codeInvalidArgument)
	}
	return nil
}

func encodeResponse(fields map[string]any) (string, error) {
	s, err := structpb.NewStruct(fields)
	if err != nil {
		return "", runtime.NewError("Internal error", codeInternal)
	}
	out, err := responseOptions.Marshal(s)
	if err != nil {
		return "", runtime.NewError("Internal error", codeInternal)
	}
	return string(out), nil
}

// toRuntimeError maps engine errors onto RPC status codes.
func toRuntimeError(logger runtime.Logger, err error) error {
	switch {
	case errors.Is(err, app.ErrInvalidToken):
		return runtime.NewError("Invalid session token", codeUnauthenticated)
	case errors.Is(err, app.ErrSessionNotFound):
		return runtime.NewError("Session not found", codeNotFound)
	case errors.Is(err, bot.ErrInconsistentState):
		logger.Warn("Inconsistent state: %v", err)
		return runtime.NewError(err.Error(), codeFailedPrecondition)
	case errors.Is(err, domain.ErrPlayerNotFound),
		errors.Is(err, domain.ErrPositionOutOfRange),
		errors.Is(err, domain.ErrCardRevealed):
		return runtime.NewError(err.Error(), codeInvalidArgument)
	}
	logger.Error("Engine error: %v", err)
	return runtime.NewError("Internal error", codeInternal)
}
