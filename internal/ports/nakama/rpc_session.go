package nakama

import (
	"context"
	"database/sql"

	"github.com/heroiclabs/nakama-common/runtime"

	"cardhunter/internal/app"
)

var (
	sessions *app.SessionRegistry
	tokens   *app.TokenService
)

type sessionRequest struct {
	Token string `json:"token"`
}

// authorize resolves the session named by token and checks it belongs to the caller.
func authorize(ctx context.Context, logger runtime.Logger, token string) (*app.Session, error) {
	if sessions == nil || tokens == nil {
		return nil, runtime.NewError("Engine not initialized", codeInternal)
	}
	if token == "" {
		return nil, runtime.NewError("Token required", codeUnauthenticated)
	}
	claims, err := tokens.ParseToken(token)
	if err != nil {
		return nil, toRuntimeError(logger, err)
	}
	if userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string); userID != "" && userID != claims.UserID {
		return nil, runtime.NewError("Session belongs to another user", codePermissionDenied)
	}
	s, err := sessions.Get(claims.SessionID)
	if err != nil {
		return nil, toRuntimeError(logger, err)
	}
	if s.UserID != claims.UserID {
		return nil, runtime.NewError("Session belongs to another user", codePermissionDenied)
	}
	return s, nil
}

// rpcCreateSession opens an engine session with an empty guess ledger.
//
// Payload: unused.
// Returns: {"session_id": "...", "token": "..."}
func rpcCreateSession(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string)
	if userID == "" {
		return "", runtime.NewError("Authentication required", codeUnauthenticated)
	}
	if sessions == nil || tokens == nil {
		return "", runtime.NewError("Engine not initialized", codeInternal)
	}

	s := sessions.Create(userID)
	token, err := tokens.GenerateToken(userID, s.ID)
	if err != nil {
		sessions.Delete(s.ID)
		logger.Error("rpcCreateSession [User:%s]: failed to sign token: %v", userID, err)
		return "", runtime.NewError("Internal error", codeInternal)
	}

	logger.WithField("session_id", s.ID).Info("rpcCreateSession [User:%s]: session opened", userID)
	return encodeResponse(map[string]any{"session_id": s.ID, "token": token})
}

// rpcResetSession clears the session ledger before a new game.
//
// Payload: {"token": "..."}
// Returns: {"entries": 0}
func rpcResetSession(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req sessionRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	s, err := authorize(ctx, logger, req.Token)
	if err != nil {
		return "", err
	}

	s.Lock()
	s.History.Reset()
	n := s.History.Len()
	s.Unlock()
	return encodeResponse(map[string]any{"entries": n})
}

// rpcEndSession drops the session. Ending an expired session succeeds.
//
// Payload: {"token": "..."}
// Returns: {"ended": true}
func rpcEndSession(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, payload string) (string, error) {
	var req sessionRequest
	if err := decodePayload(payload, &req); err != nil {
		return "", err
	}
	if tokens == nil || sessions == nil {
		return "", runtime.NewError("Engine not initialized", codeInternal)
	}
	claims, err := tokens.ParseToken(req.Token)
	if err != nil {
		return "", toRuntimeError(logger, err)
	}
	if userID, _ := ctx.Value(runtime.RUNTIME_CTX_USER_ID).(string); userID != "" && userID != claims.UserID {
		return "", runtime.NewError("Session belongs to another user", codePermissionDenied)
	}

	sessions.Delete(claims.SessionID)
	logger.WithField("session_id", claims.SessionID).Info("rpcEndSession [User:%s]: session closed", claims.UserID)
	return encodeResponse(map[string]any{"ended": true})
}
