package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"cardhunter/internal/app"
	"cardhunter/internal/bot"
	"cardhunter/internal/domain"
)

// noopLogger implements runtime.Logger for tests that only need to satisfy the interface.
type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{}) {}
func (noopLogger) Info(string, ...interface{})  {}
func (noopLogger) Warn(string, ...interface{})  {}
func (noopLogger) Error(string, ...interface{}) {}
func (noopLogger) WithField(string, interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) WithFields(map[string]interface{}) runtime.Logger {
	return noopLogger{}
}
func (noopLogger) Fields() map[string]interface{} {
	return nil
}

// fakeInitializer records RPC registrations.
type fakeInitializer struct {
	runtime.Initializer
	ids []string
}

func (f *fakeInitializer) RegisterRpc(id string, fn func(context.Context, runtime.Logger, *sql.DB, runtime.NakamaModule, string) (string, error)) error {
	f.ids = append(f.ids, id)
	return nil
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
}

type guessResponse struct {
	TargetID int         `json:"target_id"`
	Position int         `json:"position"`
	Suit     domain.Suit `json:"suit"`
	Rank     domain.Rank `json:"rank"`
	Fallback bool        `json:"fallback"`
}

func setupEngine(t *testing.T) {
	t.Helper()
	sessions = app.NewSessionRegistry(time.Hour, bot.DefaultTuning)
	tokens = app.NewTokenService("test-secret", "cardhunter", time.Hour)
	t.Cleanup(func() {
		sessions = nil
		tokens = nil
	})
}

func userCtx(userID string) context.Context {
	return context.WithValue(context.Background(), runtime.RUNTIME_CTX_USER_ID, userID)
}

func openSession(t *testing.T, ctx context.Context) sessionResponse {
	t.Helper()
	raw, err := rpcCreateSession(ctx, noopLogger{}, nil, nil, "")
	if err != nil {
		t.Fatalf("rpcCreateSession error: %v", err)
	}
	var resp sessionResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp.SessionID == "" || resp.Token == "" {
		t.Fatalf("incomplete session response %s", raw)
	}
	return resp
}

func computerGame(t *testing.T) *domain.GameState {
	t.Helper()
	players := make([]*domain.Player, domain.PlayerCount)
	for i := range players {
		players[i] = bot.GetIdentity(i).Player(i)
	}
	state, _, err := app.NewService(rand.New(rand.NewSource(11))).StartGame(players, nil)
	if err != nil {
		t.Fatalf("StartGame() error = %v", err)
	}
	return state
}

func payload(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return string(b)
}

func assertCode(t *testing.T, err error, code int) {
	t.Helper()
	rerr, ok := err.(*runtime.Error)
	if !ok {
		t.Fatalf("expected *runtime.Error with code %d, got %v", code, err)
	}
	if rerr.Code != code {
		t.Fatalf("code = %d, want %d (%v)", rerr.Code, code, err)
	}
}

func TestRegisterRPCs(t *testing.T) {
	fi := &fakeInitializer{}
	if err := RegisterRPCs(fi); err != nil {
		t.Fatalf("RegisterRPCs error: %v", err)
	}
	if len(fi.ids) != 7 {
		t.Fatalf("registered %v", fi.ids)
	}
}

func TestProposeGuessRoundTrip(t *testing.T) {
	setupEngine(t)
	ctx := userCtx("user123")
	sess := openSession(t, ctx)
	state := computerGame(t)

	raw, err := rpcProposeGuess(ctx, noopLogger{}, nil, nil, payload(t, map[string]any{
		"token": sess.Token, "state": state, "target_id": 1, "position": 4,
	}))
	if err != nil {
		t.Fatalf("rpcProposeGuess error: %v", err)
	}
	var g guessResponse
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		t.Fatalf("unmarshal guess: %v", err)
	}
	if g.TargetID != 1 || g.Position != 4 || !g.Suit.Valid() || !g.Rank.Valid() {
		t.Fatalf("unexpected guess %+v", g)
	}
	for _, c := range state.Players[0].Hand {
		if c.Face() == (domain.Face{Suit: g.Suit, Rank: g.Rank}) {
			t.Fatalf("guessed a card the guesser holds: %+v", g)
		}
	}
}

func TestProposeGuessChoosesSlot(t *testing.T) {
	setupEngine(t)
	ctx := userCtx("user123")
	sess := openSession(t, ctx)
	state := computerGame(t)

	raw, err := rpcProposeGuess(ctx, noopLogger{}, nil, nil, payload(t, map[string]any{
		"token": sess.Token, "state": state, "target_id": 1,
	}))
	if err != nil {
		t.Fatalf("rpcProposeGuess error: %v", err)
	}
	var g guessResponse
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		t.Fatalf("unmarshal guess: %v", err)
	}
	if g.Position < 0 || g.Position >= domain.HandSize {
		t.Fatalf("position %d out of range", g.Position)
	}
}

func TestRecordGuessAndReset(t *testing.T) {
	setupEngine(t)
	ctx := userCtx("user123")
	sess := openSession(t, ctx)

	raw, err := rpcRecordGuess(ctx, noopLogger{}, nil, nil, payload(t, map[string]any{
		"token": sess.Token, "target_id": 1, "position": 2, "suit": "hearts", "rank": 5, "was_correct": false,
	}))
	if err != nil {
		t.Fatalf("rpcRecordGuess error: %v", err)
	}
	var resp struct {
		Entries int `json:"entries"`
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil || resp.Entries != 1 {
		t.Fatalf("entries response %s (%v)", raw, err)
	}

	raw, err = rpcResetSession(ctx, noopLogger{}, nil, nil, payload(t, map[string]any{"token": sess.Token}))
	if err != nil {
		t.Fatalf("rpcResetSession error: %v", err)
	}
	if err := json.Unmarshal([]byte(raw), &resp); err != nil || resp.Entries != 0 {
		t.Fatalf("reset response %s (%v)", raw, err)
	}
}

func TestRecordGuessRejectsBadCard(t *testing.T) {
	setupEngine(t)
	ctx := userCtx("user123")
	sess := openSession(t, ctx)

	_, err := rpcRecordGuess(ctx, noopLogger{}, nil, nil, payload(t, map[string]any{
		"token": sess.Token, "target_id": 1, "position": 2, "suit": "stars", "rank": 5,
	}))
	assertCode(t, err, codeInvalidArgument)
}

func TestDecideContinuationAndOwnReveal(t *testing.T) {
	setupEngine(t)
	ctx := userCtx("user123")
	sess := openSession(t, ctx)
	state := computerGame(t)

	raw, err := rpcDecideContinuation(ctx, noopLogger{}, nil, nil, payload(t, map[string]any{
		"token": sess.Token, "state": state, "player_id": 0,
	}))
	if err != nil {
		t.Fatalf("rpcDecideContinuation error: %v", err)
	}
	var cont map[string]any
	if err := json.Unmarshal([]byte(raw), &cont); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := cont["continue"].(bool); !ok {
		t.Fatalf("continue missing from %s", raw)
	}

	raw, err = rpcChooseOwnReveal(ctx, noopLogger{}, nil, nil, payload(t, map[string]any{
		"token": sess.Token, "state": state, "player_id": 2,
	}))
	if err != nil {
		t.Fatalf("rpcChooseOwnReveal error: %v", err)
	}
	var reveal struct {
		Position int `json:"position"`
	}
	if err := json.Unmarshal([]byte(raw), &reveal); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if reveal.Position < 0 || reveal.Position >= domain.HandSize {
		t.Fatalf("position %d out of range", reveal.Position)
	}
}

func TestSessionErrors(t *testing.T) {
	setupEngine(t)
	ctx := userCtx("user123")
	sess := openSession(t, ctx)
	state := computerGame(t)

	_, err := rpcCreateSession(context.Background(), noopLogger{}, nil, nil, "")
	assertCode(t, err, codeUnauthenticated)

	_, err = rpcProposeGuess(ctx, noopLogger{}, nil, nil, payload(t, map[string]any{
		"token": "garbage", "state": state, "target_id": 1, "position": 0,
	}))
	assertCode(t, err, codeUnauthenticated)

	_, err = rpcProposeGuess(userCtx("someone-else"), noopLogger{}, nil, nil, payload(t, map[string]any{
		"token": sess.Token, "state": state, "target_id": 1, "position": 0,
	}))
	assertCode(t, err, codePermissionDenied)

	_, err = rpcProposeGuess(ctx, noopLogger{}, nil, nil, `{"token":`)
	assertCode(t, err, codeInvalidArgument)

	_, err = rpcProposeGuess(ctx, noopLogger{}, nil, nil, payload(t, map[string]any{
		"token": sess.Token, "state": state, "target_id": 9, "position": 0,
	}))
	assertCode(t, err, codeInvalidArgument)

	if _, err := rpcEndSession(ctx, noopLogger{}, nil, nil, payload(t, map[string]any{"token": sess.Token})); err != nil {
		t.Fatalf("rpcEndSession error: %v", err)
	}
	_, err = rpcResetSession(ctx, noopLogger{}, nil, nil, payload(t, map[string]any{"token": sess.Token}))
	assertCode(t, err, codeNotFound)
}

func TestProposeGuessRejectsInvalidState(t *testing.T) {
	setupEngine(t)
	ctx := userCtx("user123")
	sess := openSession(t, ctx)
	state := computerGame(t)
	state.Players[1].Hand[0], state.Players[1].Hand[12] = state.Players[1].Hand[12], state.Players[1].Hand[0]

	_, err := rpcProposeGuess(ctx, noopLogger{}, nil, nil, payload(t, map[string]any{
		"token": sess.Token, "state": state, "target_id": 1, "position": 0,
	}))
	assertCode(t, err, codeInvalidArgument)
}

func TestEncodeResponseEmitsZeroValues(t *testing.T) {
	raw, err := encodeResponse(map[string]any{"entries": 0, "fallback": false})
	if err != nil {
		t.Fatalf("encodeResponse error: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["entries"]; !ok {
		t.Fatalf("zero value dropped: %s", raw)
	}
}

func TestRecordedMissIsNeverProposedAgain(t *testing.T) {
	setupEngine(t)
	ctx := userCtx("user123")
	sess := openSession(t, ctx)
	state := computerGame(t)
	const target, position = 1, 4
	actual := state.Players[target].Hand[position].Face()

	missed := make(map[domain.Face]bool)
	for i := 0; i < domain.DeckSize; i++ {
		raw, err := rpcProposeGuess(ctx, noopLogger{}, nil, nil, payload(t, map[string]any{
			"token": sess.Token, "state": state, "target_id": target, "position": position,
		}))
		if err != nil {
			t.Fatalf("guess %d: rpcProposeGuess error: %v", i, err)
		}
		var g guessResponse
		if err := json.Unmarshal([]byte(raw), &g); err != nil {
			t.Fatalf("unmarshal guess: %v", err)
		}
		face := domain.Face{Suit: g.Suit, Rank: g.Rank}
		if missed[face] {
			t.Fatalf("guess %d repeated recorded miss %s", i, face)
		}
		if face == actual {
			return
		}
		missed[face] = true
		if _, err := rpcRecordGuess(ctx, noopLogger{}, nil, nil, payload(t, map[string]any{
			"token": sess.Token, "target_id": target, "position": position,
			"suit": g.Suit, "rank": g.Rank, "was_correct": false,
		})); err != nil {
			t.Fatalf("rpcRecordGuess error: %v", err)
		}
	}
	t.Fatalf("real card %s never proposed after %d misses", actual, len(missed))
}

// fieldLogger records the fields attached through WithField.
type fieldLogger struct {
	noopLogger
	fields map[string]interface{}
}

func (l *fieldLogger) WithField(key string, v interface{}) runtime.Logger {
	l.fields[key] = v
	return l
}

func TestProposeGuessSlotErrorCarriesSession(t *testing.T) {
	setupEngine(t)
	ctx := userCtx("user123")
	sess := openSession(t, ctx)
	state := computerGame(t)
	for i := range state.Players[1].Hand {
		state.Players[1].Hand[i].IsRevealed = true
	}
	state.EliminationOrder = []int{1}

	logger := &fieldLogger{fields: map[string]interface{}{}}
	_, err := rpcProposeGuess(ctx, logger, nil, nil, payload(t, map[string]any{
		"token": sess.Token, "state": state, "target_id": 1,
	}))
	assertCode(t, err, codeInvalidArgument)
	if logger.fields["session_id"] != sess.SessionID {
		t.Fatalf("session_id field = %v, want %s", logger.fields["session_id"], sess.SessionID)
	}
}
