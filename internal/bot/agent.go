package bot

import (
	"fmt"
	"math/rand"
	"time"

	"cardhunter/internal/bot/brain"
	botinternal "cardhunter/internal/bot/internal"
	"cardhunter/internal/domain"
)

// Agent represents an autonomous computer player. Each agent owns its random
// source and must not be shared between goroutines.
type Agent struct {
	Tuning    Tuning
	estimator *brain.Estimator
	rng       *rand.Rand
}

// NewAgent builds an agent with the provided rng or a time-seeded default.
func NewAgent(rng *rand.Rand, t Tuning) *Agent {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Agent{Tuning: t, estimator: brain.NewEstimator(t.Model), rng: rng}
}

// ProposeGuess picks a suit and rank for the target's hidden card at position,
// guessing as the current player. It reads a private copy of state and never
// modifies state or history.
func (a *Agent) ProposeGuess(state *domain.GameState, history *brain.GuessHistory, targetID, position int) (Guess, error) {
	state = state.Snapshot()
	slot, err := brain.ResolveSlot(state, targetID, position)
	if err != nil {
		return Guess{}, err
	}

	ex := brain.BuildExclusions(state, slot, history)
	scored := a.estimator.Score(state, slot, brain.Candidates(ex))
	if len(scored) == 0 {
		return a.fallbackGuess(slot, ex)
	}

	pick := NewSelector(slot.Guesser.SkillLevel, a.Tuning).Select(scored, a.rng)
	return Guess{TargetID: targetID, Position: position, Suit: pick.Face.Suit, Rank: pick.Face.Rank}, nil
}

// fallbackGuess draws uniformly from every card that is neither face up, held
// by the guesser, nor already guessed wrong for this slot.
func (a *Agent) fallbackGuess(slot brain.Slot, ex brain.Exclusions) (Guess, error) {
	known := ex.Known()
	var pool []domain.Face
	for _, c := range domain.NewDeck() {
		if _, ok := known[c.Face()]; !ok {
			pool = append(pool, c.Face())
		}
	}
	if len(pool) == 0 {
		return Guess{}, &InconsistentStateError{GuesserID: slot.Guesser.ID, TargetID: slot.Target.ID, Position: slot.Position}
	}
	f := pool[a.rng.Intn(len(pool))]
	return Guess{TargetID: slot.Target.ID, Position: slot.Position, Suit: f.Suit, Rank: f.Rank, Fallback: true}, nil
}

// ChooseSlot picks which hidden position of targetID the current player attacks.
func (a *Agent) ChooseSlot(state *domain.GameState, history *brain.GuessHistory, targetID int) (int, error) {
	guesser, err := state.CurrentPlayer()
	if err != nil {
		return 0, err
	}
	target, err := state.Player(targetID)
	if err != nil {
		return 0, err
	}
	hidden := target.HiddenPositions()
	if len(hidden) == 0 {
		return 0, fmt.Errorf("player %d has no hidden card: %w", targetID, domain.ErrCardRevealed)
	}

	var rules []SlotRule
	switch guesser.SkillLevel {
	case domain.SkillBeginner:
		return hidden[a.rng.Intn(len(hidden))], nil
	case domain.SkillExpert:
		rules = []SlotRule{&PreferEdgeRule{}, &PreferConstrainedRule{}}
	default:
		rules = []SlotRule{&PreferEdgeRule{}}
	}

	ctx := &SlotContext{
		Phase:   botinternal.DetectPhase(state),
		Profile: a.estimator.BuildProfile(state, guesser, target, history),
	}
	ctx.Selected = ctx.Profile.Slots[0]
	runSlotPipeline(ctx, rules)
	return ctx.Selected.Position, nil
}

// ChooseOwnReveal picks which of playerID's hidden cards to turn up after a
// wrong guess.
func (a *Agent) ChooseOwnReveal(state *domain.GameState, playerID int) (int, error) {
	player, err := state.Player(playerID)
	if err != nil {
		return 0, err
	}
	hidden := player.HiddenPositions()
	if len(hidden) == 0 {
		return 0, fmt.Errorf("player %d has no hidden card: %w", playerID, domain.ErrCardRevealed)
	}
	if player.SkillLevel == domain.SkillBeginner {
		return hidden[a.rng.Intn(len(hidden))], nil
	}
	return botinternal.ProfileHand(player.Hand).LeastExposed(), nil
}
