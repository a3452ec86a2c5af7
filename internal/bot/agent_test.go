package bot

import (
	"errors"
	"math/rand"
	"testing"

	"cardhunter/internal/bot/brain"
	"cardhunter/internal/domain"
)

func TestProposeGuessOpeningPosition(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for trial := 0; trial < 200; trial++ {
		state := dealGame(t, rng)
		agent := NewAgent(rand.New(rand.NewSource(int64(trial))), DefaultTuning)
		g, err := agent.ProposeGuess(state, brain.NewGuessHistory(), 1, 0)
		if err != nil {
			t.Fatalf("ProposeGuess() error = %v", err)
		}
		if !g.Rank.Valid() || !g.Suit.Valid() || g.Fallback {
			t.Fatalf("unexpected guess %+v", g)
		}
		for _, c := range state.Players[0].Hand {
			if c.Face() == g.Face() {
				t.Fatalf("guessed own card %s", g.Face())
			}
		}
	}
}

func TestProposeGuessNeverRepeatsWrongGuess(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 50; trial++ {
		state := dealGame(t, rng)
		state.Players[0].SkillLevel = domain.SkillBeginner
		revealSome(rng, state.Players[1], 4)
		position := pickHidden(rng, state.Players[1])
		truth := state.Players[1].Hand[position].Face()

		agent := NewAgent(rand.New(rand.NewSource(int64(trial))), DefaultTuning)
		history := brain.NewGuessHistory()
		seen := make(map[domain.Face]bool)
		for guesses := 0; ; guesses++ {
			if guesses > domain.DeckSize {
				t.Fatalf("trial %d: never found %s", trial, truth)
			}
			g, err := agent.ProposeGuess(state, history, 1, position)
			if err != nil {
				t.Fatalf("ProposeGuess() error = %v", err)
			}
			if seen[g.Face()] {
				t.Fatalf("trial %d: repeated %s", trial, g.Face())
			}
			seen[g.Face()] = true
			correct := g.Face() == truth
			history.Record(1, position, g.Face(), correct)
			if correct {
				break
			}
		}
	}
}

func TestProposeGuessDoesNotMutateInputs(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	state := dealGame(t, rng)
	before := state.Snapshot()
	history := brain.NewGuessHistory()
	history.Record(2, 4, domain.Face{Suit: domain.SuitHearts, Rank: 2}, false)

	if _, err := NewAgent(rng, DefaultTuning).ProposeGuess(state, history, 2, 4); err != nil {
		t.Fatalf("ProposeGuess() error = %v", err)
	}
	for i, p := range state.Players {
		for j, c := range p.Hand {
			if c != before.Players[i].Hand[j] {
				t.Fatalf("player %d card %d changed", i, j)
			}
		}
	}
	if history.Len() != 1 {
		t.Fatalf("history changed: %d entries", history.Len())
	}
}

func TestProposeGuessContractErrors(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	state := dealGame(t, rng)
	state.Players[1].Hand[0].IsRevealed = true
	agent := NewAgent(rng, DefaultTuning)

	if _, err := agent.ProposeGuess(state, nil, 7, 0); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
	if _, err := agent.ProposeGuess(state, nil, 1, 13); !errors.Is(err, domain.ErrPositionOutOfRange) {
		t.Fatalf("expected ErrPositionOutOfRange, got %v", err)
	}
	if _, err := agent.ProposeGuess(state, nil, 1, 0); !errors.Is(err, domain.ErrCardRevealed) {
		t.Fatalf("expected ErrCardRevealed, got %v", err)
	}
}

func TestProposeGuessFallsBackOnEmptyRange(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	state := dealGame(t, rng)
	target := state.Players[1]
	// Out-of-order reveals leave no rank between the bounds.
	target.Hand[0].IsRevealed = true
	target.Hand[2].IsRevealed = true
	target.Hand[0], target.Hand[2] = target.Hand[2], target.Hand[0]
	if target.Hand[0].Rank == target.Hand[2].Rank {
		t.Skip("deal produced equal bounds")
	}
	if brain.PositionRange(target.Hand, 1).Valid() {
		t.Fatalf("expected an empty range for the fixture")
	}

	g, err := NewAgent(rng, DefaultTuning).ProposeGuess(state, nil, 1, 1)
	if err != nil {
		t.Fatalf("ProposeGuess() error = %v", err)
	}
	if !g.Fallback {
		t.Fatalf("expected fallback guess, got %+v", g)
	}
	for _, f := range state.RevealedFaces() {
		if f == g.Face() {
			t.Fatalf("fallback guessed revealed card %s", f)
		}
	}
	for _, c := range state.Players[0].Hand {
		if c.Face() == g.Face() {
			t.Fatalf("fallback guessed own card %s", g.Face())
		}
	}
}

func TestProposeGuessInconsistentState(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	state := dealGame(t, rng)
	for _, p := range state.Players[1:] {
		revealAllBut(p, 0)
	}
	state.Players[1].Hand[5].IsRevealed = false
	history := brain.NewGuessHistory()
	history.Record(1, 5, state.Players[1].Hand[5].Face(), false)

	_, err := NewAgent(rng, DefaultTuning).ProposeGuess(state, history, 1, 5)
	if !errors.Is(err, ErrInconsistentState) {
		t.Fatalf("expected ErrInconsistentState, got %v", err)
	}
	var ise *InconsistentStateError
	if !errors.As(err, &ise) || ise.TargetID != 1 || ise.Position != 5 {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestSkillMonotonicHitRate(t *testing.T) {
	const trials = 20000
	hits := make(map[domain.SkillLevel]int)
	skills := []domain.SkillLevel{domain.SkillBeginner, domain.SkillIntermediate, domain.SkillExpert}
	for _, skill := range skills {
		deal := rand.New(rand.NewSource(99))
		agent := NewAgent(rand.New(rand.NewSource(7)), DefaultTuning)
		for trial := 0; trial < trials; trial++ {
			state := dealGame(t, deal)
			state.Players[0].SkillLevel = skill
			target := state.Players[1]
			revealSome(deal, target, domain.HandSize/2)
			position := pickHidden(deal, target)

			g, err := agent.ProposeGuess(state, nil, 1, position)
			if err != nil {
				t.Fatalf("ProposeGuess() error = %v", err)
			}
			if g.Face() == target.Hand[position].Face() {
				hits[skill]++
			}
		}
	}
	if hits[domain.SkillExpert] < hits[domain.SkillIntermediate] || hits[domain.SkillIntermediate] < hits[domain.SkillBeginner] {
		t.Fatalf("hit rates not monotonic: %v", hits)
	}
}

func TestChooseSlotReturnsHiddenPosition(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	for _, skill := range []domain.SkillLevel{domain.SkillBeginner, domain.SkillIntermediate, domain.SkillExpert, ""} {
		for trial := 0; trial < 50; trial++ {
			state := dealGame(t, rng)
			state.Players[0].SkillLevel = skill
			revealSome(rng, state.Players[1], rng.Intn(domain.HandSize))
			pos, err := NewAgent(rng, DefaultTuning).ChooseSlot(state, nil, 1)
			if err != nil {
				t.Fatalf("ChooseSlot() error = %v", err)
			}
			if state.Players[1].Hand[pos].IsRevealed {
				t.Fatalf("skill %q chose revealed position %d", skill, pos)
			}
		}
	}
}

func TestChooseSlotExpertPrefersConstrained(t *testing.T) {
	rng := rand.New(rand.NewSource(10))
	state := dealGame(t, rng)
	state.Players[0].SkillLevel = domain.SkillExpert
	target := state.Players[1]
	for i := range target.Hand {
		target.Hand[i].IsRevealed = i != 0 && i != 6 && i != 7
	}
	agent := NewAgent(rng, DefaultTuning)
	pos, err := agent.ChooseSlot(state, nil, 1)
	if err != nil {
		t.Fatalf("ChooseSlot() error = %v", err)
	}
	profile := agent.estimator.BuildProfile(state, state.Players[0], target, nil)
	want, _ := profile.MostConstrained()
	if pos != want.Position {
		t.Fatalf("ChooseSlot() = %d, want %d", pos, want.Position)
	}
}

func TestChooseSlotNoHiddenCard(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	state := dealGame(t, rng)
	revealAllBut(state.Players[1], 0)
	if _, err := NewAgent(rng, DefaultTuning).ChooseSlot(state, nil, 1); !errors.Is(err, domain.ErrCardRevealed) {
		t.Fatalf("expected ErrCardRevealed, got %v", err)
	}
}

func TestChooseOwnReveal(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	for _, skill := range []domain.SkillLevel{domain.SkillBeginner, domain.SkillExpert} {
		state := dealGame(t, rng)
		p := state.Players[2]
		p.SkillLevel = skill
		revealSome(rng, p, 5)
		pos, err := NewAgent(rng, DefaultTuning).ChooseOwnReveal(state, 2)
		if err != nil {
			t.Fatalf("ChooseOwnReveal() error = %v", err)
		}
		if p.Hand[pos].IsRevealed {
			t.Fatalf("skill %q chose revealed position %d", skill, pos)
		}
	}
}
