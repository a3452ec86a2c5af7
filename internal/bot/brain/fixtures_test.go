package brain

import (
	"math/rand"
	"testing"

	"cardhunter/internal/domain"
)

func dealState(t *testing.T, rng *rand.Rand) *domain.GameState {
	t.Helper()
	hands, err := domain.Deal(domain.ShuffleDeck(domain.NewDeck(), rng), domain.PlayerCount)
	if err != nil {
		t.Fatalf("Deal() error = %v", err)
	}
	state := &domain.GameState{Status: domain.StatusPlaying}
	for i, h := range hands {
		state.Players = append(state.Players, &domain.Player{
			ID:         i,
			Hand:       h,
			IsComputer: true,
			SkillLevel: domain.SkillIntermediate,
		})
	}
	return state
}

func revealRandom(rng *rand.Rand, p *domain.Player, n int) {
	for _, i := range rng.Perm(len(p.Hand))[:n] {
		p.Hand[i].IsRevealed = true
	}
}
