package bot

import (
	"math/rand"
	"testing"

	"cardhunter/internal/domain"
)

func dealGame(t *testing.T, rng *rand.Rand) *domain.GameState {
	t.Helper()
	hands, err := domain.Deal(domain.ShuffleDeck(domain.NewDeck(), rng), domain.PlayerCount)
	if err != nil {
		t.Fatalf("Deal() error = %v", err)
	}
	state := &domain.GameState{Status: domain.StatusPlaying}
	for i, h := range hands {
		state.Players = append(state.Players, &domain.Player{
			ID:          i,
			Name:        "p",
			Hand:        h,
			IsComputer:  true,
			SkillLevel:  domain.SkillIntermediate,
			Personality: domain.PersonalityBalanced,
		})
	}
	return state
}

func revealAllBut(p *domain.Player, keep int) {
	for i := range p.Hand {
		p.Hand[i].IsRevealed = i >= keep
	}
}

func revealSome(rng *rand.Rand, p *domain.Player, n int) {
	for _, i := range rng.Perm(len(p.Hand))[:n] {
		p.Hand[i].IsRevealed = true
	}
}

func pickHidden(rng *rand.Rand, p *domain.Player) int {
	hidden := p.HiddenPositions()
	return hidden[rng.Intn(len(hidden))]
}
