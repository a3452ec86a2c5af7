package internal

import "cardhunter/internal/domain"

// GamePhase describes the current strategic stage of a game.
type GamePhase int

const (
	// PhaseOpening indicates no card has been revealed yet.
	PhaseOpening GamePhase = iota
	// PhaseMid indicates no one has reached the endgame threshold yet.
	PhaseMid
	// PhaseEnd indicates at least one player is out or any active player has <= EndgameHidden cards left.
	PhaseEnd
)

// EndgameHidden is the hidden-card count at which a player is close to elimination.
const EndgameHidden = 3

func (p GamePhase) String() string {
	switch p {
	case PhaseOpening:
		return "opening"
	case PhaseEnd:
		return "end"
	}
	return "mid"
}

// DetectPhase infers the phase from how many cards each player still hides.
func DetectPhase(state *domain.GameState) GamePhase {
	if state == nil || len(state.Players) == 0 {
		return PhaseMid
	}

	opening := true
	end := false
	for _, p := range state.Players {
		if p == nil {
			continue
		}
		hidden := p.HiddenCount()
		if hidden != len(p.Hand) {
			opening = false
		}
		if hidden <= EndgameHidden {
			end = true
		}
	}

	if opening {
		return PhaseOpening
	}
	if end {
		return PhaseEnd
	}
	return PhaseMid
}
