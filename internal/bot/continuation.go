package bot

import "cardhunter/internal/domain"

// continuationTarget is the player the guesser attacked last, or the next
// active opponent when the guesser has no log entry yet. It returns nil when
// no opponent is left.
func continuationTarget(state *domain.GameState, player *domain.Player) *domain.Player {
	for i := len(state.Logs) - 1; i >= 0; i-- {
		if state.Logs[i].GuessingPlayer != player.ID {
			continue
		}
		if target, err := state.Player(state.Logs[i].TargetPlayer); err == nil {
			return target
		}
		break
	}
	idx := state.NextActiveIndex(state.PlayerIndex(player.ID))
	if idx < 0 {
		return nil
	}
	return state.Players[idx]
}

// ContinuationProbability returns the chance that playerID keeps guessing
// after a correct guess.
func (a *Agent) ContinuationProbability(state *domain.GameState, playerID int) (float64, error) {
	player, err := state.Player(playerID)
	if err != nil {
		return 0, err
	}
	t := a.Tuning.Continuation

	rate, ok := t.BaseRate[player.Personality]
	if !ok {
		rate = t.BaseRate[domain.PersonalityBalanced]
	}
	if target := continuationTarget(state, player); target != nil && target.HiddenCount() <= t.ThreatHidden {
		rate *= t.ThreatBoost
	}
	if player.HiddenCount() <= t.ThreatHidden {
		rate *= t.ThreatBoost
	} else {
		rate *= t.SafeDampening
	}

	if rate < 0 {
		rate = 0
	}
	if limit := min(t.Cap, MaxContinuationProbability); rate > limit {
		rate = limit
	}
	return rate, nil
}

// DecideContinuation draws whether playerID keeps guessing after a correct guess.
func (a *Agent) DecideContinuation(state *domain.GameState, playerID int) (bool, error) {
	p, err := a.ContinuationProbability(state, playerID)
	if err != nil {
		return false, err
	}
	return a.rng.Float64() < p, nil
}
