package internal

import "cardhunter/internal/domain"

// HandProfile summarizes how much a hand would leak if one more card were turned up.
type HandProfile struct {
	Hidden int
	// Exposure maps a hidden position to how many rank values its reveal would
	// remove from the ranges of the other hidden positions.
	Exposure map[int]int
}

// ProfileHand measures, for each hidden card, how far revealing it narrows the
// rank ranges an opponent can deduce for the remaining hidden cards.
func ProfileHand(hand []domain.Card) HandProfile {
	profile := HandProfile{Exposure: make(map[int]int)}
	hidden := hiddenIndices(hand)
	profile.Hidden = len(hidden)

	base := totalWidth(hand, hidden, -1)
	scratch := append([]domain.Card{}, hand...)
	for _, i := range hidden {
		scratch[i].IsRevealed = true
		profile.Exposure[i] = base - totalWidth(scratch, hidden, i)
		scratch[i].IsRevealed = false
	}
	return profile
}

// LeastExposed returns the hidden position whose reveal leaks the least, or -1.
func (p HandProfile) LeastExposed() int {
	best, bestExposure := -1, 0
	for pos, e := range p.Exposure {
		if best == -1 || e < bestExposure || (e == bestExposure && pos < best) {
			best, bestExposure = pos, e
		}
	}
	return best
}

func hiddenIndices(hand []domain.Card) []int {
	var out []int
	for i, c := range hand {
		if !c.IsRevealed {
			out = append(out, i)
		}
	}
	return out
}

func totalWidth(hand []domain.Card, hidden []int, skip int) int {
	total := 0
	for _, i := range hidden {
		if i == skip {
			continue
		}
		lo, hi := domain.MinRank, domain.MaxRank
		for j, c := range hand {
			if !c.IsRevealed {
				continue
			}
			if j < i && c.Rank > lo {
				lo = c.Rank
			}
			if j > i && c.Rank < hi {
				hi = c.Rank
			}
		}
		if hi >= lo {
			total += int(hi-lo) + 1
		}
	}
	return total
}
