package brain

import "cardhunter/internal/domain"

// RankRange is an inclusive rank interval. Min > Max means no rank fits.
type RankRange struct {
	Min domain.Rank
	Max domain.Rank
}

// Valid reports whether at least one rank fits the range.
func (r RankRange) Valid() bool {
	return r.Min <= r.Max
}

// Contains reports whether rank lies inside the range.
func (r RankRange) Contains(rank domain.Rank) bool {
	return rank >= r.Min && rank <= r.Max
}

// Width returns the number of ranks in the range.
func (r RankRange) Width() int {
	if !r.Valid() {
		return 0
	}
	return int(r.Max-r.Min) + 1
}

// PositionRange bounds the rank of the card at position using the face-up cards
// around it. The lower bound is the highest revealed rank before position, the
// upper bound the lowest revealed rank after it.
func PositionRange(hand []domain.Card, position int) RankRange {
	r := RankRange{Min: domain.MinRank, Max: domain.MaxRank}
	for i, c := range hand {
		if !c.IsRevealed || i == position {
			continue
		}
		if i < position && c.Rank > r.Min {
			r.Min = c.Rank
		}
		if i > position && c.Rank < r.Max {
			r.Max = c.Rank
		}
	}
	return r
}
