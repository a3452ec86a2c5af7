package domain

import (
	"errors"
	"fmt"
)

var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPositionOutOfRange = errors.New("card position out of range")
	ErrCardRevealed       = errors.New("card already revealed")
	ErrHandOrder          = errors.New("hand not ordered by rank")
	ErrDuplicateCard      = errors.New("card dealt more than once")
	ErrEliminationOrder   = errors.New("elimination order inconsistent")
)

// HiddenCount returns how many cards in the hand are still face down.
func HiddenCount(hand []Card) int {
	n := 0
	for _, c := range hand {
		if !c.IsRevealed {
			n++
		}
	}
	return n
}

// HiddenCount returns how many of the player's cards are still face down.
func (p *Player) HiddenCount() int {
	return HiddenCount(p.Hand)
}

// IsEliminated reports whether every card of the player is face up.
func (p *Player) IsEliminated() bool {
	return p.HiddenCount() == 0
}

// HiddenPositions returns the indices of face-down cards in hand order.
func (p *Player) HiddenPositions() []int {
	var out []int
	for i, c := range p.Hand {
		if !c.IsRevealed {
			out = append(out, i)
		}
	}
	return out
}

// CardAt returns the card at position, failing when the position does not exist.
func (p *Player) CardAt(position int) (Card, error) {
	if position < 0 || position >= len(p.Hand) {
		return Card{}, fmt.Errorf("player %d position %d: %w", p.ID, position, ErrPositionOutOfRange)
	}
	return p.Hand[position], nil
}

// Player finds a player by id.
func (g *GameState) Player(id int) (*Player, error) {
	for _, p := range g.Players {
		if p != nil && p.ID == id {
			return p, nil
		}
	}
	return nil, fmt.Errorf("player %d: %w", id, ErrPlayerNotFound)
}

// PlayerIndex returns the seat index of a player id, or -1.
func (g *GameState) PlayerIndex(id int) int {
	for i, p := range g.Players {
		if p != nil && p.ID == id {
			return i
		}
	}
	return -1
}

// CurrentPlayer returns the player whose turn it is.
func (g *GameState) CurrentPlayer() (*Player, error) {
	if g.CurrentPlayerIndex < 0 || g.CurrentPlayerIndex >= len(g.Players) {
		return nil, fmt.Errorf("current index %d: %w", g.CurrentPlayerIndex, ErrPlayerNotFound)
	}
	return g.Players[g.CurrentPlayerIndex], nil
}

// NextActiveIndex returns the first seat after from, wrapping, whose player
// still has hidden cards. It returns -1 when no other seat qualifies.
func (g *GameState) NextActiveIndex(from int) int {
	n := len(g.Players)
	for step := 1; step < n; step++ {
		i := (from + step) % n
		if !g.Players[i].IsEliminated() {
			return i
		}
	}
	return -1
}

// ActiveCount returns how many players still hold hidden cards.
func (g *GameState) ActiveCount() int {
	n := 0
	for _, p := range g.Players {
		if !p.IsEliminated() {
			n++
		}
	}
	return n
}

// RevealedFaces returns every face-up card across all hands.
func (g *GameState) RevealedFaces() []Face {
	var out []Face
	for _, p := range g.Players {
		for _, c := range p.Hand {
			if c.IsRevealed {
				out = append(out, c.Face())
			}
		}
	}
	return out
}

// Snapshot returns a deep copy that shares no slices or pointers with g.
func (g *GameState) Snapshot() *GameState {
	out := &GameState{
		CurrentPlayerIndex: g.CurrentPlayerIndex,
		Status:             g.Status,
		Pending:            g.Pending,
		Players:            make([]*Player, len(g.Players)),
		Logs:               make([]GuessLog, len(g.Logs)),
		EliminationOrder:   append([]int{}, g.EliminationOrder...),
	}
	if g.Winner != nil {
		w := *g.Winner
		out.Winner = &w
	}
	for i, p := range g.Players {
		cp := *p
		cp.Hand = append([]Card{}, p.Hand...)
		out.Players[i] = &cp
	}
	for i, l := range g.Logs {
		if l.WillContinue != nil {
			v := *l.WillContinue
			l.WillContinue = &v
		}
		out.Logs[i] = l
	}
	return out
}

// ValidateOrdering checks that ranks never decrease along the hand.
func ValidateOrdering(hand []Card) error {
	for i := 1; i < len(hand); i++ {
		if hand[i].Rank < hand[i-1].Rank {
			return fmt.Errorf("position %d rank %s after %s: %w", i, hand[i].Rank, hand[i-1].Rank, ErrHandOrder)
		}
	}
	return nil
}

// ValidateUniqueness checks that no suit/rank pair appears twice across all hands.
func ValidateUniqueness(g *GameState) error {
	seen := make(map[Face]int, DeckSize)
	for _, p := range g.Players {
		for _, c := range p.Hand {
			if owner, ok := seen[c.Face()]; ok {
				return fmt.Errorf("%s held by players %d and %d: %w", c.Face(), owner, p.ID, ErrDuplicateCard)
			}
			seen[c.Face()] = p.ID
		}
	}
	return nil
}

// ValidateEliminationOrder checks that every eliminated player appears once and
// that the winner never appears.
func ValidateEliminationOrder(g *GameState) error {
	seen := make(map[int]bool, len(g.EliminationOrder))
	for _, id := range g.EliminationOrder {
		if seen[id] {
			return fmt.Errorf("player %d listed twice: %w", id, ErrEliminationOrder)
		}
		seen[id] = true
		if g.Winner != nil && *g.Winner == id {
			return fmt.Errorf("winner %d listed as eliminated: %w", id, ErrEliminationOrder)
		}
	}
	for _, p := range g.Players {
		if p.IsEliminated() && !seen[p.ID] {
			return fmt.Errorf("player %d eliminated but unlisted: %w", p.ID, ErrEliminationOrder)
		}
	}
	return nil
}

// Validate runs every state invariant check.
func Validate(g *GameState) error {
	for _, p := range g.Players {
		if err := ValidateOrdering(p.Hand); err != nil {
			return fmt.Errorf("player %d: %w", p.ID, err)
		}
	}
	if err := ValidateUniqueness(g); err != nil {
		return err
	}
	return ValidateEliminationOrder(g)
}
