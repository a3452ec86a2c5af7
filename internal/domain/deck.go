package domain

import (
	"fmt"
	"math/rand"
	"sort"
)

// NewDeck returns an ordered 52-card deck with every card face down.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, s := range Suits {
		for r := MinRank; r <= MaxRank; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck using rng.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// SortHand orders a hand by ascending rank. Equal ranks keep their dealt order.
func SortHand(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Rank < cards[j].Rank
	})
}

// Deal splits deck into n sorted hands of HandSize cards.
func Deal(deck []Card, n int) ([][]Card, error) {
	if n*HandSize > len(deck) {
		return nil, fmt.Errorf("cannot deal %d hands from %d cards", n, len(deck))
	}
	hands := make([][]Card, n)
	for i := 0; i < n; i++ {
		hand := append([]Card{}, deck[i*HandSize:(i+1)*HandSize]...)
		SortHand(hand)
		hands[i] = hand
	}
	return hands, nil
}
