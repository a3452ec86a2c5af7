package domain

const (
	// PlayerCount is the fixed number of seats.
	PlayerCount = 4
	// HandSize is the number of cards dealt to each player.
	HandSize = 13
	// DeckSize is the number of distinct cards.
	DeckSize = 52
)
