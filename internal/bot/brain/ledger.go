package brain

import "cardhunter/internal/domain"

// SlotKey identifies one card slot of one player.
type SlotKey struct {
	TargetID int
	Position int
}

// Entry is a single recorded guess against a slot.
type Entry struct {
	Position   int         `json:"card_position_index"`
	Suit       domain.Suit `json:"suit"`
	Rank       domain.Rank `json:"rank"`
	WasCorrect bool        `json:"was_correct"`
}

// Face returns the guessed suit/rank.
func (e Entry) Face() domain.Face {
	return domain.Face{Suit: e.Suit, Rank: e.Rank}
}

// GuessHistory stores every guess made during one game session, keyed by the
// targeted slot. It is not safe for concurrent use.
type GuessHistory struct {
	slots map[SlotKey][]Entry
	total int
}

// NewGuessHistory initializes an empty ledger.
func NewGuessHistory() *GuessHistory {
	return &GuessHistory{slots: make(map[SlotKey][]Entry)}
}

// Reset clears the ledger for a new game.
func (h *GuessHistory) Reset() {
	h.slots = make(map[SlotKey][]Entry)
	h.total = 0
}

// Record appends a guess outcome for the given slot.
func (h *GuessHistory) Record(targetID, position int, face domain.Face, wasCorrect bool) {
	if h.slots == nil {
		h.slots = make(map[SlotKey][]Entry)
	}
	key := SlotKey{TargetID: targetID, Position: position}
	h.slots[key] = append(h.slots[key], Entry{
		Position:   position,
		Suit:       face.Suit,
		Rank:       face.Rank,
		WasCorrect: wasCorrect,
	})
	h.total++
}

// Entries returns a copy of every entry recorded against the slot.
func (h *GuessHistory) Entries(targetID, position int) []Entry {
	if h == nil {
		return nil
	}
	return append([]Entry(nil), h.slots[SlotKey{TargetID: targetID, Position: position}]...)
}

// WrongGuesses returns the faces already ruled out for the slot.
func (h *GuessHistory) WrongGuesses(targetID, position int) []domain.Face {
	if h == nil {
		return nil
	}
	var out []domain.Face
	for _, e := range h.slots[SlotKey{TargetID: targetID, Position: position}] {
		if !e.WasCorrect {
			out = append(out, e.Face())
		}
	}
	return out
}

// Len returns the number of recorded guesses.
func (h *GuessHistory) Len() int {
	if h == nil {
		return 0
	}
	return h.total
}
