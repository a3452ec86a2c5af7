package domain

import (
	"strconv"
	"time"
)

// Status represents the lifecycle stage of a Card Hunter game.
type Status string

const (
	// StatusWaiting is the pre-deal state.
	StatusWaiting Status = "waiting"
	// StatusPlaying is the active state where guesses are made.
	StatusPlaying Status = "playing"
	// StatusFinished is the state after only one player keeps hidden cards.
	StatusFinished Status = "finished"
)

// Suit is one of the four card suits.
type Suit string

const (
	SuitHearts   Suit = "hearts"
	SuitDiamonds Suit = "diamonds"
	SuitClubs    Suit = "clubs"
	SuitSpades   Suit = "spades"
)

// Suits lists every suit in deck order.
var Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	switch s {
	case SuitHearts, SuitDiamonds, SuitClubs, SuitSpades:
		return true
	}
	return false
}

// Rank is a card rank from 1 (ace) to 13 (king).
type Rank int

const (
	MinRank Rank = 1
	MaxRank Rank = 13
)

// Valid reports whether r lies in [MinRank, MaxRank].
func (r Rank) Valid() bool {
	return r >= MinRank && r <= MaxRank
}

func (r Rank) String() string {
	switch r {
	case 1:
		return "A"
	case 11:
		return "J"
	case 12:
		return "Q"
	case 13:
		return "K"
	}
	return strconv.Itoa(int(r))
}

// Face identifies a card by suit and rank, ignoring visibility.
type Face struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

func (f Face) String() string {
	return f.Rank.String() + " of " + string(f.Suit)
}

// Card is a single playing card in a player's hand.
type Card struct {
	Suit       Suit `json:"suit"`
	Rank       Rank `json:"rank"`
	IsRevealed bool `json:"is_revealed"`
}

// Face returns the suit/rank identity of the card.
func (c Card) Face() Face {
	return Face{Suit: c.Suit, Rank: c.Rank}
}

// SkillLevel controls how sharply a computer player converts its estimates into guesses.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillExpert       SkillLevel = "expert"
)

// Personality controls how willing a computer player is to keep guessing.
type Personality string

const (
	PersonalityAggressive Personality = "aggressive"
	PersonalityBalanced   Personality = "balanced"
	PersonalityCautious   Personality = "cautious"
)

// Player holds state for a participant. Humans carry no skill or personality.
type Player struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Hand        []Card      `json:"hand"`
	IsComputer  bool        `json:"is_computer"`
	SkillLevel  SkillLevel  `json:"skill_level,omitempty"`
	Personality Personality `json:"personality,omitempty"`
}

// GuessLog records one guess. Entries are append-only; only WillContinue is
// filled in after the fact, once a correct guesser decides.
type GuessLog struct {
	GuessingPlayer int       `json:"guessing_player"`
	TargetPlayer   int       `json:"target_player"`
	Position       int       `json:"card_position_index"`
	GuessedSuit    Suit      `json:"guessed_suit"`
	GuessedRank    Rank      `json:"guessed_rank"`
	WasCorrect     bool      `json:"was_correct"`
	Timestamp      time.Time `json:"timestamp"`
	WillContinue   *bool     `json:"will_continue,omitempty"`
}

// PendingAction is what the current player owes before the turn can move on.
type PendingAction string

const (
	// PendingGuess means the current player must guess.
	PendingGuess PendingAction = ""
	// PendingContinuation follows a correct guess: keep guessing or pass.
	PendingContinuation PendingAction = "continuation"
	// PendingOwnReveal follows a wrong guess: turn up one of the guesser's cards.
	PendingOwnReveal PendingAction = "own_reveal"
)

// GameState holds authoritative state for one game.
type GameState struct {
	Players            []*Player     `json:"players"`
	CurrentPlayerIndex int           `json:"current_player_index"`
	Status             Status        `json:"status"`
	Winner             *int          `json:"winner,omitempty"`
	Logs               []GuessLog    `json:"logs"`
	EliminationOrder   []int         `json:"elimination_order"`
	Pending            PendingAction `json:"pending,omitempty"`
}
