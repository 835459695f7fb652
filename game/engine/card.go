package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Suit identifies one of the four card suits
type Suit string

const (
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Hearts   Suit = "hearts"
	Spades   Suit = "spades"
)

// Suits lists the suits in enumeration order. Foundation preference follows this order.
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// Color is derived from a card's suit
type Color string

const (
	Red   Color = "red"
	Black Color = "black"
)

// Color returns the color of the suit
func (s Suit) Color() Color {
	switch s {
	case Hearts, Diamonds:
		return Red
	default:
		return Black
	}
}

// Letter returns the single-letter abbreviation used in card IDs
func (s Suit) Letter() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	}
	return "?"
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	switch s {
	case Clubs, Diamonds, Hearts, Spades:
		return true
	}
	return false
}

// Rank is a card rank from Ace (1) to King (13)
type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// String returns the rank as used in card IDs
func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	return strconv.Itoa(int(r))
}

// Valid reports whether r is between Ace and King
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// CardID is the stable identifier of a card, e.g. "AH", "10C", "QS"
type CardID string

// NewCardID builds the identifier for a suit and rank
func NewCardID(suit Suit, rank Rank) CardID {
	return CardID(rank.String() + suit.Letter())
}

// ParseCardID parses identifiers like "AH", "10c", "TD" or "qs"
func ParseCardID(s string) (Suit, Rank, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 2 {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}

	var suit Suit
	switch s[len(s)-1] {
	case 'C':
		suit = Clubs
	case 'D':
		suit = Diamonds
	case 'H':
		suit = Hearts
	case 'S':
		suit = Spades
	default:
		return "", 0, fmt.Errorf("%w: unknown suit in %q", ErrInvalidCard, s)
	}

	var rank Rank
	switch r := s[:len(s)-1]; r {
	case "A", "1":
		rank = Ace
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "T":
		rank = 10
	default:
		n, err := strconv.Atoi(r)
		if err != nil || !Rank(n).Valid() {
			return "", 0, fmt.Errorf("%w: unknown rank in %q", ErrInvalidCard, s)
		}
		rank = Rank(n)
	}

	return suit, rank, nil
}

// NormalizeCardID parses s and returns its canonical identifier
func NormalizeCardID(s string) (CardID, error) {
	suit, rank, err := ParseCardID(s)
	if err != nil {
		return "", err
	}
	return NewCardID(suit, rank), nil
}

// Placement is a card's location: a pile and a zero-based index within it
type Placement struct {
	Pile     PileID `json:"pile"`
	Position int    `json:"position"`
}

// Card holds an immutable identity and the mutable placement owned by the Deck
type Card struct {
	ID       CardID `json:"id"`
	Suit     Suit   `json:"suit"`
	Rank     Rank   `json:"rank"`
	Pile     PileID `json:"pile"`
	Position int    `json:"position"`
}

// Color returns the card's color
func (c Card) Color() Color {
	return c.Suit.Color()
}

// Placement returns the card's current pile and position
func (c Card) Placement() Placement {
	return Placement{Pile: c.Pile, Position: c.Position}
}

// String returns the card ID
func (c Card) String() string {
	return string(c.ID)
}

// FullDeck returns the 52 card identities in suit-major order
func FullDeck() []CardID {
	ids := make([]CardID, 0, NumCards)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			ids = append(ids, NewCardID(suit, rank))
		}
	}
	return ids
}
