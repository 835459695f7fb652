package engine

import (
	"fmt"
	"strings"
)

// PileID identifies a pile: "freecell-<n>", "foundation-<suit>" or "tableau-<n>"
type PileID string

// PileKind is the acceptance category of a pile
type PileKind string

const (
	FreeCellPile   PileKind = "freecell"
	FoundationPile PileKind = "foundation"
	TableauPile    PileKind = "tableau"
)

// FreeCellID returns the ID of the n-th free cell (zero-based)
func FreeCellID(n int) PileID {
	return PileID(fmt.Sprintf("%s-%d", FreeCellPile, n))
}

// FoundationID returns the ID of the foundation for a suit
func FoundationID(suit Suit) PileID {
	return PileID(fmt.Sprintf("%s-%s", FoundationPile, suit))
}

// TableauID returns the ID of the n-th tableau column (zero-based)
func TableauID(n int) PileID {
	return PileID(fmt.Sprintf("%s-%d", TableauPile, n))
}

// NormalizePileID lowercases and trims a caller-supplied pile ID
func NormalizePileID(s string) PileID {
	return PileID(strings.ToLower(strings.TrimSpace(s)))
}

// Pile is an ordered stack of card IDs; the last element is the top card
type Pile struct {
	ID    PileID
	Kind  PileKind
	Suit  Suit // foundations only
	Cards []CardID
}

// Len returns the number of cards in the pile
func (p *Pile) Len() int {
	return len(p.Cards)
}

// IsEmpty reports whether the pile holds no cards
func (p *Pile) IsEmpty() bool {
	return len(p.Cards) == 0
}

// Top returns the top card ID, or false if the pile is empty
func (p *Pile) Top() (CardID, bool) {
	if len(p.Cards) == 0 {
		return "", false
	}
	return p.Cards[len(p.Cards)-1], true
}

func (p *Pile) clone() *Pile {
	cp := *p
	cp.Cards = append([]CardID(nil), p.Cards...)
	return &cp
}
