package engine

import (
	"fmt"
	"sort"
)

// Deck owns all 52 cards and every pile. It is the only writer of card placement.
type Deck struct {
	rules RuleSet
	cards map[CardID]*Card
	piles map[PileID]*Pile
	order []PileID
}

func newEmptyDeck(rules RuleSet) *Deck {
	d := &Deck{
		rules: rules,
		cards: make(map[CardID]*Card, NumCards),
		piles: make(map[PileID]*Pile, rules.FreeCells+NumFoundations+rules.TableauColumns),
	}

	for i := 0; i < rules.FreeCells; i++ {
		d.addPile(&Pile{ID: FreeCellID(i), Kind: FreeCellPile})
	}
	for _, suit := range Suits {
		d.addPile(&Pile{ID: FoundationID(suit), Kind: FoundationPile, Suit: suit})
	}
	for i := 0; i < rules.TableauColumns; i++ {
		d.addPile(&Pile{ID: TableauID(i), Kind: TableauPile})
	}

	return d
}

func (d *Deck) addPile(p *Pile) {
	d.piles[p.ID] = p
	d.order = append(d.order, p.ID)
}

// NewDeckFromPiles builds a deck from an explicit layout. Every one of the 52
// cards must appear exactly once and every pile must satisfy its invariants.
// Piles not named in the layout start empty.
func NewDeckFromPiles(rules RuleSet, layout map[PileID][]CardID) (*Deck, error) {
	if err := ValidateRuleSet(&rules); err != nil {
		return nil, err
	}

	d := newEmptyDeck(rules)
	for pileID, ids := range layout {
		pile, ok := d.piles[pileID]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPile, pileID)
		}
		for _, id := range ids {
			suit, rank, err := ParseCardID(string(id))
			if err != nil {
				return nil, err
			}
			canonical := NewCardID(suit, rank)
			if _, dup := d.cards[canonical]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateCard, canonical)
			}
			d.cards[canonical] = &Card{
				ID:       canonical,
				Suit:     suit,
				Rank:     rank,
				Pile:     pileID,
				Position: len(pile.Cards),
			}
			pile.Cards = append(pile.Cards, canonical)
		}
	}

	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Rules returns the rule set the deck was laid out with
func (d *Deck) Rules() RuleSet {
	return d.rules
}

// Card returns a copy of the card record
func (d *Deck) Card(id CardID) (Card, bool) {
	c, ok := d.cards[id]
	if !ok {
		return Card{}, false
	}
	return *c, true
}

// Pile returns a copy of the pile
func (d *Deck) Pile(id PileID) (Pile, bool) {
	p, ok := d.piles[id]
	if !ok {
		return Pile{}, false
	}
	return *p.clone(), true
}

// CardsInPile returns the live contents of a pile, bottom first
func (d *Deck) CardsInPile(id PileID) []Card {
	p, ok := d.piles[id]
	if !ok {
		return nil
	}
	cards := make([]Card, len(p.Cards))
	for i, cid := range p.Cards {
		cards[i] = *d.cards[cid]
	}
	return cards
}

// PileIDs returns every pile ID: free cells, foundations, then tableau columns
func (d *Deck) PileIDs() []PileID {
	return append([]PileID(nil), d.order...)
}

// FreeCellIDs returns the free cell IDs in order
func (d *Deck) FreeCellIDs() []PileID {
	return d.idsOfKind(FreeCellPile)
}

// FoundationIDs returns the foundation IDs in suit enumeration order
func (d *Deck) FoundationIDs() []PileID {
	return d.idsOfKind(FoundationPile)
}

// TableauIDs returns the tableau column IDs in order
func (d *Deck) TableauIDs() []PileID {
	return d.idsOfKind(TableauPile)
}

func (d *Deck) idsOfKind(kind PileKind) []PileID {
	var ids []PileID
	for _, id := range d.order {
		if d.piles[id].Kind == kind {
			ids = append(ids, id)
		}
	}
	return ids
}

// Placements returns every card's current placement
func (d *Deck) Placements() map[CardID]Placement {
	out := make(map[CardID]Placement, len(d.cards))
	for id, c := range d.cards {
		out[id] = c.Placement()
	}
	return out
}

// EmptyFreeCells counts free cells holding no card
func (d *Deck) EmptyFreeCells() int {
	n := 0
	for _, id := range d.order {
		if p := d.piles[id]; p.Kind == FreeCellPile && p.IsEmpty() {
			n++
		}
	}
	return n
}

// EmptyTableauColumns counts empty tableau columns, not counting exclude
func (d *Deck) EmptyTableauColumns(exclude PileID) int {
	n := 0
	for _, id := range d.order {
		if p := d.piles[id]; p.Kind == TableauPile && p.IsEmpty() && id != exclude {
			n++
		}
	}
	return n
}

// CardsFrom returns the card and every card above it in its pile
func (d *Deck) CardsFrom(id CardID) []CardID {
	c, ok := d.cards[id]
	if !ok {
		return nil
	}
	p := d.piles[c.Pile]
	return append([]CardID(nil), p.Cards[c.Position:]...)
}

// Clone returns an independent copy of the deck
func (d *Deck) Clone() *Deck {
	cp := &Deck{
		rules: d.rules,
		cards: make(map[CardID]*Card, len(d.cards)),
		piles: make(map[PileID]*Pile, len(d.piles)),
		order: append([]PileID(nil), d.order...),
	}
	for id, c := range d.cards {
		card := *c
		cp.cards[id] = &card
	}
	for id, p := range d.piles {
		cp.piles[id] = p.clone()
	}
	return cp
}

// ExecuteMoveSequence applies seq atomically. Every move's source card must be
// where the move says it is and every destination position must be a valid
// insertion point; otherwise a *StaleMoveError is returned and the deck is
// left untouched. Cards are lifted from their sources first, then inserted in
// ascending destination position.
func (d *Deck) ExecuteMoveSequence(seq MoveSequence) error {
	if seq.IsEmpty() {
		return ErrEmptySequence
	}

	staged := make(map[PileID][]CardID)
	stage := func(id PileID) bool {
		if _, ok := staged[id]; ok {
			return true
		}
		p, ok := d.piles[id]
		if !ok {
			return false
		}
		staged[id] = append([]CardID(nil), p.Cards...)
		return true
	}

	lifts := make(map[PileID][]int)
	for _, m := range seq.moves {
		if _, ok := d.cards[m.Card]; !ok {
			return &StaleMoveError{Move: m, Reason: "unknown card"}
		}
		if !stage(m.FromPile) {
			return &StaleMoveError{Move: m, Reason: "unknown source pile"}
		}
		if !stage(m.ToPile) {
			return &StaleMoveError{Move: m, Reason: "unknown destination pile"}
		}
		src := d.piles[m.FromPile].Cards
		if m.FromPosition < 0 || m.FromPosition >= len(src) || src[m.FromPosition] != m.Card {
			return &StaleMoveError{Move: m, Reason: "card is not at its recorded source"}
		}
		lifts[m.FromPile] = append(lifts[m.FromPile], m.FromPosition)
	}

	for pileID, positions := range lifts {
		sort.Sort(sort.Reverse(sort.IntSlice(positions)))
		cards := staged[pileID]
		for _, pos := range positions {
			cards = append(cards[:pos], cards[pos+1:]...)
		}
		staged[pileID] = cards
	}

	inserts := seq.Moves()
	sort.SliceStable(inserts, func(i, j int) bool {
		if inserts[i].ToPile != inserts[j].ToPile {
			return inserts[i].ToPile < inserts[j].ToPile
		}
		return inserts[i].ToPosition < inserts[j].ToPosition
	})
	for _, m := range inserts {
		cards := staged[m.ToPile]
		if m.ToPosition < 0 || m.ToPosition > len(cards) {
			return &StaleMoveError{Move: m, Reason: "destination position out of range"}
		}
		cards = append(cards, "")
		copy(cards[m.ToPosition+1:], cards[m.ToPosition:])
		cards[m.ToPosition] = m.Card
		staged[m.ToPile] = cards
	}

	// Commit
	for pileID, cards := range staged {
		d.piles[pileID].Cards = cards
		for i, id := range cards {
			c := d.cards[id]
			c.Pile = pileID
			c.Position = i
		}
	}
	return nil
}

// Invert returns the sequence that restores every card moved by seq
func (d *Deck) Invert(seq MoveSequence) MoveSequence {
	return seq.Inverse()
}

// IsWon reports whether every foundation holds all 13 cards of its suit
func (d *Deck) IsWon() bool {
	for _, id := range d.order {
		if p := d.piles[id]; p.Kind == FoundationPile && len(p.Cards) != NumRanks {
			return false
		}
	}
	return true
}

// Validate checks conservation of the 52 cards, the card placement index and
// the free cell and foundation invariants
func (d *Deck) Validate() error {
	seen := make(map[CardID]bool, NumCards)
	for _, pileID := range d.order {
		p := d.piles[pileID]
		for i, id := range p.Cards {
			c, ok := d.cards[id]
			if !ok {
				return fmt.Errorf("%w: %s in %s", ErrUnknownCard, id, pileID)
			}
			if seen[id] {
				return fmt.Errorf("%w: %s", ErrDuplicateCard, id)
			}
			seen[id] = true
			if c.Pile != pileID || c.Position != i {
				return fmt.Errorf("%w: %s indexed at %s[%d] but found in %s[%d]",
					ErrInvalidLayout, id, c.Pile, c.Position, pileID, i)
			}
		}

		switch p.Kind {
		case FreeCellPile:
			if len(p.Cards) > 1 {
				return fmt.Errorf("%w: free cell %s holds %d cards", ErrInvalidLayout, pileID, len(p.Cards))
			}
		case FoundationPile:
			for i, id := range p.Cards {
				c := d.cards[id]
				if c.Suit != p.Suit || c.Rank != Rank(i+1) {
					return fmt.Errorf("%w: foundation %s out of order at %s", ErrInvalidLayout, pileID, id)
				}
			}
		}
	}

	for _, id := range FullDeck() {
		if !seen[id] {
			return fmt.Errorf("%w: %s", ErrMissingCard, id)
		}
	}
	if len(d.cards) != NumCards {
		return fmt.Errorf("%w: deck has %d cards", ErrInvalidLayout, len(d.cards))
	}
	return nil
}
