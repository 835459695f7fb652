package engine

// FoundationProgress returns the number of cards played to foundations
func FoundationProgress(d *Deck) int {
	count := 0
	for _, id := range d.FoundationIDs() {
		count += len(d.piles[id].Cards)
	}
	return count
}

// ExposedCards returns the top card of every free cell and tableau column, in pile order
func ExposedCards(d *Deck) []CardID {
	var exposed []CardID
	for _, id := range d.order {
		p := d.piles[id]
		if p.Kind == FoundationPile {
			continue
		}
		if top, ok := p.Top(); ok {
			exposed = append(exposed, top)
		}
	}
	return exposed
}

// RunLength returns the length of the longest movable run at the top of a pile
func RunLength(d *Deck, pile PileID) int {
	p, ok := d.piles[pile]
	if !ok || p.IsEmpty() {
		return 0
	}
	if p.Kind != TableauPile {
		return 1
	}
	n := 1
	for i := len(p.Cards) - 1; i > 0; i-- {
		if !isRun(d, p.Cards[i-1:i+1]) {
			break
		}
		n++
	}
	return n
}

// BuriedAces returns, for each ace still in a tableau column, how many cards sit above it
func BuriedAces(d *Deck) map[CardID]int {
	buried := make(map[CardID]int)
	for _, suit := range Suits {
		c := d.cards[NewCardID(suit, Ace)]
		if d.piles[c.Pile].Kind != TableauPile {
			continue
		}
		buried[c.ID] = len(d.piles[c.Pile].Cards) - 1 - c.Position
	}
	return buried
}

// AnalyzePosition summarizes how constrained the current position is
func AnalyzePosition(d *Deck) string {
	if d.IsWon() {
		return "WON: All foundations complete"
	}

	moves := len(LegalMoves(d))
	switch {
	case moves == 0:
		return "STUCK: No legal moves remain"
	case d.EmptyFreeCells() == 0 && d.EmptyTableauColumns("") == 0:
		return "TIGHT: No free cells or empty columns"
	case MaxMovable(d, "") <= 2:
		return "CAUTION: Little room to move runs"
	}
	return "OPEN: Plenty of room"
}
