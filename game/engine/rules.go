package engine

// Rule functions are pure: they read a deck and never mutate it.

// isRun reports whether ids form a strictly descending, alternating-color sequence
func isRun(d *Deck, ids []CardID) bool {
	for i := 1; i < len(ids); i++ {
		prev, next := d.cards[ids[i-1]], d.cards[ids[i]]
		if next.Rank != prev.Rank-1 || next.Color() == prev.Color() {
			return false
		}
	}
	return true
}

// MovableRun returns the run headed by card: the card and every card above it
// in its pile. ok is false when those cards are not a descending,
// alternating-color run. A free cell card is always a run of one; in a
// foundation only the top card qualifies.
func MovableRun(d *Deck, card CardID) ([]CardID, bool) {
	run := d.CardsFrom(card)
	if len(run) == 0 || !isRun(d, run) {
		return nil, false
	}
	return run, true
}

// MaxMovable returns how many cards can move as a unit into dest:
// (1 + empty free cells) * 2^(empty tableau columns). An empty destination
// column is not counted, since the move consumes it. Pass "" for no destination.
func MaxMovable(d *Deck, dest PileID) int {
	return (1 + d.EmptyFreeCells()) << d.EmptyTableauColumns(dest)
}

// CanMoveCard reports whether card can start some move: it heads a movable run
// that fits within the current capacity
func CanMoveCard(d *Deck, card CardID) bool {
	run, ok := MovableRun(d, card)
	if !ok {
		return false
	}
	return len(run) <= MaxMovable(d, "")
}

// canAccept applies the destination pile's acceptance rule to a run
func canAccept(d *Deck, run []CardID, dest PileID) bool {
	pile, ok := d.piles[dest]
	if !ok || len(run) == 0 {
		return false
	}
	head := d.cards[run[0]]
	if head.Pile == dest {
		return false
	}

	switch pile.Kind {
	case FreeCellPile:
		return len(run) == 1 && pile.IsEmpty()

	case FoundationPile:
		if len(run) != 1 || head.Suit != pile.Suit {
			return false
		}
		top, ok := pile.Top()
		if !ok {
			return head.Rank == Ace
		}
		return head.Rank == d.cards[top].Rank+1

	case TableauPile:
		if len(run) > MaxMovable(d, dest) {
			return false
		}
		top, ok := pile.Top()
		if !ok {
			return true
		}
		topCard := d.cards[top]
		return head.Rank == topCard.Rank-1 && head.Color() != topCard.Color()
	}

	return false
}

// FilterValidDropPiles returns the candidates that accept the run headed by
// card, preserving input order. The result is empty if card heads no run.
func FilterValidDropPiles(d *Deck, card CardID, candidates []PileID) []PileID {
	valid := []PileID{}
	run, ok := MovableRun(d, card)
	if !ok {
		return valid
	}
	for _, dest := range candidates {
		if canAccept(d, run, dest) {
			valid = append(valid, dest)
		}
	}
	return valid
}

// CalculateNewPilePosition returns where each card will land in dest, one
// placement per input card in the same order, starting at the pile's current length
func CalculateNewPilePosition(d *Deck, cards []CardID, dest PileID) []Placement {
	pile, ok := d.piles[dest]
	if !ok {
		return nil
	}
	base := len(pile.Cards)
	placements := make([]Placement, len(cards))
	for i := range cards {
		placements[i] = Placement{Pile: dest, Position: base + i}
	}
	return placements
}

// PlanMove validates moving the run headed by card onto dest and packages the
// result as a sequence. ok is false if the move is not legal.
func PlanMove(d *Deck, card CardID, dest PileID) (MoveSequence, bool) {
	if len(FilterValidDropPiles(d, card, []PileID{dest})) == 0 {
		return MoveSequence{}, false
	}
	run, _ := MovableRun(d, card)
	placements := CalculateNewPilePosition(d, run, dest)

	moves := make([]Move, len(run))
	for i, id := range run {
		c := d.cards[id]
		moves[i] = NewMove(id, c.Pile, c.Position, placements[i].Pile, placements[i].Position)
	}

	seq, err := NewMoveSequence(moves...)
	if err != nil {
		return MoveSequence{}, false
	}
	return seq, true
}

// SnapTarget returns the first foundation, in suit order, that accepts card as
// a single-card move
func SnapTarget(d *Deck, card CardID) (PileID, bool) {
	if len(d.CardsFrom(card)) != 1 {
		return "", false
	}
	targets := FilterValidDropPiles(d, card, d.FoundationIDs())
	if len(targets) == 0 {
		return "", false
	}
	return targets[0], true
}

// LegalMoves enumerates every legal single action from the current position,
// in pile order then destination order
func LegalMoves(d *Deck) []MoveSequence {
	var moves []MoveSequence
	for _, src := range d.order {
		for _, id := range d.piles[src].Cards {
			if !CanMoveCard(d, id) {
				continue
			}
			for _, dest := range d.order {
				if seq, ok := PlanMove(d, id, dest); ok {
					moves = append(moves, seq)
				}
			}
		}
	}
	return moves
}
