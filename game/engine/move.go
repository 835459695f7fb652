package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Move describes one card's transition. It is never mutated after creation.
type Move struct {
	Card         CardID `json:"card"`
	FromPile     PileID `json:"from_pile"`
	FromPosition int    `json:"from_position"`
	ToPile       PileID `json:"to_pile"`
	ToPosition   int    `json:"to_position"`
}

// NewMove creates a move record. No validation is performed here.
func NewMove(card CardID, fromPile PileID, fromPos int, toPile PileID, toPos int) Move {
	return Move{
		Card:         card,
		FromPile:     fromPile,
		FromPosition: fromPos,
		ToPile:       toPile,
		ToPosition:   toPos,
	}
}

// Inverse returns the move that puts the card back where it came from
func (m Move) Inverse() Move {
	return NewMove(m.Card, m.ToPile, m.ToPosition, m.FromPile, m.FromPosition)
}

// Change returns the before/after placement of the moved card
func (m Move) Change() PlacementChange {
	return PlacementChange{
		Card: m.Card,
		From: Placement{Pile: m.FromPile, Position: m.FromPosition},
		To:   Placement{Pile: m.ToPile, Position: m.ToPosition},
	}
}

// MoveSequence is one atomic user action: one or more cards from a single stack
// moving together to a single destination pile.
type MoveSequence struct {
	moves []Move
}

// NewMoveSequence wraps a non-empty ordered list of moves. All moves must share
// a source pile and a destination pile, move distinct cards, and cover
// contiguous source and destination positions.
func NewMoveSequence(moves ...Move) (MoveSequence, error) {
	if len(moves) == 0 {
		return MoveSequence{}, ErrEmptySequence
	}

	from, to := moves[0].FromPile, moves[0].ToPile
	seen := make(map[CardID]bool, len(moves))
	fromPositions := make([]int, 0, len(moves))
	toPositions := make([]int, 0, len(moves))
	for _, m := range moves {
		if m.FromPile != from || m.ToPile != to {
			return MoveSequence{}, fmt.Errorf("%w: piles differ", ErrMixedSequence)
		}
		if seen[m.Card] {
			return MoveSequence{}, fmt.Errorf("%w: card %s moves twice", ErrMixedSequence, m.Card)
		}
		seen[m.Card] = true
		fromPositions = append(fromPositions, m.FromPosition)
		toPositions = append(toPositions, m.ToPosition)
	}

	if !contiguous(fromPositions) || !contiguous(toPositions) {
		return MoveSequence{}, fmt.Errorf("%w: positions are not contiguous", ErrMixedSequence)
	}

	return MoveSequence{moves: append([]Move(nil), moves...)}, nil
}

func contiguous(positions []int) bool {
	sorted := append([]int(nil), positions...)
	sort.Ints(sorted)
	for i := range sorted {
		if sorted[i] < 0 || (i > 0 && sorted[i] != sorted[i-1]+1) {
			return false
		}
	}
	return true
}

// Moves returns a copy of the moves in order
func (s MoveSequence) Moves() []Move {
	return append([]Move(nil), s.moves...)
}

// Len returns the number of cards moving
func (s MoveSequence) Len() int {
	return len(s.moves)
}

// IsEmpty reports whether the sequence is the zero value
func (s MoveSequence) IsEmpty() bool {
	return len(s.moves) == 0
}

// Source returns the pile every card leaves
func (s MoveSequence) Source() PileID {
	if len(s.moves) == 0 {
		return ""
	}
	return s.moves[0].FromPile
}

// Destination returns the pile every card lands on
func (s MoveSequence) Destination() PileID {
	if len(s.moves) == 0 {
		return ""
	}
	return s.moves[0].ToPile
}

// Cards returns the moving card IDs in order
func (s MoveSequence) Cards() []CardID {
	ids := make([]CardID, len(s.moves))
	for i, m := range s.moves {
		ids[i] = m.Card
	}
	return ids
}

// Inverse returns the sequence that undoes s: every move swapped, in reverse order
func (s MoveSequence) Inverse() MoveSequence {
	inv := make([]Move, len(s.moves))
	for i, m := range s.moves {
		inv[len(s.moves)-1-i] = m.Inverse()
	}
	return MoveSequence{moves: inv}
}

// Changes returns the per-card before/after placements
func (s MoveSequence) Changes() []PlacementChange {
	changes := make([]PlacementChange, len(s.moves))
	for i, m := range s.moves {
		changes[i] = m.Change()
	}
	return changes
}

// String renders the sequence as "5H,4S tableau-1 -> tableau-3"
func (s MoveSequence) String() string {
	if len(s.moves) == 0 {
		return "<empty>"
	}
	ids := make([]string, len(s.moves))
	for i, m := range s.moves {
		ids[i] = string(m.Card)
	}
	return fmt.Sprintf("%s %s -> %s", strings.Join(ids, ","), s.Source(), s.Destination())
}

type moveSequenceJSON struct {
	Moves []Move `json:"moves"`
}

// MarshalJSON encodes the sequence as {"moves": [...]}
func (s MoveSequence) MarshalJSON() ([]byte, error) {
	moves := s.moves
	if moves == nil {
		moves = []Move{}
	}
	return json.Marshal(moveSequenceJSON{Moves: moves})
}

// UnmarshalJSON decodes and validates a sequence. An empty list decodes to the zero value.
func (s *MoveSequence) UnmarshalJSON(data []byte) error {
	var j moveSequenceJSON
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	if len(j.Moves) == 0 {
		*s = MoveSequence{}
		return nil
	}
	seq, err := NewMoveSequence(j.Moves...)
	if err != nil {
		return err
	}
	*s = seq
	return nil
}
