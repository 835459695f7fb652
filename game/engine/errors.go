package engine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCard    = errors.New("invalid card")
	ErrUnknownCard    = errors.New("unknown card")
	ErrUnknownPile    = errors.New("unknown pile")
	ErrDuplicateCard  = errors.New("duplicate card")
	ErrMissingCard    = errors.New("missing card")
	ErrInvalidLayout  = errors.New("invalid layout")
	ErrEmptySequence  = errors.New("move sequence is empty")
	ErrMixedSequence  = errors.New("move sequence must move one contiguous stack between two piles")
	ErrIllegalMove    = errors.New("illegal move")
	ErrStaleMove      = errors.New("stale move")
	ErrInvalidRuleSet = errors.New("invalid rule set")
)

// StaleMoveError reports a move whose recorded source or destination no longer
// matches the deck. It means the caller and the deck have desynchronized; it is
// never returned for a move that merely breaks the rules.
type StaleMoveError struct {
	Move   Move
	Reason string
}

func (e *StaleMoveError) Error() string {
	return fmt.Sprintf("stale move %s %s[%d] -> %s[%d]: %s",
		e.Move.Card, e.Move.FromPile, e.Move.FromPosition, e.Move.ToPile, e.Move.ToPosition, e.Reason)
}

// Is makes errors.Is(err, ErrStaleMove) match
func (e *StaleMoveError) Is(target error) bool {
	return target == ErrStaleMove
}
