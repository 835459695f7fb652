package engine

const (
	NumCards       = 52
	NumSuits       = 4
	NumRanks       = 13
	NumFoundations = NumSuits

	// Standard Freecell layout
	DefaultFreeCells      = 4
	DefaultTableauColumns = 8

	// Validation constants for rule-set variants
	MinFreeCells      = 0
	MaxFreeCells      = 8
	MinTableauColumns = 4
	MaxTableauColumns = 13

	MaxBulkMoves        = 50
	MaxDealNumber       = 1000000
	WebSocketBufferSize = 256
)

// PileState is a read-only view of one pile
type PileState struct {
	ID    PileID   `json:"id"`
	Kind  PileKind `json:"kind"`
	Suit  Suit     `json:"suit,omitempty"`
	Cards []Card   `json:"cards"`
}

// Top returns the top card of the pile view, if any
func (p PileState) Top() (Card, bool) {
	if len(p.Cards) == 0 {
		return Card{}, false
	}
	return p.Cards[len(p.Cards)-1], true
}

// GameState is a serializable snapshot of a game
type GameState struct {
	RuleSet     string      `json:"rule_set"`
	Seed        int64       `json:"seed"`
	FreeCells   []PileState `json:"free_cells"`
	Foundations []PileState `json:"foundations"`
	Tableau     []PileState `json:"tableau"`

	EmptyFreeCells int      `json:"empty_free_cells"`
	EmptyColumns   int      `json:"empty_columns"`
	MaxMovable     int      `json:"max_movable"`
	MovableCards   []CardID `json:"movable_cards"`

	Won         bool   `json:"won"`
	CanUndo     bool   `json:"can_undo"`
	HistorySize int    `json:"history_size"`
	TotalMoves  int    `json:"total_moves"`
	UndoCount   int    `json:"undo_count"`
	Message     string `json:"message"`
}

// Piles returns every pile in the snapshot in deck order
func (s *GameState) Piles() []PileState {
	piles := make([]PileState, 0, len(s.FreeCells)+len(s.Foundations)+len(s.Tableau))
	piles = append(piles, s.FreeCells...)
	piles = append(piles, s.Foundations...)
	piles = append(piles, s.Tableau...)
	return piles
}

// EventType names an engine notification
type EventType string

const (
	EventSequenceExecuted EventType = "sequence_executed"
	EventSequenceUndone   EventType = "sequence_undone"
	EventWon              EventType = "won"
	EventRedealt          EventType = "redealt"
)

// PlacementChange records where a single card was before and after a transition
type PlacementChange struct {
	Card CardID    `json:"card"`
	From Placement `json:"from"`
	To   Placement `json:"to"`
}

// Event is delivered synchronously to engine subscribers after the deck has changed
type Event struct {
	Type     EventType         `json:"type"`
	Sequence MoveSequence      `json:"sequence"`
	Changes  []PlacementChange `json:"changes,omitempty"`
	Seed     int64             `json:"seed,omitempty"`
}
