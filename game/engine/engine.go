package engine

import (
	"fmt"

	"github.com/wricardo/freecell/game/history"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Game state
	GetState() *GameState
	Deck() *Deck
	Rules() RuleSet
	Seed() int64
	IsWon() bool

	// Rule queries
	CanMoveCard(card CardID) bool
	DropTargets(card CardID, candidates []PileID) []PileID
	Plan(card CardID, dest PileID) (MoveSequence, bool)

	// Move operations
	Apply(seq MoveSequence) error
	MoveCard(card CardID, dest PileID) (MoveSequence, error)
	SnapToFoundation(card CardID) (MoveSequence, error)
	Undo() (MoveSequence, bool, error)
	Redeal(seed int64) error

	// History
	History() *history.Stack[MoveSequence]
	GetMoveHistory() []MoveSequence
	CanUndo() bool

	// Notifications
	Subscribe(fn func(Event)) (unsubscribe func())
}

type engineSubscriber struct {
	id int
	fn func(Event)
}

// GameEngine implements the Engine interface. It is not safe for concurrent
// use; hosts guard each engine with a single lock.
type GameEngine struct {
	rules   RuleSet
	seed    int64
	deck    *Deck
	history *history.Stack[MoveSequence]

	subscribers []engineSubscriber
	nextSubID   int

	won        bool
	totalMoves int
	undoCount  int
	message    string
}

// NewEngine deals a new game for the rule set and game number
func NewEngine(rules RuleSet, seed int64) (*GameEngine, error) {
	deck, err := Deal(rules, seed)
	if err != nil {
		return nil, err
	}
	e := newGameEngine(deck, seed)
	e.message = fmt.Sprintf("Game #%d dealt. Good luck!", seed)
	return e, nil
}

// NewEngineWithDeck wraps an existing deck, e.g. a hand-built layout
func NewEngineWithDeck(deck *Deck) *GameEngine {
	return newGameEngine(deck, 0)
}

// NewEngineWithDefaults deals game #1 of standard Freecell
func NewEngineWithDefaults() *GameEngine {
	e, err := NewEngine(StandardRuleSet(), 1)
	if err != nil {
		panic(fmt.Sprintf("standard rule set rejected: %v", err))
	}
	return e
}

func newGameEngine(deck *Deck, seed int64) *GameEngine {
	e := &GameEngine{
		rules:   deck.Rules(),
		seed:    seed,
		deck:    deck,
		history: history.New[MoveSequence](),
		won:     deck.IsWon(),
	}
	e.history.Subscribe(e.onHistory)
	return e
}

// onHistory turns history mutations into engine events. Pushes and pops are
// only observed after the deck has changed.
func (e *GameEngine) onHistory(ev history.Event[MoveSequence]) {
	switch ev.Type {
	case history.Pushed:
		e.totalMoves++
		e.emit(Event{Type: EventSequenceExecuted, Sequence: ev.Value, Changes: ev.Value.Changes()})
	case history.Popped:
		e.undoCount++
		inverse := ev.Value.Inverse()
		e.emit(Event{Type: EventSequenceUndone, Sequence: inverse, Changes: inverse.Changes()})
	case history.Cleared:
		return
	}
	e.checkWon()
}

func (e *GameEngine) checkWon() {
	won := e.deck.IsWon()
	if won && !e.won {
		e.message = "All foundations complete. You won!"
		e.emit(Event{Type: EventWon, Seed: e.seed})
	}
	e.won = won
}

func (e *GameEngine) emit(ev Event) {
	subs := append([]engineSubscriber(nil), e.subscribers...)
	for _, s := range subs {
		s.fn(ev)
	}
}

// Subscribe registers fn for engine events and returns its unsubscribe function
func (e *GameEngine) Subscribe(fn func(Event)) (unsubscribe func()) {
	e.nextSubID++
	id := e.nextSubID
	e.subscribers = append(e.subscribers, engineSubscriber{id: id, fn: fn})
	return func() {
		for i, s := range e.subscribers {
			if s.id == id {
				e.subscribers = append(e.subscribers[:i:i], e.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Deck returns the live deck
func (e *GameEngine) Deck() *Deck {
	return e.deck
}

// Rules returns the rule set in play
func (e *GameEngine) Rules() RuleSet {
	return e.rules
}

// Seed returns the current game number (0 for hand-built layouts)
func (e *GameEngine) Seed() int64 {
	return e.seed
}

// IsWon reports whether every foundation is complete
func (e *GameEngine) IsWon() bool {
	return e.deck.IsWon()
}

// CanMoveCard reports whether card can start a move
func (e *GameEngine) CanMoveCard(card CardID) bool {
	return CanMoveCard(e.deck, card)
}

// DropTargets filters candidates down to the piles that accept card's run
func (e *GameEngine) DropTargets(card CardID, candidates []PileID) []PileID {
	return FilterValidDropPiles(e.deck, card, candidates)
}

// Plan computes the sequence that moves card's run onto dest, without executing it
func (e *GameEngine) Plan(card CardID, dest PileID) (MoveSequence, bool) {
	return PlanMove(e.deck, card, dest)
}

// Apply executes seq on the deck and records it in history. Apply does not
// check the rules; callers plan first.
func (e *GameEngine) Apply(seq MoveSequence) error {
	if err := e.deck.ExecuteMoveSequence(seq); err != nil {
		return err
	}
	e.message = fmt.Sprintf("Moved %s", seq)
	e.history.Push(seq)
	return nil
}

// MoveCard plans and applies a move of card's run onto dest
func (e *GameEngine) MoveCard(card CardID, dest PileID) (MoveSequence, error) {
	seq, ok := e.Plan(card, dest)
	if !ok {
		e.message = fmt.Sprintf("Can't move %s to %s", card, dest)
		return MoveSequence{}, fmt.Errorf("%w: %s to %s", ErrIllegalMove, card, dest)
	}
	if err := e.Apply(seq); err != nil {
		return MoveSequence{}, err
	}
	return seq, nil
}

// SnapToFoundation moves a single top card to the first foundation that takes it
func (e *GameEngine) SnapToFoundation(card CardID) (MoveSequence, error) {
	dest, ok := SnapTarget(e.deck, card)
	if !ok {
		e.message = fmt.Sprintf("No foundation accepts %s", card)
		return MoveSequence{}, fmt.Errorf("%w: no foundation accepts %s", ErrIllegalMove, card)
	}
	return e.MoveCard(card, dest)
}

// Undo reverts the most recent sequence and returns the inverse that was
// executed. ok is false when there is nothing to undo.
func (e *GameEngine) Undo() (MoveSequence, bool, error) {
	seq, ok := e.history.Peek()
	if !ok {
		e.message = "Nothing to undo"
		return MoveSequence{}, false, nil
	}
	inverse := e.deck.Invert(seq)
	if err := e.deck.ExecuteMoveSequence(inverse); err != nil {
		return MoveSequence{}, false, err
	}
	e.message = fmt.Sprintf("Undid %s", seq)
	e.history.Pop()
	return inverse, true, nil
}

// CanUndo reports whether there is history to undo
func (e *GameEngine) CanUndo() bool {
	return e.history.Len() > 0
}

// Redeal replaces the deck with a fresh deal and clears history
func (e *GameEngine) Redeal(seed int64) error {
	deck, err := Deal(e.rules, seed)
	if err != nil {
		return err
	}
	e.deck = deck
	e.seed = seed
	e.won = false
	e.history.Clear()
	e.message = fmt.Sprintf("Game #%d dealt. Good luck!", seed)
	e.emit(Event{Type: EventRedealt, Seed: seed})
	return nil
}

// History returns the undo stack
func (e *GameEngine) History() *history.Stack[MoveSequence] {
	return e.history
}

// GetMoveHistory returns the undoable sequences, oldest first
func (e *GameEngine) GetMoveHistory() []MoveSequence {
	return e.history.Items()
}

// GetState returns a snapshot of the game
func (e *GameEngine) GetState() *GameState {
	d := e.deck
	state := &GameState{
		RuleSet:        e.rules.Name,
		Seed:           e.seed,
		EmptyFreeCells: d.EmptyFreeCells(),
		EmptyColumns:   d.EmptyTableauColumns(""),
		MaxMovable:     MaxMovable(d, ""),
		MovableCards:   []CardID{},
		Won:            d.IsWon(),
		CanUndo:        e.CanUndo(),
		HistorySize:    e.history.Len(),
		TotalMoves:     e.totalMoves,
		UndoCount:      e.undoCount,
		Message:        e.message,
	}

	for _, id := range d.order {
		p := d.piles[id]
		view := PileState{ID: id, Kind: p.Kind, Suit: p.Suit, Cards: d.CardsInPile(id)}
		switch p.Kind {
		case FreeCellPile:
			state.FreeCells = append(state.FreeCells, view)
		case FoundationPile:
			state.Foundations = append(state.Foundations, view)
		case TableauPile:
			state.Tableau = append(state.Tableau, view)
		}
		for _, cid := range p.Cards {
			if CanMoveCard(d, cid) {
				state.MovableCards = append(state.MovableCards, cid)
			}
		}
	}

	return state
}
