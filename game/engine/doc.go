// Package engine provides the core game logic for single-deck Freecell.
//
// The engine package implements the game mechanics including:
//   - Cards, piles and the Deck that owns every card's placement
//   - Move sequences: atomic, invertible multi-card transitions
//   - Pure rule functions for movability, drop targets and run capacity
//   - Numbered deals compatible with the classic Microsoft game numbers
//   - Undo history and change notifications
//
// Core Types:
//
// The Engine interface defines the main contract for game operations,
// implemented by GameEngine. Deck is the single writer of card placement;
// MoveSequence values are created by the rule functions (PlanMove) and
// applied with Deck.ExecuteMoveSequence. GameState is a serializable
// snapshot for hosts. RuleSet selects the number of free cells and columns.
//
// Usage:
//
//	gameEngine, err := engine.NewEngine(engine.StandardRuleSet(), 1)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Move the 7 of hearts and any run above it onto column 4
//	seq, err := gameEngine.MoveCard("7H", engine.TableauID(4))
//	if errors.Is(err, engine.ErrIllegalMove) {
//		// rejected by the rules
//	}
//	state := gameEngine.GetState()
//
// Game Rules:
//
// A card can move together with every card above it when those cards form a
// descending run of alternating colors, and the run is no longer than
// (1 + empty free cells) * 2^(empty columns). Free cells hold one card.
// Foundations build up by suit from the ace. Columns build down in
// alternating colors and take any run when empty. The game is won when all
// four foundations hold thirteen cards.
package engine
