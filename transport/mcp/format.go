package mcp

import (
	"fmt"
	"strings"

	"github.com/wricardo/freecell/game/engine"
	"github.com/wricardo/freecell/game/service"
)

// Formatting helpers

func formatSessionInfo(session *service.SessionInfo) string {
	return fmt.Sprintf("Session: %s\nConfig: %s\nGame: #%d\nCreated: %s\n\n%s",
		session.ID, session.ConfigName, session.Seed,
		session.CreatedAt.Format("2006-01-02 15:04:05"),
		formatGameState(session.GameState))
}

func cardList(cards []engine.Card) string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = string(c.ID)
	}
	return strings.Join(ids, " ")
}

func formatGameState(state *engine.GameState) string {
	if state == nil {
		return "No game state available"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "Game #%d (%s) | Moves: %d | Undos: %d\n\n",
		state.Seed, state.RuleSet, state.TotalMoves, state.UndoCount)

	b.WriteString("Free cells: ")
	for _, cell := range state.FreeCells {
		top := "--"
		if card, ok := cell.Top(); ok {
			top = string(card.ID)
		}
		fmt.Fprintf(&b, "[%s] ", top)
	}
	b.WriteString("\n")

	b.WriteString("Foundations: ")
	for _, f := range state.Foundations {
		top := "--"
		if card, ok := f.Top(); ok {
			top = string(card.ID)
		}
		fmt.Fprintf(&b, "%s=%s ", f.Suit, top)
	}
	b.WriteString("\n\nTableau (bottom to top):\n")

	for _, col := range state.Tableau {
		cards := cardList(col.Cards)
		if cards == "" {
			cards = "(empty)"
		}
		fmt.Fprintf(&b, "  %-10s %s\n", col.ID, cards)
	}

	fmt.Fprintf(&b, "\nEmpty free cells: %d | Empty columns: %d | Max run: %d\n",
		state.EmptyFreeCells, state.EmptyColumns, state.MaxMovable)
	if len(state.MovableCards) > 0 {
		ids := make([]string, len(state.MovableCards))
		for i, id := range state.MovableCards {
			ids[i] = string(id)
		}
		fmt.Fprintf(&b, "Movable cards: %s\n", strings.Join(ids, ", "))
	}

	if state.Won {
		b.WriteString("\n🎉 VICTORY!")
	}

	if state.Message != "" {
		fmt.Fprintf(&b, "\nMessage: %s", state.Message)
	}

	return b.String()
}

func formatEvents(b *strings.Builder, events []service.GameEvent) {
	if len(events) == 0 {
		return
	}
	b.WriteString("Events:\n")
	for _, event := range events {
		fmt.Fprintf(b, "- %s: %s\n", event.Type, event.Message)
	}
}

func formatAttempt(b *strings.Builder, a *service.AttemptInfo) {
	fmt.Fprintf(b, "Rejected: %s to %s: %s\n", a.Card, a.To, a.Reason)
	if a.RunLength > 0 {
		fmt.Fprintf(b, "Run length %d, capacity %d\n", a.RunLength, a.MaxMovable)
	}
	if len(a.ValidTargets) > 0 {
		targets := make([]string, len(a.ValidTargets))
		for i, p := range a.ValidTargets {
			targets[i] = string(p)
		}
		fmt.Fprintf(b, "Valid targets: %s\n", strings.Join(targets, ", "))
	} else {
		b.WriteString("Valid targets: none\n")
	}
}

func formatMoveResult(result *service.MoveResult) string {
	var b strings.Builder
	if result.Success {
		b.WriteString("✓ Move successful\n")
	} else {
		b.WriteString("✗ Move failed\n")
	}

	if result.Sequence != nil {
		fmt.Fprintf(&b, "Step: %s\n", result.Sequence)
	}

	if result.AttemptedTo != nil {
		formatAttempt(&b, result.AttemptedTo)
	}

	formatEvents(&b, result.Events)

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatBulkMoveResult(sessionID string, result *service.BulkMoveResult) string {
	var b strings.Builder

	game := int64(0)
	if result.GameState != nil {
		game = result.GameState.Seed
	}
	fmt.Fprintf(&b, "Session: %s • Game #%d\n", sessionID, game)

	fmt.Fprintf(&b, "Executed %d/%d moves\n", result.MovesExecuted, result.RequestedMoves)
	if result.Truncated {
		fmt.Fprintf(&b, "Only the first %d moves were attempted\n", result.Limit)
	}
	if result.StoppedReason != "" {
		fmt.Fprintf(&b, "Stopped on move %d (%s): %s\n", result.StoppedOnMove, result.StopReasonCode, result.StoppedReason)
	}
	fmt.Fprintf(&b, "Foundations: %d → %d cards\n", result.StartFoundations, result.EndFoundations)

	if len(result.Steps) > 0 {
		b.WriteString("\nSteps (this call):\n")
		for _, s := range result.Steps {
			b.WriteString(formatStepLine(s))
		}
	}

	if result.AttemptedTo != nil {
		b.WriteString("\n")
		formatAttempt(&b, result.AttemptedTo)
	}

	if len(result.Events) > 0 {
		b.WriteString("\n")
		formatEvents(&b, result.Events)
	}

	if result.Position != "" {
		fmt.Fprintf(&b, "\nPosition: %s\n", result.Position)
	}

	b.WriteString("\n")
	b.WriteString(formatGameState(result.GameState))
	return b.String()
}

func formatStepLine(s service.StepInfo) string {
	ids := make([]string, len(s.Cards))
	for i, c := range s.Cards {
		ids[i] = string(c)
	}
	line := fmt.Sprintf("%d. %s %s → %s", s.Idx, strings.Join(ids, " "), s.From, s.To)
	if s.Foundation {
		line += " (foundation)"
	}
	if s.Won {
		line += " 🎉"
	}
	return line + "\n"
}

func formatDropTargets(result *service.DropTargetsResult) string {
	var b strings.Builder
	if !result.Movable {
		fmt.Fprintf(&b, "%s cannot move right now\n", result.Card)
		return b.String()
	}
	fmt.Fprintf(&b, "%s heads a run of %d (capacity %d)\n", result.Card, result.RunLength, result.MaxMovable)
	if len(result.Targets) == 0 {
		b.WriteString("No pile accepts it right now\n")
		return b.String()
	}
	b.WriteString("Accepted by:\n")
	for _, p := range result.Targets {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	return b.String()
}

func formatHistory(history *service.HistoryResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Move History (Page %d/%d, Total: %d moves):\n\n",
		history.Page, history.TotalPages, history.TotalMoves)

	for _, entry := range history.Moves {
		ids := make([]string, len(entry.Cards))
		for i, c := range entry.Cards {
			ids[i] = string(c)
		}
		fmt.Fprintf(&b, "%d. %s %s → %s\n", entry.Number, strings.Join(ids, " "), entry.From, entry.To)
	}

	if history.HasNext {
		fmt.Fprintf(&b, "\nMore moves on page %d\n", history.Page+1)
	}
	return b.String()
}
