package service

import (
	"time"

	"github.com/wricardo/freecell/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string            `json:"id"`
	ConfigName     string            `json:"config_name"`
	Seed           int64             `json:"seed"`
	CreatedAt      time.Time         `json:"created_at"`
	LastAccessedAt time.Time         `json:"last_accessed_at"`
	GameState      *engine.GameState `json:"game_state"`
	RuleSet        *engine.RuleSet   `json:"rule_set"`
}

// MoveRequest asks for the run headed by Card to move onto pile To. When
// From is set, the move is rejected as stale unless the card is still there.
type MoveRequest struct {
	Card string            `json:"card"`
	To   string            `json:"to"`
	From *engine.Placement `json:"from,omitempty"`
}

// MoveResult contains the result of a state-changing operation
type MoveResult struct {
	Success     bool                 `json:"success"`
	GameState   *engine.GameState    `json:"game_state"`
	Message     string               `json:"message"`
	Events      []GameEvent          `json:"events,omitempty"`
	Sequence    *engine.MoveSequence `json:"sequence,omitempty"`
	AttemptedTo *AttemptInfo         `json:"attempted_to,omitempty"`
}

// BulkMoveResult contains the result of multiple moves
type BulkMoveResult struct {
	// Summary
	MovesExecuted  int               `json:"moves_executed"`
	RequestedMoves int               `json:"requested_moves"`
	Success        bool              `json:"success"`
	GameState      *engine.GameState `json:"game_state"`
	Events         []GameEvent       `json:"events"`
	StoppedReason  string            `json:"stopped_reason,omitempty"`   // Human-readable reason
	StopReasonCode string            `json:"stop_reason_code,omitempty"` // illegal_move|invalid_card|unknown_pile|won
	StoppedOnMove  int               `json:"stopped_on_move,omitempty"`  // 1-based index of the move that caused stop
	Truncated      bool              `json:"truncated,omitempty"`
	Limit          int               `json:"limit,omitempty"`

	// Start/end snapshot
	StartFoundations int `json:"start_foundations"`
	EndFoundations   int `json:"end_foundations"`

	// Per-step compact trace (only for this call)
	Steps []StepInfo `json:"steps,omitempty"`

	// Failure diagnostics
	AttemptedTo *AttemptInfo `json:"attempted_to,omitempty"`

	// Final status aids
	Won      bool   `json:"won"`
	Message  string `json:"message,omitempty"`
	Position string `json:"position,omitempty"`
}

// StepInfo is a compact record for each executed move in the bulk call
type StepInfo struct {
	Idx        int             `json:"idx"`
	Card       engine.CardID   `json:"card"`
	Cards      []engine.CardID `json:"cards"`
	From       engine.PileID   `json:"from"`
	To         engine.PileID   `json:"to"`
	Success    bool            `json:"success"`
	Foundation bool            `json:"foundation,omitempty"`
	Won        bool            `json:"won,omitempty"`
}

// AttemptInfo details a rejected move
type AttemptInfo struct {
	Card         string          `json:"card"`
	To           string          `json:"to"`
	Reason       string          `json:"reason"`
	RunLength    int             `json:"run_length,omitempty"`
	MaxMovable   int             `json:"max_movable"`
	ValidTargets []engine.PileID `json:"valid_targets"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	ID        string                   `json:"id"`
	Type      string                   `json:"type"` // "sequence_executed", "sequence_undone", "won", "redealt"
	Message   string                   `json:"message"`
	Timestamp time.Time                `json:"timestamp"`
	Cards     []engine.CardID          `json:"cards,omitempty"`
	From      engine.PileID            `json:"from,omitempty"`
	To        engine.PileID            `json:"to,omitempty"`
	Changes   []engine.PlacementChange `json:"changes,omitempty"`
	Seed      int64                    `json:"seed,omitempty"`
}

// DropTargetsResult lists the piles that accept a card's run
type DropTargetsResult struct {
	Card       engine.CardID   `json:"card"`
	Movable    bool            `json:"movable"`
	RunLength  int             `json:"run_length"`
	MaxMovable int             `json:"max_movable"`
	Targets    []engine.PileID `json:"targets"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryEntry is one undoable action
type HistoryEntry struct {
	Number int             `json:"number"` // 1-based, oldest first
	Cards  []engine.CardID `json:"cards"`
	From   engine.PileID   `json:"from"`
	To     engine.PileID   `json:"to"`
	Moves  []engine.Move   `json:"moves"`
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []HistoryEntry `json:"moves"`
	TotalMoves  int            `json:"total_moves"`
	Page        int            `json:"page"`
	PageSize    int            `json:"page_size"`
	TotalPages  int            `json:"total_pages"`
	HasNext     bool           `json:"has_next"`
	HasPrevious bool           `json:"has_previous"`
}

// ConfigInfo provides information about a rule-set file
type ConfigInfo struct {
	Filename       string `json:"filename"`
	ConfigID       string `json:"config_id"` // The identifier to use for session creation
	Name           string `json:"name"`      // Display name
	Description    string `json:"description"`
	FreeCells      int    `json:"free_cells"`
	TableauColumns int    `json:"tableau_columns"`
}
