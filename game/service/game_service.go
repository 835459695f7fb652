package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wricardo/freecell/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrConfigNotFound  = errors.New("config not found")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string, seed int64) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Move(ctx context.Context, sessionID string, req MoveRequest) (*MoveResult, error)
	BulkMove(ctx context.Context, sessionID string, moves []MoveRequest) (*BulkMoveResult, error)
	SnapToFoundation(ctx context.Context, sessionID, card string) (*MoveResult, error)
	Undo(ctx context.Context, sessionID string) (*MoveResult, error)
	Redeal(ctx context.Context, sessionID string, seed int64) (*MoveResult, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	DropTargets(ctx context.Context, sessionID, card string, candidates []string) (*DropTargetsResult, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.RuleSet, error)
	SaveConfig(ctx context.Context, configName string, config *engine.RuleSet) error
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, rules *engine.RuleSet, seed int64) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, rules *engine.RuleSet, seed int64) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles rule-set loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.RuleSet, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.RuleSet
	SaveConfig(name string, config *engine.RuleSet) error
}

// Session represents an active game session. The engine is not safe for
// concurrent use; hold the session lock around every engine call.
type Session struct {
	ID             string
	Engine         *engine.GameEngine
	Rules          *engine.RuleSet
	CreatedAt      time.Time
	LastAccessedAt time.Time

	mu sync.Mutex
}

// Lock acquires the session's engine lock
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the session's engine lock
func (s *Session) Unlock() { s.mu.Unlock() }
