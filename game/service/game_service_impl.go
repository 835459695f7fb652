package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	mathrand "math/rand/v2"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wricardo/freecell/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// getConfigID returns the config_id for a rule-set name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(name string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == name {
				return cfg.ConfigID
			}
		}
	}
	if name == "" {
		return "standard"
	}
	return name
}

// RandomSeed picks a game number in 1..engine.MaxDealNumber
func RandomSeed() int64 {
	return mathrand.Int64N(engine.MaxDealNumber) + 1
}

// CreateSession deals a new game. A zero seed picks a random game number.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, seed int64) (*SessionInfo, error) {
	if seed < 0 || seed > engine.MaxDealNumber {
		return nil, fmt.Errorf("%w: seed must be between 1 and %d", ErrInvalidRequest, engine.MaxDealNumber)
	}
	if seed == 0 {
		seed = RandomSeed()
	}

	var rules *engine.RuleSet
	var err error
	if configName != "" {
		rules, err = s.configs.LoadConfig(configName)
		if err != nil {
			// Provide helpful error message with available options
			if strings.Contains(err.Error(), "configuration not found") {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("%w: '%s'. Available configs: %v", ErrConfigNotFound, configName, configIDs)
				}
				return nil, fmt.Errorf("%w: '%s'. Use /api/configs to list available configurations", ErrConfigNotFound, configName)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		rules = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", rules, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(rules.Name)
	}

	sess.Lock()
	defer sess.Unlock()
	info := s.sessionInfo(sess)
	info.ConfigName = configID
	return info, nil
}

// sessionInfo snapshots a session; the caller holds the session lock
func (s *gameServiceImpl) sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     s.getConfigID(sess.Rules.Name),
		Seed:           sess.Engine.Seed(),
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		GameState:      sess.Engine.GetState(),
		RuleSet:        sess.Rules,
	}
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	return s.sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		sess.Lock()
		result = append(result, s.sessionInfo(sess))
		sess.Unlock()
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	return nil
}

// touch looks up a session and marks it accessed. It must be called before
// taking the session lock.
func (s *gameServiceImpl) touch(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionNotFound, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// collect subscribes to engine events for the duration of one operation
func collect(eng *engine.GameEngine) (events *[]GameEvent, stop func()) {
	var out []GameEvent
	unsubscribe := eng.Subscribe(func(ev engine.Event) {
		out = append(out, toGameEvent(ev))
	})
	return &out, unsubscribe
}

func toGameEvent(ev engine.Event) GameEvent {
	ge := GameEvent{
		ID:        ulid.MustNew(ulid.Now(), rand.Reader).String(),
		Type:      string(ev.Type),
		Timestamp: time.Now(),
		Changes:   ev.Changes,
		Seed:      ev.Seed,
	}

	switch ev.Type {
	case engine.EventSequenceExecuted:
		ge.Cards = ev.Sequence.Cards()
		ge.From = ev.Sequence.Source()
		ge.To = ev.Sequence.Destination()
		ge.Message = fmt.Sprintf("Moved %s", ev.Sequence)
	case engine.EventSequenceUndone:
		ge.Cards = ev.Sequence.Cards()
		ge.From = ev.Sequence.Source()
		ge.To = ev.Sequence.Destination()
		ge.Message = fmt.Sprintf("Undid move, returned %s", ev.Sequence)
	case engine.EventWon:
		ge.Message = "All foundations complete. You won!"
	case engine.EventRedealt:
		ge.Message = fmt.Sprintf("Dealt game #%d", ev.Seed)
	}
	return ge
}

// resolveMove normalizes a move request against the current deck. A request
// naming a source that no longer holds the card yields a *engine.StaleMoveError.
func resolveMove(deck *engine.Deck, req MoveRequest) (engine.CardID, engine.PileID, error) {
	card, err := engine.NormalizeCardID(req.Card)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	to := engine.NormalizePileID(req.To)
	if _, ok := deck.Pile(to); !ok {
		return "", "", fmt.Errorf("%w: %w: %q", ErrInvalidRequest, engine.ErrUnknownPile, req.To)
	}

	if req.From != nil {
		current, _ := deck.Card(card)
		expected := engine.Placement{Pile: engine.NormalizePileID(string(req.From.Pile)), Position: req.From.Position}
		if current.Placement() != expected {
			return "", "", &engine.StaleMoveError{
				Move:   engine.NewMove(card, expected.Pile, expected.Position, to, -1),
				Reason: fmt.Sprintf("card is at %s[%d]", current.Pile, current.Position),
			}
		}
	}
	return card, to, nil
}

// attemptInfo explains why a move was rejected
func attemptInfo(deck *engine.Deck, req MoveRequest, card engine.CardID, to engine.PileID) *AttemptInfo {
	info := &AttemptInfo{
		Card:         req.Card,
		To:           req.To,
		MaxMovable:   engine.MaxMovable(deck, to),
		ValidTargets: engine.FilterValidDropPiles(deck, card, deck.PileIDs()),
	}

	run, ok := engine.MovableRun(deck, card)
	switch {
	case !ok:
		info.Reason = fmt.Sprintf("%s is covered by cards that are not a descending alternating-color run", card)
	default:
		info.RunLength = len(run)
		if pile, _ := deck.Pile(to); pile.Kind == engine.TableauPile && len(run) > info.MaxMovable {
			info.Reason = fmt.Sprintf("run of %d exceeds capacity %d", len(run), info.MaxMovable)
		} else {
			info.Reason = fmt.Sprintf("%s does not accept %s", to, card)
		}
	}
	return info
}

// Move executes a single move for a session. A move the rules reject is
// reported with Success false, not as an error.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, req MoveRequest) (*MoveResult, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	eng := sess.Engine
	card, to, err := resolveMove(eng.Deck(), req)
	if err != nil {
		return nil, err
	}

	events, stop := collect(eng)
	seq, err := eng.MoveCard(card, to)
	stop()

	result := &MoveResult{Events: *events}
	switch {
	case errors.Is(err, engine.ErrIllegalMove):
		result.AttemptedTo = attemptInfo(eng.Deck(), req, card, to)
	case err != nil:
		return nil, err
	default:
		result.Success = true
		result.Sequence = &seq
	}

	result.GameState = eng.GetState()
	result.Message = result.GameState.Message
	return result, nil
}

// BulkMove executes moves in order and stops at the first one that fails
func (s *gameServiceImpl) BulkMove(ctx context.Context, sessionID string, moves []MoveRequest) (*BulkMoveResult, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	eng := sess.Engine
	result := &BulkMoveResult{
		RequestedMoves:   len(moves),
		Events:           make([]GameEvent, 0),
		Success:          true,
		StartFoundations: engine.FoundationProgress(eng.Deck()),
	}

	// Limit moves to prevent abuse
	if len(moves) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		moves = moves[:engine.MaxBulkMoves]
	}

	events, stop := collect(eng)
	for i, req := range moves {
		if eng.IsWon() {
			result.StoppedReason = "game already won"
			result.StopReasonCode = "won"
			result.StoppedOnMove = i + 1
			break
		}

		card, to, err := resolveMove(eng.Deck(), req)
		if err != nil {
			result.Success = false
			result.StoppedOnMove = i + 1
			result.StoppedReason = fmt.Sprintf("move %d rejected: %v", i+1, err)
			switch {
			case errors.Is(err, engine.ErrStaleMove):
				result.StopReasonCode = "stale_move"
			case errors.Is(err, engine.ErrUnknownPile):
				result.StopReasonCode = "unknown_pile"
			default:
				result.StopReasonCode = "invalid_card"
			}
			break
		}

		seq, err := eng.MoveCard(card, to)
		if err != nil {
			if !errors.Is(err, engine.ErrIllegalMove) {
				stop()
				return nil, err
			}
			result.Success = false
			result.StoppedOnMove = i + 1
			result.StoppedReason = fmt.Sprintf("move %d rejected: %s to %s", i+1, card, to)
			result.StopReasonCode = "illegal_move"
			result.AttemptedTo = attemptInfo(eng.Deck(), req, card, to)
			break
		}

		result.MovesExecuted++
		pile, _ := eng.Deck().Pile(to)
		result.Steps = append(result.Steps, StepInfo{
			Idx:        i + 1,
			Card:       card,
			Cards:      seq.Cards(),
			From:       seq.Source(),
			To:         seq.Destination(),
			Success:    true,
			Foundation: pile.Kind == engine.FoundationPile,
			Won:        eng.IsWon(),
		})
	}
	stop()

	result.Events = append(result.Events, *events...)
	result.GameState = eng.GetState()
	result.EndFoundations = engine.FoundationProgress(eng.Deck())
	result.Won = result.GameState.Won
	result.Message = result.GameState.Message
	result.Position = engine.AnalyzePosition(eng.Deck())

	return result, nil
}

// SnapToFoundation moves a single top card to the foundation that accepts it
func (s *gameServiceImpl) SnapToFoundation(ctx context.Context, sessionID, card string) (*MoveResult, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	id, err := engine.NormalizeCardID(card)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	sess.Lock()
	defer sess.Unlock()

	eng := sess.Engine
	events, stop := collect(eng)
	seq, err := eng.SnapToFoundation(id)
	stop()

	result := &MoveResult{Events: *events}
	switch {
	case errors.Is(err, engine.ErrIllegalMove):
		result.AttemptedTo = &AttemptInfo{
			Card:         card,
			To:           "foundation",
			Reason:       fmt.Sprintf("no foundation accepts %s", id),
			MaxMovable:   engine.MaxMovable(eng.Deck(), ""),
			ValidTargets: engine.FilterValidDropPiles(eng.Deck(), id, eng.Deck().PileIDs()),
		}
	case err != nil:
		return nil, err
	default:
		result.Success = true
		result.Sequence = &seq
	}

	result.GameState = eng.GetState()
	result.Message = result.GameState.Message
	return result, nil
}

// Undo reverts the most recent action
func (s *gameServiceImpl) Undo(ctx context.Context, sessionID string) (*MoveResult, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	eng := sess.Engine
	events, stop := collect(eng)
	inverse, ok, err := eng.Undo()
	stop()
	if err != nil {
		return nil, err
	}

	result := &MoveResult{Success: ok, Events: *events}
	if ok {
		result.Sequence = &inverse
	}
	result.GameState = eng.GetState()
	result.Message = result.GameState.Message
	return result, nil
}

// Redeal replaces the session's game with a fresh deal. A zero seed picks a random game number.
func (s *gameServiceImpl) Redeal(ctx context.Context, sessionID string, seed int64) (*MoveResult, error) {
	if seed < 0 || seed > engine.MaxDealNumber {
		return nil, fmt.Errorf("%w: seed must be between 1 and %d", ErrInvalidRequest, engine.MaxDealNumber)
	}
	if seed == 0 {
		seed = RandomSeed()
	}

	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()

	eng := sess.Engine
	events, stop := collect(eng)
	err = eng.Redeal(seed)
	stop()
	if err != nil {
		return nil, err
	}

	state := eng.GetState()
	return &MoveResult{
		Success:   true,
		GameState: state,
		Message:   state.Message,
		Events:    *events,
	}, nil
}

// GetGameState retrieves the current game state
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	defer sess.Unlock()
	return sess.Engine.GetState(), nil
}

// DropTargets lists the candidate piles that accept the run headed by card.
// With no candidates every pile is considered.
func (s *gameServiceImpl) DropTargets(ctx context.Context, sessionID, card string, candidates []string) (*DropTargetsResult, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	id, err := engine.NormalizeCardID(card)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	sess.Lock()
	defer sess.Unlock()

	deck := sess.Engine.Deck()
	piles := deck.PileIDs()
	if len(candidates) > 0 {
		piles = make([]engine.PileID, len(candidates))
		for i, c := range candidates {
			piles[i] = engine.NormalizePileID(c)
		}
	}

	run, movable := engine.MovableRun(deck, id)
	return &DropTargetsResult{
		Card:       id,
		Movable:    movable && engine.CanMoveCard(deck, id),
		RunLength:  len(run),
		MaxMovable: engine.MaxMovable(deck, ""),
		Targets:    sess.Engine.DropTargets(id, piles),
	}, nil
}

// GetMoveHistory returns paginated move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	sess, err := s.touch(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Lock()
	sequences := sess.Engine.GetMoveHistory()
	sess.Unlock()

	history := make([]HistoryEntry, len(sequences))
	for i, seq := range sequences {
		history[i] = HistoryEntry{
			Number: i + 1,
			Cards:  seq.Cards(),
			From:   seq.Source(),
			To:     seq.Destination(),
			Moves:  seq.Moves(),
		}
	}
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	// Calculate pagination
	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []HistoryEntry{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = append(moves, history[start:end]...)
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns available rule sets
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific rule set
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.RuleSet, error) {
	return s.configs.LoadConfig(configName)
}

// SaveConfig saves a rule set to disk
func (s *gameServiceImpl) SaveConfig(ctx context.Context, configName string, config *engine.RuleSet) error {
	return s.configs.SaveConfig(configName, config)
}
