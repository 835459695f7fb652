package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wricardo/freecell/game/config"
	"github.com/wricardo/freecell/game/engine"
	"github.com/wricardo/freecell/game/service"
	"github.com/wricardo/freecell/game/session"
	"github.com/wricardo/freecell/transport/websocket"
)

// MockGameService implements service.GameService for testing
type MockGameService struct {
	// Session Management
	CreateSessionFunc func(ctx context.Context, configName string, seed int64) (*service.SessionInfo, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*service.SessionInfo, error)
	ListSessionsFunc  func(ctx context.Context) ([]*service.SessionInfo, error)
	DeleteSessionFunc func(ctx context.Context, sessionID string) error

	// Game Operations
	MoveFunc     func(ctx context.Context, sessionID string, req service.MoveRequest) (*service.MoveResult, error)
	BulkMoveFunc func(ctx context.Context, sessionID string, moves []service.MoveRequest) (*service.BulkMoveResult, error)
	SnapFunc     func(ctx context.Context, sessionID, card string) (*service.MoveResult, error)
	UndoFunc     func(ctx context.Context, sessionID string) (*service.MoveResult, error)
	RedealFunc   func(ctx context.Context, sessionID string, seed int64) (*service.MoveResult, error)

	// Game State
	GetGameStateFunc   func(ctx context.Context, sessionID string) (*engine.GameState, error)
	DropTargetsFunc    func(ctx context.Context, sessionID, card string, candidates []string) (*service.DropTargetsResult, error)
	GetMoveHistoryFunc func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error)

	// Configuration
	ListConfigsFunc func(ctx context.Context) ([]*service.ConfigInfo, error)
	LoadConfigFunc  func(ctx context.Context, configName string) (*engine.RuleSet, error)
	SaveConfigFunc  func(ctx context.Context, configName string, config *engine.RuleSet) error
}

// Session Management
func (m *MockGameService) CreateSession(ctx context.Context, configName string, seed int64) (*service.SessionInfo, error) {
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, configName, seed)
	}
	return &service.SessionInfo{
		ID:         "test-session",
		ConfigName: configName,
		Seed:       seed,
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockGameService) GetSession(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return &service.SessionInfo{
		ID:         sessionID,
		ConfigName: "standard",
		CreatedAt:  time.Now(),
	}, nil
}

func (m *MockGameService) ListSessions(ctx context.Context) ([]*service.SessionInfo, error) {
	if m.ListSessionsFunc != nil {
		return m.ListSessionsFunc(ctx)
	}
	return []*service.SessionInfo{}, nil
}

func (m *MockGameService) DeleteSession(ctx context.Context, sessionID string) error {
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx, sessionID)
	}
	return nil
}

// Game Operations
func (m *MockGameService) Move(ctx context.Context, sessionID string, req service.MoveRequest) (*service.MoveResult, error) {
	if m.MoveFunc != nil {
		return m.MoveFunc(ctx, sessionID, req)
	}
	return &service.MoveResult{
		Success:   true,
		GameState: &engine.GameState{},
	}, nil
}

func (m *MockGameService) BulkMove(ctx context.Context, sessionID string, moves []service.MoveRequest) (*service.BulkMoveResult, error) {
	if m.BulkMoveFunc != nil {
		return m.BulkMoveFunc(ctx, sessionID, moves)
	}
	return &service.BulkMoveResult{
		Success:   true,
		GameState: &engine.GameState{},
	}, nil
}

func (m *MockGameService) SnapToFoundation(ctx context.Context, sessionID, card string) (*service.MoveResult, error) {
	if m.SnapFunc != nil {
		return m.SnapFunc(ctx, sessionID, card)
	}
	return &service.MoveResult{Success: true, GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) Undo(ctx context.Context, sessionID string) (*service.MoveResult, error) {
	if m.UndoFunc != nil {
		return m.UndoFunc(ctx, sessionID)
	}
	return &service.MoveResult{GameState: &engine.GameState{}}, nil
}

func (m *MockGameService) Redeal(ctx context.Context, sessionID string, seed int64) (*service.MoveResult, error) {
	if m.RedealFunc != nil {
		return m.RedealFunc(ctx, sessionID, seed)
	}
	return &service.MoveResult{Success: true, GameState: &engine.GameState{Seed: seed}}, nil
}

// Game State
func (m *MockGameService) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	if m.GetGameStateFunc != nil {
		return m.GetGameStateFunc(ctx, sessionID)
	}
	return &engine.GameState{}, nil
}

func (m *MockGameService) DropTargets(ctx context.Context, sessionID, card string, candidates []string) (*service.DropTargetsResult, error) {
	if m.DropTargetsFunc != nil {
		return m.DropTargetsFunc(ctx, sessionID, card, candidates)
	}
	return &service.DropTargetsResult{Card: engine.CardID(card), Targets: []engine.PileID{}}, nil
}

func (m *MockGameService) GetMoveHistory(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
	if m.GetMoveHistoryFunc != nil {
		return m.GetMoveHistoryFunc(ctx, sessionID, opts)
	}
	return &service.HistoryResponse{
		Moves:      []service.HistoryEntry{},
		TotalMoves: 0,
		Page:       opts.Page,
		PageSize:   opts.Limit,
		TotalPages: 1,
	}, nil
}

// Configuration
func (m *MockGameService) ListConfigs(ctx context.Context) ([]*service.ConfigInfo, error) {
	if m.ListConfigsFunc != nil {
		return m.ListConfigsFunc(ctx)
	}
	return []*service.ConfigInfo{}, nil
}

func (m *MockGameService) LoadConfig(ctx context.Context, configName string) (*engine.RuleSet, error) {
	if m.LoadConfigFunc != nil {
		return m.LoadConfigFunc(ctx, configName)
	}
	rules := engine.StandardRuleSet()
	rules.Name = configName
	return &rules, nil
}

func (m *MockGameService) SaveConfig(ctx context.Context, configName string, config *engine.RuleSet) error {
	if m.SaveConfigFunc != nil {
		return m.SaveConfigFunc(ctx, configName, config)
	}
	return nil
}

// Test helpers
func setupTestServer(t *testing.T, mockService *MockGameService) *Server {
	hub := websocket.NewHub()
	go hub.Run()
	t.Cleanup(hub.Stop)
	return NewServer(mockService, hub)
}

func makeRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	if err := json.Unmarshal(w.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
}

// Session Management Tests

func TestCreateSession(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    map[string]interface{}
		setupMock      func(*MockGameService)
		expectedStatus int
		validateResp   func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:        "Create session with default config",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string, seed int64) (*service.SessionInfo, error) {
					if configName != "" || seed != 0 {
						t.Errorf("Expected defaults, got %q #%d", configName, seed)
					}
					return &service.SessionInfo{
						ID:             "sess-123",
						ConfigName:     "standard",
						Seed:           42,
						CreatedAt:      time.Now(),
						LastAccessedAt: time.Now(),
					}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ID != "sess-123" {
					t.Errorf("Expected session ID sess-123, got %s", resp.ID)
				}
			},
		},
		{
			name:        "Create session with config and seed",
			requestBody: map[string]interface{}{"config_id": "two_cell", "seed": 617},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string, seed int64) (*service.SessionInfo, error) {
					if configName != "two_cell" || seed != 617 {
						t.Errorf("Expected two_cell #617, got %s #%d", configName, seed)
					}
					return &service.SessionInfo{ID: "sess-456", ConfigName: configName, Seed: seed}, nil
				}
			},
			expectedStatus: http.StatusCreated,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp service.SessionInfo
				parseResponse(t, w, &resp)
				if resp.ConfigName != "two_cell" || resp.Seed != 617 {
					t.Errorf("Unexpected session: %+v", resp)
				}
			},
		},
		{
			name:        "Deprecated config_name still accepted",
			requestBody: map[string]interface{}{"config_name": "wide"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string, seed int64) (*service.SessionInfo, error) {
					if configName != "wide" {
						t.Errorf("Expected config name 'wide', got %s", configName)
					}
					return &service.SessionInfo{ID: "sess-789", ConfigName: configName}, nil
				}
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "Unknown config",
			requestBody: map[string]interface{}{"config_id": "nope"},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string, seed int64) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("%w: 'nope'", service.ErrConfigNotFound)
				}
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:        "Bad seed",
			requestBody: map[string]interface{}{"seed": -3},
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string, seed int64) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("%w: seed out of range", service.ErrInvalidRequest)
				}
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Handle service error",
			requestBody: nil,
			setupMock: func(m *MockGameService) {
				m.CreateSessionFunc = func(ctx context.Context, configName string, seed int64) (*service.SessionInfo, error) {
					return nil, fmt.Errorf("service error")
				}
			},
			expectedStatus: http.StatusInternalServerError,
			validateResp: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["error"] != "service error" {
					t.Errorf("Expected error message 'service error', got %s", resp["error"])
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := &MockGameService{}
			if tt.setupMock != nil {
				tt.setupMock(mockService)
			}

			server := setupTestServer(t, mockService)
			w := httptest.NewRecorder()
			var body interface{}
			if tt.requestBody != nil {
				body = tt.requestBody
			}
			req := makeRequest("POST", "/api/sessions", body)

			server.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("Expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}

			if tt.validateResp != nil {
				tt.validateResp(t, w)
			}
		})
	}
}

func TestListSessions(t *testing.T) {
	now := time.Now()
	mockService := &MockGameService{
		ListSessionsFunc: func(ctx context.Context) ([]*service.SessionInfo, error) {
			return []*service.SessionInfo{
				{ID: "old", CreatedAt: now.Add(-3 * time.Hour), LastAccessedAt: now.Add(-time.Minute)},
				{ID: "mid", CreatedAt: now.Add(-2 * time.Hour), LastAccessedAt: now.Add(-time.Hour)},
				{ID: "new", CreatedAt: now.Add(-1 * time.Hour), LastAccessedAt: now.Add(-2 * time.Hour)},
			}, nil
		},
	}
	server := setupTestServer(t, mockService)

	tests := []struct {
		name      string
		query     string
		wantFirst string
		wantCount int
	}{
		{name: "default sorts by access time desc", query: "", wantFirst: "old", wantCount: 3},
		{name: "created ascending", query: "?sort=created&order=asc", wantFirst: "old", wantCount: 3},
		{name: "created descending with limit", query: "?sort=created&limit=2", wantFirst: "new", wantCount: 2},
		{name: "invalid limit ignored", query: "?limit=abc", wantFirst: "old", wantCount: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("GET", "/api/sessions"+tt.query, nil))

			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}

			var resp struct {
				Count    int                    `json:"count"`
				Total    int                    `json:"total"`
				Sessions []*service.SessionInfo `json:"sessions"`
			}
			parseResponse(t, w, &resp)

			if resp.Count != tt.wantCount || resp.Total != 3 {
				t.Errorf("Expected count %d total 3, got %d/%d", tt.wantCount, resp.Count, resp.Total)
			}
			if resp.Sessions[0].ID != tt.wantFirst {
				t.Errorf("Expected first session %s, got %s", tt.wantFirst, resp.Sessions[0].ID)
			}
		})
	}
}

func TestGetAndDeleteSession(t *testing.T) {
	mockService := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			if sessionID == "missing" {
				return nil, fmt.Errorf("%w: %s", service.ErrSessionNotFound, sessionID)
			}
			return &service.SessionInfo{ID: sessionID}, nil
		},
		DeleteSessionFunc: func(ctx context.Context, sessionID string) error {
			if sessionID == "missing" {
				return service.ErrSessionNotFound
			}
			return nil
		},
	}
	server := setupTestServer(t, mockService)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/api/sessions/ab12", http.StatusOK},
		{"GET", "/api/sessions/missing", http.StatusNotFound},
		{"DELETE", "/api/sessions/ab12", http.StatusOK},
		{"DELETE", "/api/sessions/missing", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest(tt.method, tt.path, nil))
			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d", tt.status, w.Code)
			}
		})
	}
}

// Game Operation Tests

func TestMove(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		moveErr        error
		success        bool
		expectedStatus int
	}{
		{
			name:           "Successful move",
			requestBody:    map[string]string{"card": "6S", "to": "freecell-0"},
			success:        true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Illegal move still answers 200",
			requestBody:    map[string]string{"card": "JD", "to": "freecell-0"},
			success:        false,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Missing destination",
			requestBody:    map[string]string{"card": "6S"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed body",
			requestBody:    "not an object",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Stale move",
			requestBody:    map[string]interface{}{"card": "6S", "to": "freecell-1", "from": map[string]interface{}{"pile": "tableau-0", "position": 6}},
			moveErr:        &engine.StaleMoveError{Reason: "card is at freecell-0[0]"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "Invalid card",
			requestBody:    map[string]string{"card": "ZZ", "to": "freecell-0"},
			moveErr:        fmt.Errorf("%w: bad card", service.ErrInvalidRequest),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown session",
			requestBody:    map[string]string{"card": "6S", "to": "freecell-0"},
			moveErr:        service.ErrSessionNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got service.MoveRequest
			mockService := &MockGameService{
				MoveFunc: func(ctx context.Context, sessionID string, req service.MoveRequest) (*service.MoveResult, error) {
					got = req
					if tt.moveErr != nil {
						return nil, tt.moveErr
					}
					res := &service.MoveResult{Success: tt.success, GameState: &engine.GameState{}}
					if !tt.success {
						res.AttemptedTo = &service.AttemptInfo{Card: req.Card, To: req.To, Reason: "covered"}
					}
					return res, nil
				},
			}

			server := setupTestServer(t, mockService)
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/move", tt.requestBody))

			if w.Code != tt.expectedStatus {
				t.Fatalf("Expected status %d, got %d (%s)", tt.expectedStatus, w.Code, w.Body.String())
			}
			if w.Code != http.StatusOK {
				var resp map[string]string
				parseResponse(t, w, &resp)
				if resp["error"] == "" {
					t.Error("Expected error message in body")
				}
				return
			}

			var resp service.MoveResult
			parseResponse(t, w, &resp)
			if resp.Success != tt.success {
				t.Errorf("Expected success %v, got %v", tt.success, resp.Success)
			}
			if !tt.success && resp.AttemptedTo == nil {
				t.Error("Expected attempted_to on a rejected move")
			}
			if got.Card == "" {
				t.Error("Move request not forwarded")
			}
		})
	}
}

func TestBulkMove(t *testing.T) {
	mockService := &MockGameService{
		BulkMoveFunc: func(ctx context.Context, sessionID string, moves []service.MoveRequest) (*service.BulkMoveResult, error) {
			if len(moves) != 2 || moves[1].To != "freecell-1" {
				t.Errorf("Unexpected moves: %+v", moves)
			}
			return &service.BulkMoveResult{
				MovesExecuted:  1,
				RequestedMoves: 2,
				StopReasonCode: "illegal_move",
				StoppedOnMove:  2,
				GameState:      &engine.GameState{},
			}, nil
		},
	}
	server := setupTestServer(t, mockService)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/bulk-move", map[string]interface{}{
		"moves": []map[string]string{{"card": "6S", "to": "freecell-0"}, {"card": "JD", "to": "freecell-1"}},
	}))
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp service.BulkMoveResult
	parseResponse(t, w, &resp)
	if resp.MovesExecuted != 1 || resp.StopReasonCode != "illegal_move" {
		t.Errorf("Unexpected result: %+v", resp)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/bulk-move", map[string]interface{}{"moves": []string{}}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for empty moves, got %d", w.Code)
	}
}

func TestUndoSnapRedeal(t *testing.T) {
	mockService := &MockGameService{
		UndoFunc: func(ctx context.Context, sessionID string) (*service.MoveResult, error) {
			return &service.MoveResult{Success: false, GameState: &engine.GameState{}}, nil
		},
		SnapFunc: func(ctx context.Context, sessionID, card string) (*service.MoveResult, error) {
			if card != "AH" {
				t.Errorf("Expected AH, got %s", card)
			}
			return &service.MoveResult{Success: true, GameState: &engine.GameState{}}, nil
		},
	}
	server := setupTestServer(t, mockService)

	t.Run("undo with nothing to undo", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/undo", nil))
		var resp service.MoveResult
		parseResponse(t, w, &resp)
		if resp.Success || resp.Message != "Nothing to undo" {
			t.Errorf("Unexpected undo response: %+v", resp)
		}
	})

	t.Run("snap", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/snap", map[string]string{"card": "AH"}))
		if w.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", w.Code)
		}
	})

	t.Run("snap without card", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/snap", map[string]string{}))
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("redeal", func(t *testing.T) {
		w := httptest.NewRecorder()
		server.ServeHTTP(w, makeRequest("POST", "/api/sessions/ab12/redeal", map[string]int64{"seed": 11982}))
		var resp service.MoveResult
		parseResponse(t, w, &resp)
		if resp.GameState.Seed != 11982 {
			t.Errorf("Expected game #11982, got %d", resp.GameState.Seed)
		}
	})
}

func TestGetHistory(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantOpts service.HistoryOptions
	}{
		{name: "defaults", query: "", wantOpts: service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
		{name: "explicit", query: "?page=2&limit=5&order=asc", wantOpts: service.HistoryOptions{Page: 2, Limit: 5, Order: "asc"}},
		{name: "invalid values ignored", query: "?page=-1&limit=x&order=sideways", wantOpts: service.HistoryOptions{Page: 1, Limit: 20, Order: "desc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got service.HistoryOptions
			mockService := &MockGameService{
				GetMoveHistoryFunc: func(ctx context.Context, sessionID string, opts service.HistoryOptions) (*service.HistoryResponse, error) {
					got = opts
					return &service.HistoryResponse{Moves: []service.HistoryEntry{}}, nil
				},
			}
			server := setupTestServer(t, mockService)

			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest("GET", "/api/sessions/ab12/history"+tt.query, nil))
			if w.Code != http.StatusOK {
				t.Fatalf("Expected status 200, got %d", w.Code)
			}
			if got != tt.wantOpts {
				t.Errorf("Expected options %+v, got %+v", tt.wantOpts, got)
			}
		})
	}
}

// Configuration Tests

func TestConfigs(t *testing.T) {
	var saved *engine.RuleSet
	mockService := &MockGameService{
		ListConfigsFunc: func(ctx context.Context) ([]*service.ConfigInfo, error) {
			return []*service.ConfigInfo{{ConfigID: "standard", FreeCells: 4, TableauColumns: 8}}, nil
		},
		LoadConfigFunc: func(ctx context.Context, configName string) (*engine.RuleSet, error) {
			if configName != "standard" {
				return nil, fmt.Errorf("configuration not found")
			}
			rules := engine.StandardRuleSet()
			return &rules, nil
		},
		SaveConfigFunc: func(ctx context.Context, configName string, config *engine.RuleSet) error {
			saved = config
			return nil
		},
	}
	server := setupTestServer(t, mockService)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		status int
	}{
		{"list", "GET", "/api/configs", nil, http.StatusOK},
		{"get", "GET", "/api/configs/standard", nil, http.StatusOK},
		{"get with extension", "GET", "/api/configs/standard.yaml", nil, http.StatusOK},
		{"get missing", "GET", "/api/configs/unknown", nil, http.StatusNotFound},
		{"create", "POST", "/api/configs", map[string]interface{}{"name": "three", "description": "Three cells", "free_cells": 3, "tableau_columns": 8}, http.StatusCreated},
		{"create invalid", "POST", "/api/configs", map[string]interface{}{"name": "bad", "description": "x", "free_cells": 99, "tableau_columns": 8}, http.StatusBadRequest},
		{"create without name", "POST", "/api/configs", map[string]interface{}{"free_cells": 3}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			server.ServeHTTP(w, makeRequest(tt.method, tt.path, tt.body))
			if w.Code != tt.status {
				t.Errorf("Expected status %d, got %d (%s)", tt.status, w.Code, w.Body.String())
			}
		})
	}

	if saved == nil || saved.FreeCells != 3 {
		t.Errorf("Expected the valid config to be saved, got %+v", saved)
	}
}

func TestHealthAndWebSocketValidation(t *testing.T) {
	mockService := &MockGameService{
		GetSessionFunc: func(ctx context.Context, sessionID string) (*service.SessionInfo, error) {
			return nil, service.ErrSessionNotFound
		},
	}
	server := setupTestServer(t, mockService)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/health", nil))
	if w.Code != http.StatusOK {
		t.Errorf("Expected health 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/ws", nil))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 without session, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/ws?session=nope", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown session, got %d", w.Code)
	}
}

// Integration test against the real service stack

func newIntegrationServer(t *testing.T) *Server {
	t.Helper()
	configMgr, err := config.NewManager(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create config manager: %v", err)
	}
	svc := service.NewGameService(session.NewManager(), configMgr)
	return NewServer(svc, nil)
}

func TestIntegration_PlayAndStaleMove(t *testing.T) {
	server := newIntegrationServer(t)

	w := httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions", map[string]interface{}{"seed": 1}))
	if w.Code != http.StatusCreated {
		t.Fatalf("Create failed: %d %s", w.Code, w.Body.String())
	}
	var info service.SessionInfo
	parseResponse(t, w, &info)

	top, _ := info.GameState.Tableau[0].Top()
	from := top.Placement()
	movePath := "/api/sessions/" + info.ID + "/move"

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", movePath, service.MoveRequest{Card: string(top.ID), To: "freecell-0", From: &from}))
	if w.Code != http.StatusOK {
		t.Fatalf("Move failed: %d %s", w.Code, w.Body.String())
	}
	var res service.MoveResult
	parseResponse(t, w, &res)
	if !res.Success || len(res.Events) != 1 {
		t.Fatalf("Expected a successful move with one event, got %+v", res)
	}

	// Same request again: the card has left its column
	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", movePath, service.MoveRequest{Card: string(top.ID), To: "freecell-1", From: &from}))
	if w.Code != http.StatusConflict {
		t.Errorf("Expected 409 for stale move, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/"+info.ID+"/undo", nil))
	parseResponse(t, w, &res)
	if !res.Success || res.GameState.CanUndo {
		t.Errorf("Expected undo back to the deal, got %+v", res)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions/"+info.ID+"/state", nil))
	var state engine.GameState
	parseResponse(t, w, &state)
	if got, _ := state.Tableau[0].Top(); got.ID != top.ID {
		t.Errorf("Expected %s back on column 0, got %s", top.ID, got.ID)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("POST", "/api/sessions/"+info.ID+"/move", map[string]string{"card": string(top.ID), "to": "tableau-99"}))
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown pile, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	server.ServeHTTP(w, makeRequest("GET", "/api/sessions/zzzz/state", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown session, got %d", w.Code)
	}
}
