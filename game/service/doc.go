// Package service provides the business logic layer for the Freecell server.
//
// The service package implements:
//   - Multi-session game management
//   - Rule-set loading and saving
//   - Move processing with rejection diagnostics
//   - Stale move detection for clients that send the card's last known placement
//   - Paginated move history
//
// Core Interfaces:
//
// GameService is the main service interface providing high-level game operations.
// SessionManager handles session creation, retrieval, and lifecycle.
// ConfigManager loads and validates rule sets.
//
// Architecture:
//
// The service layer sits between the transport layer (HTTP/WebSocket/MCP) and
// the game engine. Each session owns one engine and one lock; every engine call
// happens with that lock held. Engine notifications raised during a call are
// returned to the caller as GameEvents so transports can broadcast them.
//
// Usage:
//
//	sessionMgr := session.NewManager()
//	configMgr := config.NewManager("configs")
//	gameService := service.NewGameService(sessionMgr, configMgr)
//
//	// Deal game #617 with the standard rules
//	info, err := gameService.CreateSession(ctx, "standard", 617)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Move the 7 of hearts to the first free cell
//	result, err := gameService.Move(ctx, info.ID, service.MoveRequest{Card: "7H", To: "freecell-0"})
//
// A move the rules reject is not an error: the result has Success false and
// AttemptedTo explains the rejection. Errors are reserved for unknown sessions,
// malformed requests and stale moves.
package service
