// Package session provides session management for the Freecell server.
//
// The session package implements:
//   - Thread-safe session storage and retrieval
//   - Unique session ID generation
//   - Session lifecycle management
//   - Session cleanup and expiration
//
// Core Types:
//
// Manager is the main session manager that handles all session operations.
// service.Session holds one game engine, its rule set, and metadata like
// creation time and last access time.
//
// Session Identifiers:
//
// Sessions use 4-character hex IDs for easy reference. Lookups are
// case-insensitive. Generated IDs come from crypto/rand and are retried on
// collision.
//
// Concurrency:
//
// The manager guards its session map with a read-write lock. Each session
// carries its own lock for the engine, so moves in different sessions never
// contend. When both are needed, the manager lock is taken first.
//
// Usage:
//
//	manager := session.NewManager()
//
//	// Deal game #617 with the standard rules
//	rules := engine.StandardRuleSet()
//	sess, err := manager.Create("", &rules, 617)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	// Retrieve existing session
//	sess, err = manager.Get(sessionID)
//
// Cleanup:
//
// Sessions live in memory only. CleanupExpiredSessions removes sessions that
// have not been accessed within a given age; the server runs it hourly.
package session
