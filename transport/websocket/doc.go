// Package websocket provides live game updates over WebSocket.
//
// A central Hub tracks clients per session. Each client gets a UUID and two
// goroutines: readPump keeps the connection alive with ping/pong and writePump
// delivers queued messages, one JSON document per frame.
//
// Message Protocol:
//
// Messages are server-to-client only:
//
//	{"session_id": "ab12", "event": "state_update", "game_state": {...}}
//	{"session_id": "ab12", "event": "sequence_executed", "data": {...}}
//
// Event names follow the engine notifications: sequence_executed,
// sequence_undone, won and redealt.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Stop()
//
//	// in an HTTP handler, after checking the session exists
//	hub.ServeWS(w, r, sessionID)
//
// Clients whose send buffer is full are dropped rather than blocking a broadcast.
package websocket
