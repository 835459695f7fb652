// Package mcp exposes the Freecell game to AI agents over the Model Context Protocol.
//
// The Client is a thin proxy: every tool call is translated into a REST API
// request against a running game server and the JSON response is rendered as
// plain text for the agent.
//
// MCP Tools:
//   - create_session, list_sessions, get_session, list_configs
//   - game_state: free cells, foundations and tableau columns as rows of card IDs
//   - move: move a card and the run it heads onto a pile
//   - bulk_move: several moves written CARD>PILE, stopping at the first rejection
//   - snap_to_foundation, undo, redeal
//   - drop_targets: piles that accept a card right now
//   - move_history: paginated history
//   - game_instructions: rules and naming
//
// Rejected moves are not tool errors. They come back as text that names the
// reason and the piles that would have accepted the card. A 409 from the API
// (the table changed under the agent) is reported as a tool error.
//
// Usage:
//
//	client := mcp.NewClient("http://localhost:8080")
//	server.ServeStdio(client.GetMCPServer())
package mcp
